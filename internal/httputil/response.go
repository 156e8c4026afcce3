package httputil

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every JSON endpoint answers with. Data is kept
// when it holds an empty slice.
type Response struct {
	Data    any    `json:"data,omitzero"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	User    any    `json:"user,omitzero"`
	Token   string `json:"token,omitempty"`
}

// RespondWithMessage writes a response that only carries a message.
func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Response{Message: message})
}

// RespondWithError writes a failure response carrying the raw error text.
func RespondWithError(w http.ResponseWriter, code int, message string, err error) {
	resp := Response{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	RespondWithJSON(w, code, resp)
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// DecodeJSON reads the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
