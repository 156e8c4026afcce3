package httputil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haifazahra-ui/pi-sosmed/internal/httputil"

	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter)
		code  int
		body  string
	}{
		{
			name:  "MessageOnly",
			write: func(w http.ResponseWriter) { httputil.RespondWithMessage(w, http.StatusCreated, "done") },
			code:  http.StatusCreated,
			body:  `{"message":"done"}`,
		},
		{
			name: "ErrorText",
			write: func(w http.ResponseWriter) {
				httputil.RespondWithError(w, http.StatusInternalServerError, "failed", errors.New("boom"))
			},
			code: http.StatusInternalServerError,
			body: `{"message":"failed","error":"boom"}`,
		},
		{
			name: "EmptyDataIsKept",
			write: func(w http.ResponseWriter) {
				httputil.RespondWithJSON(w, http.StatusUnprocessableEntity, httputil.Response{Data: []any{}, Message: "empty"})
			},
			code: http.StatusUnprocessableEntity,
			body: `{"data":[],"message":"empty"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			tc.write(w)

			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}
