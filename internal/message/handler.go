package message

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/haifazahra-ui/pi-sosmed/internal/httputil"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/send-message", h.SendMessage)
}

// SendMessage echoes the data field of the request body back to the caller.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body any

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "failed to decode request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	data := DataField(body)
	if !HasContent(data) {
		httputil.RespondWithJSON(w, http.StatusUnprocessableEntity, httputil.Response{
			Data:    []any{},
			Message: "no message content !",
		})
		return
	}

	event := h.service.SendMessage(r.Context(), data)
	h.metrics.RecordMessageSent(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, httputil.Response{
		Data:    event.Data,
		Message: "send message success!",
	})
}
