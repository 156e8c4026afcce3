// Package realtime accepts WebSocket connections and logs what clients send.
// Frames are never parsed, answered or forwarded.
package realtime

import (
	"log/slog"
	"net/http"

	"github.com/haifazahra-ui/pi-sosmed/internal/config"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/gorilla/websocket"
)

type Handler struct {
	upgrader        websocket.Upgrader
	maxMessageBytes int64
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

func NewHandler(cfg config.RealtimeConfig, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		maxMessageBytes: cfg.MaxMessageBytes,
		logger:          logger,
		metrics:         metrics,
	}
}

// Intercept hands every WebSocket upgrade request to the channel regardless of
// its path and passes all other requests to next.
func (h *Handler) Intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			h.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	ctx := r.Context()
	remote := conn.RemoteAddr().String()

	h.logger.InfoContext(ctx, "websocket client connected", "remote", remote)
	h.metrics.RecordRealtimeConnection(ctx, 1)
	defer h.metrics.RecordRealtimeConnection(ctx, -1)

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				h.logger.WarnContext(ctx, "websocket read failed", "remote", remote, "error", err)
			}
			break
		}

		h.metrics.RecordRealtimeFrame(ctx)
		h.logger.InfoContext(ctx, "websocket message received",
			"remote", remote,
			"type", messageType,
			"payload", string(payload),
		)
	}

	h.logger.InfoContext(ctx, "websocket client disconnected", "remote", remote)
}
