package app

import (
	"log/slog"
	"net/http"

	"github.com/haifazahra-ui/pi-sosmed/internal/auth"
	"github.com/haifazahra-ui/pi-sosmed/internal/health"
	"github.com/haifazahra-ui/pi-sosmed/internal/message"
	"github.com/haifazahra-ui/pi-sosmed/internal/middleware"
	"github.com/haifazahra-ui/pi-sosmed/internal/realtime"
	"github.com/haifazahra-ui/pi-sosmed/internal/student"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Health   *health.Handler
	Auth     *auth.Handler
	Student  *student.Handler
	Message  *message.Handler
	Realtime *realtime.Handler
}

// NewRouter mounts every route. Student routes require a bearer token;
// WebSocket upgrades on any path go to the realtime channel.
func NewRouter(h Handlers, signer *auth.TokenSigner, corsOrigins []string, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORS(corsOrigins))

	h.Health.RegisterRoutes(router)
	h.Auth.RegisterRoutes(router)
	h.Message.RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(signer, logger))
		h.Student.RegisterRoutes(r)
	})

	return h.Realtime.Intercept(router)
}
