package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/haifazahra-ui/pi-sosmed/internal/httputil"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const msgCredentialsRequired = "Username and password are required."

type Handler struct {
	service   *Service
	logger    *slog.Logger
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		validator: validator.New(),
		metrics:   metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.Register)
	router.Post("/login", h.Login)
}

// Register creates a new user account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "validation failed", "error", err)
		httputil.RespondWithMessage(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	if _, err := h.service.Register(r.Context(), req); err != nil {
		h.handleServiceError(w, r, err, "Failed to register user.")
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "username", req.Username)
	h.metrics.RecordUserRegistered(r.Context())

	httputil.RespondWithMessage(w, http.StatusCreated, "User registered successfully.")
}

// Login authenticates a user and returns an access token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "validation failed", "error", err)
		httputil.RespondWithMessage(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to login.")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "username", req.Username)
	h.metrics.RecordLogin(r.Context(), true)

	httputil.RespondWithJSON(w, http.StatusOK, httputil.Response{
		Message: "Login successful.",
		Token:   token,
	})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, failedMsg string) {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		httputil.RespondWithMessage(w, http.StatusBadRequest, msgCredentialsRequired)
	case errors.Is(err, ErrUsernameExists):
		httputil.RespondWithMessage(w, http.StatusConflict, "Username already exists.")
	case errors.Is(err, ErrInvalidCredentials):
		h.metrics.RecordLogin(r.Context(), false)
		httputil.RespondWithMessage(w, http.StatusUnauthorized, "Invalid credentials.")
	default:
		h.logger.ErrorContext(r.Context(), "auth request failed", "path", r.URL.Path, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, failedMsg, err)
	}
}
