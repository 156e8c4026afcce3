package student

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/haifazahra-ui/pi-sosmed/internal/auth"
	"github.com/haifazahra-ui/pi-sosmed/internal/httputil"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/student", h.GetAllStudents)
	router.Post("/student", h.CreateStudent)
	router.Get("/student/{id}", h.GetStudent)
	router.Put("/student/{id}", h.UpdateStudent)
	router.Delete("/student/{id}", h.DeleteStudent)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all students")

	students, err := h.service.GetAllStudents(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch students", "error", err)
		httputil.RespondWithJSON(w, http.StatusInternalServerError, httputil.Response{
			Data:    []Student{},
			Message: "Failed to fetch students!",
			Error:   err.Error(),
		})
		return
	}

	h.metrics.RecordStudentsListViewed(r.Context())

	resp := httputil.Response{
		Data:    students,
		Message: "Successfully fetched all students!",
	}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		resp.User = claims
	}
	httputil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student Student
	if err := httputil.DecodeJSON(r, &student); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "first_name", student.FirstName, "last_name", student.LastName)
	created, err := h.service.CreateStudent(r.Context(), &student)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create student", "error", err)
		httputil.RespondWithJSON(w, http.StatusInternalServerError, httputil.Response{
			Data:    []Student{},
			Message: "Failed to create student!",
			Error:   err.Error(),
		})
		return
	}

	h.metrics.RecordStudentCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, httputil.Response{
		Data:    created,
		Message: "Successfully created a new student!",
	})
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "fetching student by ID", "id", id)
	student, err := h.service.GetStudentByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, id,
			fmt.Sprintf("Student with ID: %d not found!", id),
			fmt.Sprintf("Failed to fetch student with ID: %d!", id))
		return
	}

	h.metrics.RecordStudentViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, httputil.Response{
		Data:    student,
		Message: fmt.Sprintf("Successfully fetched student with ID: %d!", id),
	})
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var patch Patch
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	h.logger.InfoContext(r.Context(), "updating student", "id", id)
	student, err := h.service.UpdateStudent(r.Context(), id, patch)
	if err != nil {
		h.handleServiceError(w, r, err, id,
			fmt.Sprintf("Student with ID: %d not found, cannot update!", id),
			fmt.Sprintf("Failed to update student with ID: %d!", id))
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, httputil.Response{
		Data:    student,
		Message: fmt.Sprintf("Successfully updated student with ID: %d!", id),
	})
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	if err := h.service.DeleteStudent(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err, id,
			fmt.Sprintf("Student with ID: %d not found, cannot delete!", id),
			fmt.Sprintf("Failed to delete student with ID: %d!", id))
		return
	}

	httputil.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("Successfully deleted student with ID: %d!", id))
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid student ID", ErrInvalidInput)
		return 0, false
	}
	return id, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, id int, notFoundMsg, failedMsg string) {
	if errors.Is(err, ErrStudentNotFound) {
		h.logger.InfoContext(r.Context(), "student not found", "id", id)
		httputil.RespondWithMessage(w, http.StatusNotFound, notFoundMsg)
		return
	}
	h.logger.ErrorContext(r.Context(), "internal error", "id", id, "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, failedMsg, err)
}
