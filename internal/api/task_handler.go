package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jmoreland/taskdeck/internal/domain"
	"github.com/jmoreland/taskdeck/internal/platform/logger"
	"github.com/jmoreland/taskdeck/internal/service"
)

// Validate is the shared validator instance for request structs.
var Validate = validator.New()

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskRequest is the request body for a partial task update. Every
// field is optional. Description and DueDate distinguish an omitted key
// from an explicit null, which clears the stored value. Title and Status
// are not nullable, so an explicit null there is rejected rather than
// treated as absent.
type UpdateTaskRequest struct {
	Title       domain.Optional[string] `json:"title"`
	Description domain.Optional[string] `json:"description"`
	Status      domain.Optional[string] `json:"status"`
	DueDate     domain.Optional[string] `json:"due_date"`
}

// toInput converts the request body into the service input, rejecting an
// explicit null on the non-nullable fields.
func (req UpdateTaskRequest) toInput() (service.UpdateTaskInput, error) {
	input := service.UpdateTaskInput{
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if req.Title.Present() {
		v, ok := req.Title.Value()
		if !ok {
			return input, service.NewValidationError("title", "cannot be null")
		}
		input.Title = &v
	}

	if req.Status.Present() {
		v, ok := req.Status.Value()
		if !ok {
			return input, service.NewValidationError("status", "cannot be null")
		}
		input.Status = &v
	}

	return input, nil
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := Validate.Struct(req); err != nil {
		RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation failed", err)
		return
	}

	view, err := h.taskService.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Debug("task created", slog.String("task_id", view.ID))
	RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	view, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, view)
}

// ListTasks handles GET /api/tasks requests. Results are always paginated;
// page and limit default to 1 and 10 when not supplied.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := h.queryPageParams(w, r)
	if !ok {
		return
	}

	var statusText *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		statusText = &raw
	}

	result, err := h.taskService.ListTasksPaginated(r.Context(), page, limit, statusText)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// UpdateTask handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	input, err := req.toInput()
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	view, err := h.taskService.UpdateTask(r.Context(), id, input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Debug("task updated", slog.String("task_id", id.String()))
	RespondWithJSON(w, r, http.StatusOK, view)
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// pathTaskID extracts and parses the task id path parameter, writing a 400
// response when it is missing or malformed.
func (h *TaskHandler) pathTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return uuid.Nil, false
	}

	return id, true
}

// queryPageParams parses the page and limit query parameters, applying the
// defaults for absent values and writing a 400 response for values that do
// not parse as integers. Range checks happen in the service.
func (h *TaskHandler) queryPageParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	page := service.DefaultPage
	limit := service.DefaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Page must be a positive integer")
			return 0, 0, false
		}
		page = parsed
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Limit must be a positive integer")
			return 0, 0, false
		}
		limit = parsed
	}

	return page, limit, true
}
