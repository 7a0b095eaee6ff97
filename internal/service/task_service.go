package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jmoreland/taskdeck/internal/domain"
	"github.com/jmoreland/taskdeck/internal/store"
)

// ReminderScheduler is the producing side of the notification pipeline as
// the service sees it.
type ReminderScheduler interface {
	// Schedule enqueues a due-soon reminder for the task.
	Schedule(ctx context.Context, taskID uuid.UUID, due domain.DueDate) error
}

// TaskService provides the task lifecycle operations. Every operation
// returns either a result or one of the caller-facing error kinds: a
// *ValidationError for correctable input, ErrTaskNotFound for a missing
// id. Store failures pass through wrapped for the caller to decide on.
type TaskService interface {
	// CreateTask validates the input, persists a new pending task and, if
	// its due date falls within the due-soon window, schedules a reminder.
	CreateTask(ctx context.Context, input CreateTaskInput) (*TaskView, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, id uuid.UUID) (*TaskView, error)

	// ListTasks retrieves all tasks, optionally filtered by status text.
	ListTasks(ctx context.Context, statusText *string) ([]TaskView, error)

	// ListTasksPaginated retrieves one page of tasks, newest first,
	// optionally filtered by status text.
	ListTasksPaginated(ctx context.Context, page, limit int, statusText *string) (*PagedTasks, error)

	// UpdateTask applies a partial update to an existing task. A reminder
	// is scheduled only when the update itself supplied a new due date
	// that falls within the due-soon window.
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*TaskView, error)

	// DeleteTask removes a task. Deleting a nonexistent id is an error,
	// not a no-op.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore    store.TaskStore
	scheduler    ReminderScheduler
	horizonHours int
	logger       *slog.Logger
}

// NewTaskService creates a TaskService. horizonHours bounds the due-soon
// window; non-positive values fall back to 24. Returns an error if a
// required dependency is nil.
func NewTaskService(
	taskStore store.TaskStore,
	scheduler ReminderScheduler,
	horizonHours int,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "taskStore cannot be nil"}
	}
	if scheduler == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "scheduler cannot be nil"}
	}
	if horizonHours <= 0 {
		horizonHours = 24
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		scheduler:    scheduler,
		horizonHours: horizonHours,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*TaskView, error) {
	var dueDate *domain.DueDate
	if input.DueDate != nil {
		parsed, err := domain.ParseDueDate(*input.DueDate)
		if err != nil {
			return nil, NewValidationError("due_date", "must be a valid RFC 3339 timestamp")
		}
		dueDate = &parsed
	}

	task, err := domain.NewTask(input.Title, input.Description, dueDate)
	if err != nil {
		return nil, mapDomainError(err)
	}

	if err := s.taskStore.Save(ctx, task); err != nil {
		s.logger.Error("failed to save new task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, &TaskServiceError{Operation: "create_task", Message: "failed to save task", Err: err}
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Bool("has_due_date", dueDate != nil))

	s.maybeScheduleReminder(ctx, task)

	view := taskToView(task)
	return &view, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*TaskView, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, &TaskServiceError{Operation: "get_task", Message: "failed to load task", Err: err}
	}

	view := taskToView(task)
	return &view, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context, statusText *string) ([]TaskView, error) {
	status, err := parseStatusFilter(statusText)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.FindAll(ctx, status)
	if err != nil {
		return nil, &TaskServiceError{Operation: "list_tasks", Message: "failed to query tasks", Err: err}
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, taskToView(task))
	}
	return views, nil
}

// ListTasksPaginated implements TaskService.ListTasksPaginated.
func (s *taskServiceImpl) ListTasksPaginated(
	ctx context.Context,
	page, limit int,
	statusText *string,
) (*PagedTasks, error) {
	if page < MinPage {
		return nil, NewValidationError("page", "must be at least 1")
	}
	if limit < MinLimit {
		return nil, NewValidationError("limit", "must be at least 1")
	}
	if limit > MaxLimit {
		return nil, NewValidationError("limit", "cannot exceed 1000")
	}

	status, err := parseStatusFilter(statusText)
	if err != nil {
		return nil, err
	}

	result, err := s.taskStore.FindPaginated(ctx, page, limit, status)
	if err != nil {
		return nil, &TaskServiceError{Operation: "list_tasks", Message: "failed to query task page", Err: err}
	}

	totalPages := (result.Total + limit - 1) / limit

	views := make([]TaskView, 0, len(result.Items))
	for _, task := range result.Items {
		views = append(views, taskToView(task))
	}

	return &PagedTasks{
		Data: views,
		Pagination: Pagination{
			Page:        page,
			Limit:       limit,
			Total:       result.Total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > MinPage,
		},
	}, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*TaskView, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, &TaskServiceError{Operation: "update_task", Message: "failed to load task", Err: err}
	}

	patch := domain.TaskPatch{Title: input.Title}

	if input.Status != nil {
		status, err := domain.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, NewValidationError("status", "must be one of pending, in_progress, completed, cancelled")
		}
		patch.Status = &status
	}

	if input.Description.Present() {
		if v, ok := input.Description.Value(); ok {
			patch.Description = domain.Some(v)
		} else {
			patch.Description = domain.Null[string]()
		}
	}

	// Tracks whether this update supplied a brand-new due date, which is
	// the only case that schedules a reminder. Keeping the old date or
	// clearing it never does.
	dueDateReplaced := false
	if input.DueDate.Present() {
		if v, ok := input.DueDate.Value(); ok {
			parsed, err := domain.ParseDueDate(v)
			if err != nil {
				return nil, NewValidationError("due_date", "must be a valid RFC 3339 timestamp")
			}
			patch.DueDate = domain.Some(parsed)
			dueDateReplaced = true
		} else {
			patch.DueDate = domain.Null[domain.DueDate]()
		}
	}

	updated, err := task.Update(patch)
	if err != nil {
		return nil, mapDomainError(err)
	}

	if err := s.taskStore.Save(ctx, updated); err != nil {
		s.logger.Error("failed to save updated task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, &TaskServiceError{Operation: "update_task", Message: "failed to save task", Err: err}
	}

	s.logger.Info("task updated", slog.String("task_id", id.String()))

	if dueDateReplaced {
		s.maybeScheduleReminder(ctx, updated)
	}

	view := taskToView(updated)
	return &view, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taskStore.GetByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return ErrTaskNotFound
		}
		return &TaskServiceError{Operation: "delete_task", Message: "failed to load task", Err: err}
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return ErrTaskNotFound
		}
		return &TaskServiceError{Operation: "delete_task", Message: "failed to delete task", Err: err}
	}

	s.logger.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// maybeScheduleReminder enqueues a reminder when the task is due within
// the horizon. Scheduling is fire-and-forget relative to the write that
// triggered it: a queue failure is logged and the request still succeeds.
func (s *taskServiceImpl) maybeScheduleReminder(ctx context.Context, task *domain.Task) {
	if task.DueDate == nil || !task.IsDueWithinHours(s.horizonHours) {
		return
	}

	if err := s.scheduler.Schedule(ctx, task.ID, *task.DueDate); err != nil {
		s.logger.Warn("failed to schedule reminder",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
	}
}

// parseStatusFilter turns optional status text into a status filter,
// converting parse failures into validation errors.
func parseStatusFilter(statusText *string) (*domain.TaskStatus, error) {
	if statusText == nil {
		return nil, nil
	}
	status, err := domain.ParseTaskStatus(*statusText)
	if err != nil {
		return nil, NewValidationError("status", "must be one of pending, in_progress, completed, cancelled")
	}
	return &status, nil
}

// mapDomainError rewraps entity construction failures into field-level
// validation errors before they cross the service boundary.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTitleEmpty):
		return NewValidationError("title", "is required")
	case errors.Is(err, domain.ErrTitleTooLong):
		return NewValidationError("title", "cannot exceed 255 characters")
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError("description", "cannot exceed 1000 characters")
	case errors.Is(err, domain.ErrInvalidStatus):
		return NewValidationError("status", "must be one of pending, in_progress, completed, cancelled")
	case errors.Is(err, domain.ErrInvalidDueDate):
		return NewValidationError("due_date", "must be a valid RFC 3339 timestamp")
	default:
		return &TaskServiceError{Operation: "validate", Message: "entity validation failed", Err: err}
	}
}
