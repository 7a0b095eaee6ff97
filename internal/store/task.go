package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoreland/taskdeck/internal/domain"
)

// Page holds one page of tasks together with the total number of tasks
// matching the query across all pages.
type Page struct {
	Items []*domain.Task
	Total int
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Save persists a task, inserting it if new and replacing the stored
	// row otherwise. Returns validation errors if the task data is invalid.
	Save(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// FindAll retrieves all tasks, newest first. A non-nil status narrows
	// the result to tasks with exactly that status.
	FindAll(ctx context.Context, status *domain.TaskStatus) ([]*domain.Task, error)

	// FindPaginated retrieves one page of tasks ordered by creation time
	// descending. page is 1-based; the caller is responsible for bounds
	// checking. A non-nil status narrows the result.
	FindPaginated(ctx context.Context, page, limit int, status *domain.TaskStatus) (*Page, error)

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
