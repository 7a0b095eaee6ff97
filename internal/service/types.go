package service

import (
	"time"

	"github.com/jmoreland/taskdeck/internal/domain"
)

// Pagination bounds exposed to callers. Requests outside them fail with a
// validation error rather than being clamped.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinPage      = 1
	MinLimit     = 1
	MaxLimit     = 1000
)

// CreateTaskInput carries the fields for a new task. DueDate, when set, is
// an RFC 3339 timestamp string.
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *string
}

// UpdateTaskInput is a partial update. Nil pointers mean "leave unchanged".
// Description and DueDate distinguish "unchanged" from "explicitly
// cleared"; that distinction decides both what is stored and whether a
// reminder is scheduled.
type UpdateTaskInput struct {
	Title       *string
	Description domain.Optional[string]
	Status      *string
	DueDate     domain.Optional[string]
}

// TaskView is the read-only representation of a task handed back to
// callers.
type TaskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Pagination describes the position of a page within the full result set.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// PagedTasks is one page of task views plus its pagination envelope.
type PagedTasks struct {
	Data       []TaskView `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// taskToView converts a domain Task into its read-only view.
func taskToView(task *domain.Task) TaskView {
	var due *time.Time
	if task.DueDate != nil {
		t := task.DueDate.Time()
		due = &t
	}

	return TaskView{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		DueDate:     due,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
