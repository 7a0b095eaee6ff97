package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task is the aggregate tracked by the service: a title, an optional
// description, a lifecycle status and an optional due date. ID and CreatedAt
// never change after creation; UpdatedAt advances on every applied mutation.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *DueDate   `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskPatch describes a partial update to a task. Nil pointer fields are
// left unchanged. Description and DueDate use Optional so an update can
// explicitly clear them, which a nil pointer could not express.
type TaskPatch struct {
	Title       *string
	Description Optional[string]
	Status      *TaskStatus
	DueDate     Optional[DueDate]
}

// NewTask creates a fresh Task with a generated ID, pending status and both
// timestamps set to now. Returns a validation error if the fields are out
// of bounds.
func NewTask(title string, description *string, dueDate *DueDate) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// RehydrateTask rebuilds a Task from stored fields. All values are supplied
// by the caller; no defaulting happens here.
func RehydrateTask(
	id uuid.UUID,
	title string,
	description *string,
	status TaskStatus,
	dueDate *DueDate,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Validate checks the Task invariants: non-nil ID, title between 1 and 255
// characters, description at most 1000 characters, known status.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Title == "" {
		return ErrTitleEmpty
	}

	// Bounds are in characters, not bytes, so multi-byte titles are not
	// penalized for their encoding.
	if utf8.RuneCountInString(t.Title) > 255 {
		return ErrTitleTooLong
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > 1000 {
		return ErrDescriptionTooLong
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	return nil
}

// Update applies a patch and returns a new Task, leaving the receiver
// untouched. ID and CreatedAt carry over unchanged; UpdatedAt is stamped
// with the current time. Returns a validation error if the patched task
// violates an invariant.
func (t *Task) Update(patch TaskPatch) (*Task, error) {
	updated := *t

	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description.Present() {
		if v, ok := patch.Description.Value(); ok {
			updated.Description = &v
		} else {
			updated.Description = nil
		}
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.DueDate.Present() {
		if v, ok := patch.DueDate.Value(); ok {
			updated.DueDate = &v
		} else {
			updated.DueDate = nil
		}
	}

	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	return &updated, nil
}

// IsDueWithinHours reports whether the task has a due date that falls
// strictly in the future and at most the given number of hours away,
// evaluated against the wall clock at call time. Tasks without a due date
// are never due soon.
func (t *Task) IsDueWithinHours(hours int) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.IsWithinHours(hours)
}
