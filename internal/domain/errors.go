package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidStatus is returned when a status string does not name one
	// of the known task statuses.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidDueDate is returned when a due date cannot be constructed,
	// for example from an unparseable timestamp string.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTitleEmpty is returned when a task title is empty.
	ErrTitleEmpty = errors.New("task title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds 255 characters.
	ErrTitleTooLong = errors.New("task title cannot exceed 255 characters")

	// ErrDescriptionTooLong is returned when a task description exceeds
	// 1000 characters.
	ErrDescriptionTooLong = errors.New("task description cannot exceed 1000 characters")
)
