package domain

import (
	"fmt"
	"strings"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// AllTaskStatuses returns the closed set of valid statuses.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
	}
}

// ParseTaskStatus converts a status string into a TaskStatus. Matching is
// case-insensitive and accepts "in-progress" as a synonym for "in_progress".
// Returns ErrInvalidStatus for anything else.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(s) {
	case "pending":
		return TaskStatusPending, nil
	case "in_progress", "in-progress":
		return TaskStatusInProgress, nil
	case "completed":
		return TaskStatusCompleted, nil
	case "cancelled":
		return TaskStatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// String returns the canonical text form of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}
