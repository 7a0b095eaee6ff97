package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTaskNotFound indicates that the referenced task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// FieldError points at the request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries a caller-correctable input problem together with
// the fields that caused it. The transport layer renders it as a 400
// without inspecting anything deeper.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "validation failed",
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// TaskServiceError wraps unexpected failures from the task service with
// operation context. Validation and not-found conditions use their own
// types above; this one covers everything the caller cannot fix.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}
