package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  TaskStatus
		expectErr bool
	}{
		{name: "pending", input: "pending", expected: TaskStatusPending},
		{name: "in_progress", input: "in_progress", expected: TaskStatusInProgress},
		{name: "in-progress synonym", input: "in-progress", expected: TaskStatusInProgress},
		{name: "completed", input: "completed", expected: TaskStatusCompleted},
		{name: "cancelled", input: "cancelled", expected: TaskStatusCancelled},
		{name: "uppercase", input: "PENDING", expected: TaskStatusPending},
		{name: "mixed case", input: "In_Progress", expected: TaskStatusInProgress},
		{name: "mixed case hyphen", input: "In-Progress", expected: TaskStatusInProgress},
		{name: "unknown value", input: "archived", expectErr: true},
		{name: "empty string", input: "", expectErr: true},
		{name: "whitespace", input: " pending", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ParseTaskStatus(tt.input)

			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidStatus),
					"error should wrap ErrInvalidStatus")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestParseTaskStatusRoundTrip(t *testing.T) {
	for _, status := range AllTaskStatuses() {
		parsed, err := ParseTaskStatus(status.String())
		require.NoError(t, err, "canonical form %q should parse", status)
		assert.Equal(t, status, parsed)
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, status := range AllTaskStatuses() {
		assert.True(t, status.IsValid(), "%q should be valid", status)
	}

	assert.False(t, TaskStatus("archived").IsValid())
	assert.False(t, TaskStatus("").IsValid())
	// IsValid checks the canonical form only; parsing handles case folding.
	assert.False(t, TaskStatus("Pending").IsValid())
}
