package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustDueDate(t *testing.T, at time.Time) *DueDate {
	t.Helper()
	due, err := NewDueDate(at)
	require.NoError(t, err)
	return &due
}

func TestNewTask(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description *string
		expectedErr error
	}{
		{name: "minimal task", title: "buy milk"},
		{name: "with description", title: "buy milk", description: strPtr("two liters")},
		{name: "title at max length", title: strings.Repeat("a", 255)},
		{name: "empty title", title: "", expectedErr: ErrTitleEmpty},
		{name: "title too long", title: strings.Repeat("a", 256), expectedErr: ErrTitleTooLong},
		{name: "multi-byte title at max length", title: strings.Repeat("任", 255)},
		{
			name:        "multi-byte title too long",
			title:       strings.Repeat("任", 256),
			expectedErr: ErrTitleTooLong,
		},
		{
			name:        "description too long",
			title:       "buy milk",
			description: strPtr(strings.Repeat("d", 1001)),
			expectedErr: ErrDescriptionTooLong,
		},
		{
			name:        "description at max length",
			title:       "buy milk",
			description: strPtr(strings.Repeat("d", 1000)),
		},
		{
			name:        "multi-byte description at max length",
			title:       "buy milk",
			description: strPtr(strings.Repeat("描", 1000)),
		},
		{
			name:        "multi-byte description too long",
			title:       "buy milk",
			description: strPtr(strings.Repeat("描", 1001)),
			expectedErr: ErrDescriptionTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.title, tt.description, nil)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, task.ID)
			assert.Equal(t, tt.title, task.Title)
			assert.Equal(t, tt.description, task.Description)
			assert.Equal(t, TaskStatusPending, task.Status)
			assert.Nil(t, task.DueDate)
			assert.False(t, task.CreatedAt.IsZero())
			assert.Equal(t, task.CreatedAt, task.UpdatedAt)
		})
	}
}

func TestRehydrateTask(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	due := mustDueDate(t, created.Add(48*time.Hour))

	task := RehydrateTask(id, "review PR", strPtr("branch feature/x"), TaskStatusInProgress, due, created, updated)

	assert.Equal(t, id, task.ID)
	assert.Equal(t, "review PR", task.Title)
	assert.Equal(t, TaskStatusInProgress, task.Status)
	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, updated, task.UpdatedAt)
	assert.True(t, task.DueDate.Equal(*due))
}

func TestTaskUpdateAllFieldsAbsent(t *testing.T) {
	original, err := NewTask("buy milk", strPtr("two liters"), mustDueDate(t, time.Now().Add(6*time.Hour)))
	require.NoError(t, err)

	updated, err := original.Update(TaskPatch{})
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Title, updated.Title)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.Status, updated.Status)
	assert.Equal(t, original.DueDate, updated.DueDate)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt.UnixNano(), original.UpdatedAt.UnixNano())
}

func TestTaskUpdateReplacesFields(t *testing.T) {
	original, err := NewTask("buy milk", nil, nil)
	require.NoError(t, err)

	status := TaskStatusCompleted
	due := mustDueDate(t, time.Now().Add(3*time.Hour))
	updated, err := original.Update(TaskPatch{
		Title:       strPtr("buy oat milk"),
		Description: Some("from the corner shop"),
		Status:      &status,
		DueDate:     Some(*due),
	})
	require.NoError(t, err)

	assert.Equal(t, "buy oat milk", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "from the corner shop", *updated.Description)
	assert.Equal(t, TaskStatusCompleted, updated.Status)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(*due))

	// The original instance must stay intact.
	assert.Equal(t, "buy milk", original.Title)
	assert.Nil(t, original.Description)
	assert.Equal(t, TaskStatusPending, original.Status)
	assert.Nil(t, original.DueDate)
}

// Omitting the due date keeps it; an explicit clear removes it. The two
// cases must behave differently.
func TestTaskUpdateDueDateAbsentVersusCleared(t *testing.T) {
	due := mustDueDate(t, time.Now().Add(6*time.Hour))
	original, err := NewTask("buy milk", nil, due)
	require.NoError(t, err)

	kept, err := original.Update(TaskPatch{Title: strPtr("buy milk today")})
	require.NoError(t, err)
	require.NotNil(t, kept.DueDate)
	assert.True(t, kept.DueDate.Equal(*due))

	cleared, err := original.Update(TaskPatch{DueDate: Null[DueDate]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
}

func TestTaskUpdateDescriptionAbsentVersusCleared(t *testing.T) {
	original, err := NewTask("buy milk", strPtr("two liters"), nil)
	require.NoError(t, err)

	kept, err := original.Update(TaskPatch{})
	require.NoError(t, err)
	require.NotNil(t, kept.Description)
	assert.Equal(t, "two liters", *kept.Description)

	cleared, err := original.Update(TaskPatch{Description: Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
}

func TestTaskUpdateRejectsInvalidPatch(t *testing.T) {
	original, err := NewTask("buy milk", nil, nil)
	require.NoError(t, err)

	_, err = original.Update(TaskPatch{Title: strPtr("")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTitleEmpty))

	_, err = original.Update(TaskPatch{Description: Some(strings.Repeat("d", 1001))})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDescriptionTooLong))

	// A failed update leaves the original usable and unchanged.
	assert.Equal(t, "buy milk", original.Title)
}

func TestTaskIsDueWithinHours(t *testing.T) {
	noDue, err := NewTask("no due date", nil, nil)
	require.NoError(t, err)
	assert.False(t, noDue.IsDueWithinHours(24))

	soon, err := NewTask("due soon", nil, mustDueDate(t, time.Now().Add(12*time.Hour)))
	require.NoError(t, err)
	assert.True(t, soon.IsDueWithinHours(24))

	far, err := NewTask("due later", nil, mustDueDate(t, time.Now().Add(48*time.Hour)))
	require.NoError(t, err)
	assert.False(t, far.IsDueWithinHours(24))

	overdue, err := NewTask("overdue", nil, mustDueDate(t, time.Now().Add(-time.Hour)))
	require.NoError(t, err)
	assert.False(t, overdue.IsDueWithinHours(24))
}
