package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoreland/taskdeck/internal/domain"
)

func mustDue(t *testing.T, at time.Time) domain.DueDate {
	t.Helper()
	due, err := domain.NewDueDate(at)
	require.NoError(t, err)
	return due
}

func TestSchedulerSchedule(t *testing.T) {
	queue := newMemQueue()
	scheduler := NewScheduler(queue, 0, nil)

	taskID := uuid.New()
	dueAt := time.Now().Add(12 * time.Hour).Truncate(time.Second)

	before := time.Now().UTC()
	err := scheduler.Schedule(context.Background(), taskID, mustDue(t, dueAt))
	require.NoError(t, err)
	after := time.Now().UTC()

	// Keyed record written under the task key with the default TTL.
	keyedData, ok := queue.keyed["notification:"+taskID.String()]
	require.True(t, ok, "keyed record should exist")
	assert.Equal(t, DefaultRecordTTL, queue.ttls["notification:"+taskID.String()])

	// Work queue holds a copy of the same record.
	require.Equal(t, 1, queue.workLen())
	workData, err := queue.PopWork(context.Background())
	require.NoError(t, err)
	assert.Equal(t, keyedData, workData)

	var record Record
	require.NoError(t, json.Unmarshal(workData, &record))
	assert.Equal(t, taskID, record.TaskID)
	assert.True(t, record.DueDate.Equal(dueAt))
	assert.False(t, record.ScheduledAt.Before(before))
	assert.False(t, record.ScheduledAt.After(after))
}

func TestSchedulerOverwritesKeyedRecord(t *testing.T) {
	queue := newMemQueue()
	scheduler := NewScheduler(queue, time.Hour, nil)
	taskID := uuid.New()

	require.NoError(t, scheduler.Schedule(context.Background(), taskID, mustDue(t, time.Now().Add(6*time.Hour))))
	require.NoError(t, scheduler.Schedule(context.Background(), taskID, mustDue(t, time.Now().Add(3*time.Hour))))

	// One keyed record per task, but every schedule call queues fresh work.
	assert.Len(t, queue.keyed, 1)
	assert.Equal(t, 2, queue.workLen())
}

func TestSchedulerPropagatesQueueErrors(t *testing.T) {
	queue := newMemQueue()
	queue.putErr = errors.New("store down")
	scheduler := NewScheduler(queue, time.Hour, nil)

	err := scheduler.Schedule(context.Background(), uuid.New(), mustDue(t, time.Now().Add(time.Hour)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, queue.putErr))
	assert.Equal(t, 0, queue.workLen(), "no work entry after a failed keyed write")

	queue.putErr = nil
	queue.pushErr = errors.New("queue down")
	err = scheduler.Schedule(context.Background(), uuid.New(), mustDue(t, time.Now().Add(time.Hour)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, queue.pushErr))
}
