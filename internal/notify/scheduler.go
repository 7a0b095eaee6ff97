package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoreland/taskdeck/internal/domain"
)

// DefaultRecordTTL bounds how long a keyed reminder record survives in the
// queue store. It matches the due-soon horizon: a record older than that is
// stale by definition.
const DefaultRecordTTL = 24 * time.Hour

// Scheduler is the producing half of the reminder pipeline. Schedule makes
// two independently observable writes: the keyed record (overwriting any
// prior record for the task) and a copy on the work queue. A crash between
// the two leaves a keyed record without a queue entry, which only costs a
// missed best-effort reminder.
type Scheduler struct {
	queue  Queue
	ttl    time.Duration
	logger *slog.Logger
}

// NewScheduler creates a Scheduler writing to the given queue. A
// non-positive ttl falls back to DefaultRecordTTL. If logger is nil, the
// default logger is used.
func NewScheduler(queue Queue, ttl time.Duration, logger *slog.Logger) *Scheduler {
	if queue == nil {
		panic("queue cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		queue:  queue,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "notify_scheduler")),
	}
}

// Schedule enqueues a reminder record for the task. Each call pushes a new
// work-queue entry even if one is already pending for the same task, so a
// task saved repeatedly while due soon can be reminded about more than once.
func (s *Scheduler) Schedule(ctx context.Context, taskID uuid.UUID, due domain.DueDate) error {
	record := Record{
		TaskID:      taskID,
		DueDate:     due.Time(),
		ScheduledAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode notification record: %w", err)
	}

	if err := s.queue.Put(ctx, recordKey(taskID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to store notification record: %w", err)
	}

	if err := s.queue.PushWork(ctx, data); err != nil {
		return fmt.Errorf("failed to enqueue notification record: %w", err)
	}

	s.logger.Debug("reminder scheduled",
		slog.String("task_id", taskID.String()),
		slog.Time("due_date", record.DueDate))
	return nil
}
