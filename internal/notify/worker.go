package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	// PollInterval sets how often the worker wakes to check the queue.
	// If zero, defaults to 5 seconds.
	PollInterval time.Duration

	// HorizonHours is the due-soon window a popped record is re-checked
	// against. If zero, defaults to 24.
	HorizonHours int
}

// DefaultWorkerConfig returns a WorkerConfig with the defaults the original
// deployment runs with.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		HorizonHours: 24,
	}
}

// Worker is the consuming half of the reminder pipeline. On every tick it
// pops at most one record, which bounds per-tick work and spreads a burst
// of scheduled reminders over successive wake-ups. The scheduler's snapshot
// is never trusted: due-ness is recomputed from the current clock, and
// records that fell outside the window while queued are dropped.
type Worker struct {
	queue     Queue
	deliverer Deliverer
	config    WorkerConfig

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewWorker creates a Worker consuming from the given queue and delivering
// through the given deliverer. If logger is nil, the default logger is used.
func NewWorker(queue Queue, deliverer Deliverer, config WorkerConfig, logger *slog.Logger) *Worker {
	if queue == nil {
		panic("queue cannot be nil")
	}
	if deliverer == nil {
		panic("deliverer cannot be nil")
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.HorizonHours <= 0 {
		config.HorizonHours = 24
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		queue:      queue,
		deliverer:  deliverer,
		config:     config,
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger.With(slog.String("component", "notify_worker")),
	}
}

// Start launches the polling loop in its own goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
	w.logger.Info("reminder worker started",
		slog.Duration("poll_interval", w.config.PollInterval),
		slog.Int("horizon_hours", w.config.HorizonHours))
}

// Stop cancels the polling loop and waits for it to exit. A delivery in
// flight when Stop is called runs to completion.
func (w *Worker) Stop() {
	w.cancelFunc()
	w.wg.Wait()
	w.logger.Info("reminder worker stopped")
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.tick(w.ctx)
		}
	}
}

// tick processes a single wake-up: pop one record, re-check it against the
// current clock, deliver if still inside the window. Errors never propagate
// out of a tick; a bad record or failed delivery costs only that record.
func (w *Worker) tick(ctx context.Context) {
	data, err := w.queue.PopWork(ctx)
	if err != nil {
		if errors.Is(err, ErrQueueEmpty) {
			return
		}
		w.logger.Error("failed to pop notification record", slog.String("error", err.Error()))
		return
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		w.logger.Error("dropping malformed notification record", slog.String("error", err.Error()))
		return
	}

	hoursUntilDue := record.DueDate.Sub(time.Now().UTC()).Hours()
	if hoursUntilDue <= 0 || hoursUntilDue > float64(w.config.HorizonHours) {
		w.logger.Debug("dropping stale notification record",
			slog.String("task_id", record.TaskID.String()),
			slog.Time("due_date", record.DueDate),
			slog.Float64("hours_until_due", hoursUntilDue))
		return
	}

	notification := Notification{
		TaskID:        record.TaskID,
		DueDate:       record.DueDate,
		HoursUntilDue: hoursUntilDue,
	}

	// A popped record is committed: Stop must not abort its delivery, so
	// the deliverer gets a context that survives the loop's cancellation.
	if err := w.deliverer.Deliver(context.WithoutCancel(ctx), notification); err != nil {
		w.logger.Error("reminder delivery failed",
			slog.String("task_id", record.TaskID.String()),
			slog.String("error", err.Error()))
		return
	}

	w.logger.Info("reminder delivered",
		slog.String("task_id", record.TaskID.String()),
		slog.Float64("hours_until_due", hoursUntilDue))
}
