package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is handed to a Deliverer once a popped record passes the
// staleness re-check.
type Notification struct {
	TaskID        uuid.UUID
	DueDate       time.Time
	HoursUntilDue float64
}

// Deliverer is the transport side effect invoked for each due-soon task.
// The pipeline defines only the invocation contract; what a delivery looks
// like (log line, email, push) is up to the implementation.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

// LogDeliverer writes reminders to the structured log.
type LogDeliverer struct {
	logger *slog.Logger
}

// NewLogDeliverer creates a LogDeliverer. If logger is nil, the default
// logger is used.
func NewLogDeliverer(logger *slog.Logger) *LogDeliverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDeliverer{logger: logger.With(slog.String("component", "log_deliverer"))}
}

// Deliver implements Deliverer.
func (d *LogDeliverer) Deliver(_ context.Context, n Notification) error {
	d.logger.Info("task due soon",
		slog.String("task_id", n.TaskID.String()),
		slog.Time("due_date", n.DueDate),
		slog.Float64("hours_until_due", n.HoursUntilDue))
	return nil
}

// FileDeliverer appends one line per reminder to a log file. Writes are
// serialized; the file is opened per delivery so rotation from outside
// stays safe.
type FileDeliverer struct {
	path string
	mu   sync.Mutex
}

// NewFileDeliverer creates a FileDeliverer appending to the given path.
func NewFileDeliverer(path string) *FileDeliverer {
	return &FileDeliverer{path: path}
}

// Deliver implements Deliverer.
func (d *FileDeliverer) Deliver(_ context.Context, n Notification) error {
	line := fmt.Sprintf("[%s] reminder: task %s is due in %.2f hours (due %s)\n",
		time.Now().UTC().Format(time.RFC3339),
		n.TaskID,
		n.HoursUntilDue,
		n.DueDate.Format(time.RFC3339))

	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open notification log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}
