package notify

import (
	"time"

	"github.com/google/uuid"
)

// recordKeyPrefix namespaces the keyed reminder records in the queue store.
const recordKeyPrefix = "notification:"

// Record is the queued unit of work: "check task's due date and possibly
// remind". It is written once by the Scheduler and read once by the Worker.
type Record struct {
	TaskID      uuid.UUID `json:"task_id"`
	DueDate     time.Time `json:"due_date"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// recordKey returns the store key for a task's reminder record.
func recordKey(taskID uuid.UUID) string {
	return recordKeyPrefix + taskID.String()
}
