package notify

import (
	"context"
	"errors"
	"time"
)

// ErrQueueEmpty is returned by PopWork when no record is waiting.
var ErrQueueEmpty = errors.New("notification queue is empty")

// Queue is the messaging boundary between the scheduler and the worker.
// Implementations must guarantee that PopWork removes a record exactly
// once even with concurrent poppers.
type Queue interface {
	// Put stores a keyed value with a bounded lifetime, replacing any
	// previous value under the same key.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// PushWork appends a record to the work queue.
	PushWork(ctx context.Context, value []byte) error

	// PopWork removes and returns the oldest record from the work queue.
	// Returns ErrQueueEmpty when there is nothing to pop.
	PopWork(ctx context.Context) ([]byte, error)
}
