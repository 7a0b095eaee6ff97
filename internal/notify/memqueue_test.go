package notify

import (
	"context"
	"sync"
	"time"
)

// memQueue is an in-memory Queue for tests: a key/value map plus a FIFO
// work list, with the same single-pop guarantee the Redis implementation
// provides.
type memQueue struct {
	mu      sync.Mutex
	keyed   map[string][]byte
	ttls    map[string]time.Duration
	work    [][]byte
	putErr  error
	pushErr error
	popErr  error
}

func newMemQueue() *memQueue {
	return &memQueue{
		keyed: make(map[string][]byte),
		ttls:  make(map[string]time.Duration),
	}
}

func (q *memQueue) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.putErr != nil {
		return q.putErr
	}
	q.keyed[key] = value
	q.ttls[key] = ttl
	return nil
}

func (q *memQueue) PushWork(_ context.Context, value []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pushErr != nil {
		return q.pushErr
	}
	q.work = append(q.work, value)
	return nil
}

func (q *memQueue) PopWork(_ context.Context) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.popErr != nil {
		return nil, q.popErr
	}
	if len(q.work) == 0 {
		return nil, ErrQueueEmpty
	}
	value := q.work[0]
	q.work = q.work[1:]
	return value, nil
}

func (q *memQueue) workLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.work)
}
