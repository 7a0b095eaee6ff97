// Package redisq implements the notification queue on Redis: keyed records
// stored with SET+TTL, the work queue as a list fed with LPUSH and drained
// with RPOP. RPOP removes atomically, so concurrent poppers can never
// observe the same record.
package redisq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jmoreland/taskdeck/internal/notify"
)

// DefaultWorkKey is the Redis list holding pending reminder records.
const DefaultWorkKey = "notification:queue"

// Queue implements notify.Queue on a Redis client.
type Queue struct {
	client  *redis.Client
	workKey string
	logger  *slog.Logger
}

// Ensure Queue implements the notify.Queue interface.
var _ notify.Queue = (*Queue)(nil)

// New creates a Queue using the given client. An empty workKey falls back
// to DefaultWorkKey. If logger is nil, the default logger is used.
func New(client *redis.Client, workKey string, logger *slog.Logger) *Queue {
	if client == nil {
		panic("client cannot be nil")
	}
	if workKey == "" {
		workKey = DefaultWorkKey
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Queue{
		client:  client,
		workKey: workKey,
		logger:  logger.With(slog.String("component", "redis_queue")),
	}
}

// Connect creates a Redis client for the given address and verifies the
// connection with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return client, nil
}

// Put implements notify.Queue.Put.
func (q *Queue) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := q.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// PushWork implements notify.Queue.PushWork.
func (q *Queue) PushWork(ctx context.Context, value []byte) error {
	if err := q.client.LPush(ctx, q.workKey, value).Err(); err != nil {
		return fmt.Errorf("failed to push onto %s: %w", q.workKey, err)
	}
	return nil
}

// PopWork implements notify.Queue.PopWork. LPUSH plus RPOP makes the list
// FIFO.
func (q *Queue) PopWork(ctx context.Context) ([]byte, error) {
	value, err := q.client.RPop(ctx, q.workKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notify.ErrQueueEmpty
		}
		return nil, fmt.Errorf("failed to pop from %s: %w", q.workKey, err)
	}
	return value, nil
}
