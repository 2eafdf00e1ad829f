package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Queue accepts events for asynchronous delivery. Callers treat Enqueue as
// fire-and-forget: a failed enqueue is logged by the caller, never surfaced
// to the end user.
type Queue interface {
	Enqueue(ctx context.Context, evt Event) error
}

// RedisQueue pushes events onto a Redis list consumed by the email worker.
type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, evt Event) error {
	raw, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, raw).Err(); err != nil {
		return fmt.Errorf("enqueue event: %w", err)
	}
	return nil
}

// Noop discards events. Used in tests and when notifications are disabled.
type Noop struct{}

func (Noop) Enqueue(context.Context, Event) error { return nil }
