package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Sender delivers a single event to its recipient.
type Sender interface {
	Send(ctx context.Context, evt Event) error
}

// Consumer pops events off the queue and hands them to a Sender. Failed
// events are retried with a linear backoff up to MaxAttempts, then parked on
// the dead-letter list for inspection.
type Consumer struct {
	rdb         *redis.Client
	key         string
	deadKey     string
	maxAttempts int
	backoff     time.Duration
	sender      Sender
	log         zerolog.Logger
}

func NewConsumer(rdb *redis.Client, key, deadKey string, maxAttempts int, backoff time.Duration, sender Sender, log zerolog.Logger) *Consumer {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if backoff <= 0 {
		backoff = 5 * time.Second
	}
	return &Consumer{
		rdb:         rdb,
		key:         key,
		deadKey:     deadKey,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		sender:      sender,
		log:         log,
	}
}

// Run blocks until ctx is cancelled, processing events one at a time.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info().Str("queue", c.key).Msg("notification consumer started")

	for {
		res, err := c.rdb.BRPop(ctx, 5*time.Second, c.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				c.log.Info().Msg("notification consumer stopping")
				return ctx.Err()
			}
			c.log.Error().Err(err).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}
		c.handle(ctx, []byte(res[1]))
	}
}

func (c *Consumer) handle(ctx context.Context, raw []byte) {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		c.log.Error().Err(err).Str("raw", string(raw)).Msg("dropping undecodable event")
		return
	}

	if err := c.sender.Send(ctx, evt); err != nil {
		c.retry(ctx, evt, err)
		return
	}

	c.log.Info().
		Str("event_id", evt.ID).
		Str("type", string(evt.Type)).
		Str("recipient", evt.Recipient).
		Msg("notification delivered")
}

func (c *Consumer) retry(ctx context.Context, evt Event, cause error) {
	evt.Attempts++

	if evt.Attempts >= c.maxAttempts {
		c.log.Error().Err(cause).
			Str("event_id", evt.ID).
			Str("type", string(evt.Type)).
			Int("attempts", evt.Attempts).
			Msg("notification exhausted retries, dead-lettering")
		c.push(ctx, c.deadKey, evt)
		return
	}

	c.log.Warn().Err(cause).
		Str("event_id", evt.ID).
		Int("attempts", evt.Attempts).
		Msg("notification failed, requeueing")

	select {
	case <-time.After(time.Duration(evt.Attempts) * c.backoff):
	case <-ctx.Done():
		// Requeue without the delay so the event is not lost on shutdown.
	}
	c.push(ctx, c.key, evt)
}

func (c *Consumer) push(ctx context.Context, key string, evt Event) {
	raw, err := json.Marshal(evt)
	if err != nil {
		c.log.Error().Err(err).Str("event_id", evt.ID).Msg("marshal for requeue failed")
		return
	}
	if err := c.rdb.LPush(context.WithoutCancel(ctx), key, raw).Err(); err != nil {
		c.log.Error().Err(err).Str("event_id", evt.ID).Str("key", key).Msg("requeue failed")
	}
}
