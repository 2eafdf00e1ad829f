// Package audit records best-effort trails of domain actions. Recording
// never blocks or fails the calling operation.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Entry is one audit record.
type Entry struct {
	EntityType string
	EntityID   uuid.UUID
	Action     string
	ActorID    uuid.UUID
	Detail     map[string]any
	At         time.Time
}

type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Noop discards entries. Used in tests.
type Noop struct{}

func (Noop) Record(context.Context, Entry) {}

// Dispatcher buffers entries on a channel and writes them from a single
// goroutine. When the buffer is full the entry is dropped and counted; the
// audit trail must never apply backpressure to bookings.
type Dispatcher struct {
	pool    *pgxpool.Pool
	entries chan Entry
	log     zerolog.Logger
	done    chan struct{}
}

func NewDispatcher(pool *pgxpool.Pool, buffer int, log zerolog.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	d := &Dispatcher{
		pool:    pool,
		entries: make(chan Entry, buffer),
		log:     log,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Record(_ context.Context, e Entry) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	select {
	case d.entries <- e:
	default:
		d.log.Warn().
			Str("entity", e.EntityType).
			Str("action", e.Action).
			Msg("audit buffer full, entry dropped")
	}
}

// Close drains buffered entries and stops the writer.
func (d *Dispatcher) Close() {
	close(d.entries)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for e := range d.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := d.pool.Exec(ctx, `
			INSERT INTO event_logs (id, entity_type, entity_id, action, actor_id, detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), e.EntityType, e.EntityID, e.Action, e.ActorID, e.Detail, e.At)
		cancel()
		if err != nil {
			d.log.Error().Err(err).
				Str("entity", e.EntityType).
				Str("action", e.Action).
				Msg("audit write failed")
		}
	}
}
