package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		email text NOT NULL UNIQUE,
		role text NOT NULL,
		max_appointments_per_day int NOT NULL DEFAULT 0,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS providers (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users(id),
		business_name text NOT NULL,
		service_type text NOT NULL,
		base_price numeric(10,2) NOT NULL DEFAULT 0,
		currency text NOT NULL DEFAULT 'USD',
		slot_duration int NOT NULL DEFAULT 60,
		max_appointments_per_day int NOT NULL DEFAULT 0,
		require_approval_late_reschedule boolean NOT NULL DEFAULT false,
		total_appointments int NOT NULL DEFAULT 0,
		completed_appointments int NOT NULL DEFAULT 0,
		cancelled_appointments int NOT NULL DEFAULT 0,
		is_verified boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS availability_rules (
		id uuid PRIMARY KEY,
		provider_id uuid NOT NULL REFERENCES providers(id),
		day_of_week text NOT NULL,
		time_windows jsonb NOT NULL DEFAULT '[]',
		is_active boolean NOT NULL DEFAULT true,
		exception_dates jsonb NOT NULL DEFAULT '[]',
		priority int NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (provider_id, day_of_week)
	)`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id uuid PRIMARY KEY,
		reference text NOT NULL UNIQUE,
		user_id uuid NOT NULL REFERENCES users(id),
		provider_id uuid NOT NULL REFERENCES providers(id),
		date date NOT NULL,
		start_time text NOT NULL,
		end_time text NOT NULL,
		status text NOT NULL,
		notes text NOT NULL DEFAULT '',
		cancellation_reason text NOT NULL DEFAULT '',
		rejection_reason text NOT NULL DEFAULT '',
		service_name text NOT NULL DEFAULT '',
		service_price numeric(10,2) NOT NULL DEFAULT 0,
		service_duration int NOT NULL DEFAULT 60,
		status_history jsonb NOT NULL DEFAULT '[]',
		reschedule_history jsonb NOT NULL DEFAULT '[]',
		reschedule_count int NOT NULL DEFAULT 0,
		reschedule_limit int NOT NULL DEFAULT 2,
		reminder_sent boolean NOT NULL DEFAULT false,
		reminder_sent_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_provider_date
		ON appointments (provider_id, date)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_user_date
		ON appointments (user_id, date)`,

	`CREATE INDEX IF NOT EXISTS idx_appointments_status_date
		ON appointments (status, date)`,

	`CREATE TABLE IF NOT EXISTS event_logs (
		id uuid PRIMARY KEY,
		entity_type text NOT NULL,
		entity_id uuid NOT NULL,
		action text NOT NULL,
		actor_id uuid,
		detail jsonb,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_event_logs_entity
		ON event_logs (entity_type, entity_id)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
