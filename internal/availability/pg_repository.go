package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule

	err := row.Scan(
		&r.ID,
		&r.ProviderID,
		&r.DayOfWeek,
		&r.Windows,
		&r.IsActive,
		&r.Exceptions,
		&r.Priority,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	return &r, nil
}

func (r *PgRepository) GetRule(ctx context.Context, providerID uuid.UUID, weekday string) (*Rule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, provider_id, day_of_week, time_windows, is_active, exception_dates, priority, created_at, updated_at
		FROM availability_rules
		WHERE provider_id = $1 AND day_of_week = $2
	`, providerID, weekday)
	return scanRule(row)
}

func (r *PgRepository) ListRules(ctx context.Context, providerID uuid.UUID) ([]Rule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, day_of_week, time_windows, is_active, exception_dates, priority, created_at, updated_at
		FROM availability_rules
		WHERE provider_id = $1
		ORDER BY day_of_week
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) CreateRule(ctx context.Context, rule *Rule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO availability_rules (id, provider_id, day_of_week, time_windows, is_active, exception_dates, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`, rule.ID, rule.ProviderID, rule.DayOfWeek, rule.Windows, rule.IsActive, rule.Exceptions, rule.Priority)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique violation on (provider_id, day_of_week)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrRuleExists
		}
		return err
	}

	return nil
}

func (r *PgRepository) UpdateRule(ctx context.Context, rule *Rule) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE availability_rules
		SET time_windows = $2,
		    is_active = $3,
		    exception_dates = $4,
		    priority = $5,
		    updated_at = now()
		WHERE id = $1
	`, rule.ID, rule.Windows, rule.IsActive, rule.Exceptions, rule.Priority)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *PgRepository) HasExceptionOn(ctx context.Context, providerID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM availability_rules ar,
			     jsonb_array_elements(ar.exception_dates) exc
			WHERE ar.provider_id = $1
			  AND (exc->>'date')::timestamptz::date = $2::date
		)
	`, providerID, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) ListExceptions(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]ExceptionDate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT exc
		FROM availability_rules ar,
		     jsonb_array_elements(ar.exception_dates) exc
		WHERE ar.provider_id = $1
		  AND (exc->>'date')::timestamptz::date BETWEEN $2::date AND $3::date
		ORDER BY (exc->>'date')::timestamptz
	`, providerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ExceptionDate
	for rows.Next() {
		var exc ExceptionDate
		if err := rows.Scan(&exc); err != nil {
			return nil, err
		}
		result = append(result, exc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
