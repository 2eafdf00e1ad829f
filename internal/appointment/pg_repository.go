package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const appointmentColumns = `
	id, reference, user_id, provider_id, date, start_time, end_time, status,
	notes, cancellation_reason, rejection_reason,
	service_name, service_price, service_duration,
	status_history, reschedule_history, reschedule_count, reschedule_limit,
	reminder_sent, reminder_sent_at, created_at, updated_at`

const providerColumns = `
	id, user_id, business_name, service_type, base_price, currency,
	slot_duration, max_appointments_per_day, require_approval_late_reschedule,
	total_appointments, completed_appointments, cancelled_appointments,
	is_verified, created_at, updated_at`

// Helpers

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var reminderSentAt *time.Time

	err := row.Scan(
		&a.ID,
		&a.Reference,
		&a.UserID,
		&a.ProviderID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&a.CancellationReason,
		&a.RejectionReason,
		&a.Service.ServiceName,
		&a.Service.Price,
		&a.Service.Duration,
		&a.StatusHistory,
		&a.RescheduleHistory,
		&a.RescheduleCount,
		&a.RescheduleLimit,
		&a.ReminderSent,
		&reminderSentAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.ReminderSentAt = reminderSentAt
	return &a, nil
}

func scanProvider(row pgx.Row) (*Provider, error) {
	var p Provider

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.BusinessName,
		&p.ServiceType,
		&p.BasePrice,
		&p.Currency,
		&p.SlotDuration,
		&p.MaxAppointmentsPerDay,
		&p.RequireApprovalForLateReschedule,
		&p.TotalAppointments,
		&p.CompletedAppointments,
		&p.CancelledAppointments,
		&p.IsVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	return &p, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.MaxAppointmentsPerDay,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Interface methods

func (r *PgRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, role, max_appointments_per_day, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PgRepository) GetProviderByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, id)
	return scanProvider(row)
}

func (r *PgRepository) GetProviderByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE user_id = $1`, userID)
	return scanProvider(row)
}

func (r *PgRepository) SetProviderVerified(ctx context.Context, id uuid.UUID, verified bool) (*Provider, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE providers
		SET is_verified = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+providerColumns, id, verified)
	return scanProvider(row)
}

func (r *PgRepository) ListProviders(ctx context.Context, serviceType string, limit, offset int) ([]Provider, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+providerColumns+`
		FROM providers
		WHERE ($1 = '' OR service_type = $1)
		ORDER BY business_name
		LIMIT $2 OFFSET $3
	`, serviceType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListForUser(ctx context.Context, userID uuid.UUID, f ListFilter) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1
		  AND ($2 = '' OR status = $2)
		  AND (NOT $3 OR (date >= current_date AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')))
		ORDER BY date DESC, start_time DESC
		LIMIT $4 OFFSET $5
	`, userID, string(f.Status), f.UpcomingOnly, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *PgRepository) ListForProvider(ctx context.Context, providerID uuid.UUID, f ListFilter) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE provider_id = $1
		  AND ($2 = '' OR status = $2)
		  AND (NOT $3 OR (date >= current_date AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')))
		ORDER BY date DESC, start_time DESC
		LIMIT $4 OFFSET $5
	`, providerID, string(f.Status), f.UpcomingOnly, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *PgRepository) ListActiveForProviderOnDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE provider_id = $1
		  AND date = $2::date
		  AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')
		ORDER BY start_time
	`, providerID, date)
	if err != nil {
		return nil, err
	}
	return scanAppointments(rows)
}

func (r *PgRepository) ProviderConflictExists(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE provider_id = $1
			  AND date = $2::date
			  AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')
			  AND start_time < $4
			  AND end_time > $3
			  AND id <> $5
		)
	`, providerID, date, startTime, endTime, exclude).Scan(&exists)
	return exists, err
}

func (r *PgRepository) UserConflictExists(ctx context.Context, userID uuid.UUID, date time.Time, startTime, endTime string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE user_id = $1
			  AND date = $2::date
			  AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')
			  AND start_time < $4
			  AND end_time > $3
			  AND id <> $5
		)
	`, userID, date, startTime, endTime, exclude).Scan(&exists)
	return exists, err
}

func (r *PgRepository) CountActiveForProviderOnDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM appointments
		WHERE provider_id = $1
		  AND date = $2::date
		  AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')
	`, providerID, date).Scan(&count)
	return count, err
}

func (r *PgRepository) CountActiveForUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM appointments
		WHERE user_id = $1
		  AND date = $2::date
		  AND status IN ('REQUESTED', 'APPROVED', 'IN_PROGRESS')
	`, userID, date).Scan(&count)
	return count, err
}

func (r *PgRepository) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO appointments (
			id, reference, user_id, provider_id, date, start_time, end_time, status,
			notes, cancellation_reason, rejection_reason,
			service_name, service_price, service_duration,
			status_history, reschedule_history, reschedule_count, reschedule_limit,
			reminder_sent, reminder_sent_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, '', '', $10, $11, $12, $13, $14, $15, $16, false, NULL, now(), now())
	`,
		a.ID, a.Reference, a.UserID, a.ProviderID, a.Date, a.StartTime, a.EndTime, a.Status,
		a.Notes, a.Service.ServiceName, a.Service.Price, a.Service.Duration,
		a.StatusHistory, a.RescheduleHistory, a.RescheduleCount, a.RescheduleLimit,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE providers
		SET total_appointments = total_appointments + 1,
		    updated_at = now()
		WHERE id = $1
	`, a.ProviderID)
	if err != nil {
		return fmt.Errorf("bump provider total: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) UpdateStatus(ctx context.Context, a *Appointment, from Status) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $2,
		    cancellation_reason = $3,
		    rejection_reason = $4,
		    status_history = $5,
		    updated_at = now()
		WHERE id = $1
		  AND status = $6
	`, a.ID, a.Status, a.CancellationReason, a.RejectionReason, a.StatusHistory, from)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusConflict
	}

	// Counters move with the transition that lands them.
	switch a.Status {
	case StatusCompleted:
		_, err = tx.Exec(ctx, `
			UPDATE providers
			SET completed_appointments = completed_appointments + 1, updated_at = now()
			WHERE id = $1
		`, a.ProviderID)
	case StatusCancelled:
		_, err = tx.Exec(ctx, `
			UPDATE providers
			SET cancelled_appointments = cancelled_appointments + 1, updated_at = now()
			WHERE id = $1
		`, a.ProviderID)
	}
	if err != nil {
		return fmt.Errorf("bump provider counter: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) UpdateReschedule(ctx context.Context, a *Appointment, from Status) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET date = $2::date,
		    start_time = $3,
		    end_time = $4,
		    status = $5,
		    status_history = $6,
		    reschedule_history = $7,
		    reschedule_count = $8,
		    reminder_sent = false,
		    reminder_sent_at = NULL,
		    updated_at = now()
		WHERE id = $1
		  AND status = $9
	`, a.ID, a.Date, a.StartTime, a.EndTime, a.Status,
		a.StatusHistory, a.RescheduleHistory, a.RescheduleCount, from)
	if err != nil {
		return fmt.Errorf("update reschedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *PgRepository) ListRemindersDue(ctx context.Context, from, to time.Time) ([]ReminderCandidate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			a.id, a.reference, a.user_id, a.provider_id, a.date, a.start_time, a.end_time, a.status,
			a.notes, a.cancellation_reason, a.rejection_reason,
			a.service_name, a.service_price, a.service_duration,
			a.status_history, a.reschedule_history, a.reschedule_count, a.reschedule_limit,
			a.reminder_sent, a.reminder_sent_at, a.created_at, a.updated_at,
			u.name, u.email, p.business_name, pu.email
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		JOIN providers p ON p.id = a.provider_id
		JOIN users pu ON pu.id = p.user_id
		WHERE a.status = 'APPROVED'
		  AND a.reminder_sent = false
		  AND (a.date + a.start_time::time) >= $1
		  AND (a.date + a.start_time::time) < $2
		ORDER BY a.date, a.start_time
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReminderCandidate
	for rows.Next() {
		var c ReminderCandidate
		var reminderSentAt *time.Time

		err := rows.Scan(
			&c.ID, &c.Reference, &c.UserID, &c.ProviderID, &c.Date, &c.StartTime, &c.EndTime, &c.Status,
			&c.Notes, &c.CancellationReason, &c.RejectionReason,
			&c.Service.ServiceName, &c.Service.Price, &c.Service.Duration,
			&c.StatusHistory, &c.RescheduleHistory, &c.RescheduleCount, &c.RescheduleLimit,
			&c.ReminderSent, &reminderSentAt, &c.CreatedAt, &c.UpdatedAt,
			&c.UserName, &c.UserEmail, &c.ProviderName, &c.ProviderEmail,
		)
		if err != nil {
			return nil, err
		}

		c.ReminderSentAt = reminderSentAt
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET reminder_sent = true,
		    reminder_sent_at = $2,
		    updated_at = now()
		WHERE id = $1
		  AND reminder_sent = false
	`, id, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
