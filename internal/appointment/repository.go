package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows appointment listings for users and providers.
type ListFilter struct {
	Status       Status
	UpcomingOnly bool
	Limit        int
	Offset       int
}

// ReminderCandidate is an approved appointment due for a reminder, joined
// with the contact details the notification needs.
type ReminderCandidate struct {
	Appointment
	UserName      string
	UserEmail     string
	ProviderName  string
	ProviderEmail string
}

// Repository contains all DB interactions needed by the booking service.
type Repository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetProviderByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	GetProviderByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error)
	SetProviderVerified(ctx context.Context, id uuid.UUID, verified bool) (*Provider, error)
	ListProviders(ctx context.Context, serviceType string, limit, offset int) ([]Provider, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListForUser(ctx context.Context, userID uuid.UUID, f ListFilter) ([]Appointment, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID, f ListFilter) ([]Appointment, error)

	// ListActiveForProviderOnDate returns the provider's appointments on
	// the calendar day whose status still occupies the slot.
	ListActiveForProviderOnDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]Appointment, error)

	// Conflict checks over half-open [start_time, end_time) intervals of
	// active appointments. exclude skips one appointment id (reschedule).
	ProviderConflictExists(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string, exclude uuid.UUID) (bool, error)
	UserConflictExists(ctx context.Context, userID uuid.UUID, date time.Time, startTime, endTime string, exclude uuid.UUID) (bool, error)

	CountActiveForProviderOnDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int, error)
	CountActiveForUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)

	// Create inserts the appointment and bumps the provider's total
	// counter in one transaction.
	Create(ctx context.Context, a *Appointment) error

	// UpdateStatus persists a validated transition with compare-and-swap
	// on the previous status; ErrStatusConflict when the row moved. The
	// provider's completed/cancelled counters are updated in the same
	// transaction.
	UpdateStatus(ctx context.Context, a *Appointment, from Status) error

	// UpdateReschedule persists the compound reschedule (new slot, both
	// history trails, counters, reminder reset) with compare-and-swap on
	// the APPROVED status.
	UpdateReschedule(ctx context.Context, a *Appointment, from Status) error

	// Reminder scan support.
	ListRemindersDue(ctx context.Context, from, to time.Time) ([]ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}
