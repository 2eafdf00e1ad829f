package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRuleNotFound   = errors.New("availability rule not found")
	ErrRuleExists     = errors.New("availability rule already exists for this weekday")
	ErrWindowOverlap  = errors.New("time windows cannot overlap within the same day")
	ErrWindowInverted = errors.New("window start time must be before end time")
	ErrBadWeekday     = errors.New("invalid day of week")
)

// Repository contains all DB interactions needed by the rule store.
type Repository interface {
	GetRule(ctx context.Context, providerID uuid.UUID, weekday string) (*Rule, error)
	ListRules(ctx context.Context, providerID uuid.UUID) ([]Rule, error)

	// CreateRule fails with ErrRuleExists when a rule for the same
	// (provider, weekday) pair is already present.
	CreateRule(ctx context.Context, r *Rule) error
	UpdateRule(ctx context.Context, r *Rule) error

	// HasExceptionOn checks the calendar day against every rule the
	// provider has, regardless of weekday.
	HasExceptionOn(ctx context.Context, providerID uuid.UUID, date time.Time) (bool, error)
	ListExceptions(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]ExceptionDate, error)
}
