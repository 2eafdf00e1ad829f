package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/varunrevoori/harmony/internal/timeutil"
)

// Service owns provider availability rules: recurring weekly windows plus
// dated exceptions.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) GetRule(ctx context.Context, providerID uuid.UUID, weekday string) (*Rule, error) {
	if !timeutil.IsWeekday(weekday) {
		return nil, ErrBadWeekday
	}
	return s.repo.GetRule(ctx, providerID, weekday)
}

// ActiveRule returns the rule for the weekday only when it is active.
// Inactive and missing rules both yield ErrRuleNotFound.
func (s *Service) ActiveRule(ctx context.Context, providerID uuid.UUID, weekday string) (*Rule, error) {
	rule, err := s.repo.GetRule(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}
	if !rule.IsActive {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

func (s *Service) ListRules(ctx context.Context, providerID uuid.UUID) ([]Rule, error) {
	return s.repo.ListRules(ctx, providerID)
}

// UpsertWindow adds a window to the provider's rule for the weekday,
// creating the rule when absent. The insert is all-or-nothing: an
// overlapping or malformed window leaves the stored rule untouched.
func (s *Service) UpsertWindow(ctx context.Context, providerID uuid.UUID, weekday string, w TimeWindow) (*Rule, error) {
	if !timeutil.IsWeekday(weekday) {
		return nil, ErrBadWeekday
	}

	rule, err := s.repo.GetRule(ctx, providerID, weekday)
	switch {
	case errors.Is(err, ErrRuleNotFound):
		rule = &Rule{
			ProviderID: providerID,
			DayOfWeek:  weekday,
			IsActive:   true,
			Windows:    []TimeWindow{},
			Exceptions: []ExceptionDate{},
		}
		if err := rule.AddWindow(w); err != nil {
			return nil, err
		}
		if err := s.repo.CreateRule(ctx, rule); err != nil {
			return nil, fmt.Errorf("create rule: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load rule: %w", err)
	default:
		if err := rule.AddWindow(w); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateRule(ctx, rule); err != nil {
			return nil, fmt.Errorf("update rule: %w", err)
		}
	}

	s.log.Info().
		Str("provider_id", providerID.String()).
		Str("weekday", weekday).
		Str("window", w.StartTime+"-"+w.EndTime).
		Msg("availability window added")

	return rule, nil
}

func (s *Service) RemoveWindow(ctx context.Context, providerID uuid.UUID, weekday string, w TimeWindow) (*Rule, error) {
	rule, err := s.repo.GetRule(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}
	if !rule.RemoveWindow(w) {
		return nil, ErrRuleNotFound
	}
	if err := s.repo.UpdateRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("update rule: %w", err)
	}
	return rule, nil
}

// SetActive soft-deactivates or reactivates a weekday rule. Rules are never
// hard-deleted.
func (s *Service) SetActive(ctx context.Context, providerID uuid.UUID, weekday string, active bool) (*Rule, error) {
	rule, err := s.repo.GetRule(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}
	rule.IsActive = active
	if err := s.repo.UpdateRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("update rule: %w", err)
	}
	return rule, nil
}

// AddException blocks a calendar day on the weekday's rule matching the
// date. The rule for that weekday must already exist.
func (s *Service) AddException(ctx context.Context, providerID uuid.UUID, exc ExceptionDate) (*Rule, error) {
	if exc.Category == "" {
		exc.Category = ExceptionBlocked
	}
	exc.Date = timeutil.DateOnly(exc.Date.UTC())

	weekday := timeutil.DayOfWeek(exc.Date)
	rule, err := s.repo.GetRule(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}
	if rule.HasExceptionOn(exc.Date) {
		return rule, nil
	}

	rule.Exceptions = append(rule.Exceptions, exc)
	if err := s.repo.UpdateRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("update rule: %w", err)
	}

	s.log.Info().
		Str("provider_id", providerID.String()).
		Time("date", exc.Date).
		Str("category", string(exc.Category)).
		Msg("exception date added")

	return rule, nil
}

// IsExceptionDate reports whether the calendar day is blocked for the
// provider, checking every rule regardless of weekday.
func (s *Service) IsExceptionDate(ctx context.Context, providerID uuid.UUID, date time.Time) (bool, error) {
	return s.repo.HasExceptionOn(ctx, providerID, date)
}

func (s *Service) ListExceptions(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]ExceptionDate, error) {
	return s.repo.ListExceptions(ctx, providerID, from, to)
}
