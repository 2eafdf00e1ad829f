package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/varunrevoori/harmony/internal/audit"
	"github.com/varunrevoori/harmony/internal/availability"
	"github.com/varunrevoori/harmony/internal/config"
	"github.com/varunrevoori/harmony/internal/notify"
	redisclient "github.com/varunrevoori/harmony/internal/redis"
	"github.com/varunrevoori/harmony/internal/timeutil"
)

// RuleStore is the slice of the availability service the booking flow needs.
type RuleStore interface {
	ActiveRule(ctx context.Context, providerID uuid.UUID, weekday string) (*availability.Rule, error)
	IsExceptionDate(ctx context.Context, providerID uuid.UUID, date time.Time) (bool, error)
}

type Service struct {
	repo   Repository
	rules  RuleStore
	locker redisclient.Locker
	queue  notify.Queue
	audit  audit.Recorder
	cfg    config.Config
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, rules RuleStore, locker redisclient.Locker, queue notify.Queue, rec audit.Recorder, cfg config.Config, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		rules:  rules,
		locker: locker,
		queue:  queue,
		audit:  rec,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

const (
	msgDateBlocked    = "This date is blocked (holiday or exception)"
	msgNoRule         = "Provider is not available on this day"
	msgAllBooked      = "All slots are booked"
	msgSlotsAvailable = "Slots available"
)

// ComputeAvailableSlots builds the bookable surface of one provider day:
// candidate slots from the weekday rule's windows, minus slots overlapping
// any active appointment. The computation writes nothing, so repeated calls
// with an unchanged booking set return identical results.
func (s *Service) ComputeAvailableSlots(ctx context.Context, providerID uuid.UUID, date time.Time) (*DayAvailability, error) {
	provider, err := s.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	day := timeutil.DateOnly(date)
	out := &DayAvailability{
		Date:      day,
		DayOfWeek: timeutil.DayOfWeek(day),
	}

	blocked, err := s.rules.IsExceptionDate(ctx, providerID, day)
	if err != nil {
		return nil, fmt.Errorf("check exception date: %w", err)
	}
	if blocked {
		out.Message = msgDateBlocked
		return out, nil
	}

	rule, err := s.rules.ActiveRule(ctx, providerID, out.DayOfWeek)
	if err != nil {
		if errors.Is(err, availability.ErrRuleNotFound) {
			out.Message = msgNoRule
			return out, nil
		}
		return nil, fmt.Errorf("load availability rule: %w", err)
	}

	duration := provider.SlotDuration
	if duration <= 0 {
		duration = s.cfg.DefaultSlotDuration
	}

	candidates, err := GenerateSlots(rule.Windows, duration)
	if err != nil {
		return nil, fmt.Errorf("generate slots: %w", err)
	}
	if len(candidates) == 0 {
		out.Message = msgNoRule
		return out, nil
	}

	booked, err := s.repo.ListActiveForProviderOnDate(ctx, providerID, day)
	if err != nil {
		return nil, fmt.Errorf("load booked appointments: %w", err)
	}

	free, err := FilterBookedSlots(candidates, booked)
	if err != nil {
		return nil, fmt.Errorf("filter booked slots: %w", err)
	}

	out.TotalSlots = len(candidates)
	out.BookedSlots = len(candidates) - len(free)
	out.AvailableSlots = free
	if len(free) == 0 {
		out.Message = msgAllBooked
	} else {
		out.Message = msgSlotsAvailable
	}

	return out, nil
}

// ComputeAvailabilityRange runs the single-day computation over an inclusive
// date span, capped by config.
func (s *Service) ComputeAvailabilityRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]DayAvailability, error) {
	start := timeutil.DateOnly(from)
	end := timeutil.DateOnly(to)
	if end.Before(start) {
		start, end = end, start
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > s.cfg.MaxAvailabilityRange {
		return nil, ErrRangeTooLong
	}

	result := make([]DayAvailability, 0, days)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		da, err := s.ComputeAvailableSlots(ctx, providerID, day)
		if err != nil {
			return nil, err
		}
		result = append(result, *da)
	}

	return result, nil
}

// validateSlot normalizes the requested interval and checks it against the
// provider's schedule: valid HH:mm, start before end, not in the past, the
// date not blocked, and the interval fully inside one window of the active
// weekday rule.
func (s *Service) validateSlot(ctx context.Context, providerID uuid.UUID, day time.Time, startTime, endTime string) (string, string, error) {
	startMin, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return "", "", err
	}
	endMin, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return "", "", err
	}
	if startMin >= endMin {
		return "", "", ErrSlotOrder
	}

	startN := timeutil.FromMinutes(startMin)
	endN := timeutil.FromMinutes(endMin)

	startsAt, err := timeutil.CombineDateTime(day, startN)
	if err != nil {
		return "", "", err
	}
	if startsAt.Before(s.now()) {
		return "", "", ErrPastSlot
	}

	blocked, err := s.rules.IsExceptionDate(ctx, providerID, day)
	if err != nil {
		return "", "", fmt.Errorf("check exception date: %w", err)
	}
	if blocked {
		return "", "", ErrDateBlocked
	}

	rule, err := s.rules.ActiveRule(ctx, providerID, timeutil.DayOfWeek(day))
	if err != nil {
		if errors.Is(err, availability.ErrRuleNotFound) {
			return "", "", ErrSlotUnavailable
		}
		return "", "", fmt.Errorf("load availability rule: %w", err)
	}

	for _, w := range rule.Windows {
		if windowContains(w, startMin, endMin) {
			return startN, endN, nil
		}
	}
	return "", "", ErrSlotUnavailable
}

// CheckSlot reports whether one interval is bookable, folding domain
// failures into the result instead of an error.
func (s *Service) CheckSlot(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string) (*SlotCheck, error) {
	day := timeutil.DateOnly(date)

	startN, endN, err := s.validateSlot(ctx, providerID, day, startTime, endTime)
	if err != nil {
		if reason, ok := slotFailure(err); ok {
			return &SlotCheck{Available: false, Reason: reason}, nil
		}
		return nil, err
	}

	conflict, err := s.repo.ProviderConflictExists(ctx, providerID, day, startN, endN, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check provider conflict: %w", err)
	}
	if conflict {
		return &SlotCheck{Available: false, Reason: ErrBookingConflict.Error()}, nil
	}

	return &SlotCheck{Available: true, Reason: msgSlotsAvailable}, nil
}

func slotFailure(err error) (string, bool) {
	var fe *timeutil.FormatError
	switch {
	case errors.As(err, &fe),
		errors.Is(err, ErrSlotOrder),
		errors.Is(err, ErrPastSlot),
		errors.Is(err, ErrDateBlocked),
		errors.Is(err, ErrSlotUnavailable):
		return err.Error(), true
	}
	return "", false
}

// BookingRequest is the input of Book.
type BookingRequest struct {
	UserID     uuid.UUID
	ProviderID uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
	Notes      string
}

// Book reserves one slot for a user. The critical section is guarded by a
// per-provider-per-day lock with a nested per-user-per-day lock, always in
// that order; conflicts and daily limits are re-checked inside so two
// concurrent requests for the same slot cannot both commit.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	provider, err := s.repo.GetProviderByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.IsVerified {
		return nil, ErrProviderUnverified
	}

	day := timeutil.DateOnly(req.Date)
	startN, endN, err := s.validateSlot(ctx, req.ProviderID, day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	var created *Appointment

	err = s.withBookingLocks(ctx, req.ProviderID, req.UserID, day, func(lockCtx context.Context) error {
		if err := s.checkConflicts(lockCtx, req.ProviderID, req.UserID, day, startN, endN, uuid.Nil); err != nil {
			return err
		}
		if err := s.checkDailyLimits(lockCtx, provider, user, day); err != nil {
			return err
		}

		now := s.now().UTC()
		appt := &Appointment{
			ID:         uuid.New(),
			Reference:  NewReference(now),
			UserID:     req.UserID,
			ProviderID: req.ProviderID,
			Date:       day,
			StartTime:  startN,
			EndTime:    endN,
			Status:     StatusRequested,
			Notes:      req.Notes,
			Service: ServiceDetails{
				ServiceName: provider.ServiceType,
				Price:       provider.BasePrice,
				Duration:    provider.SlotDuration,
			},
			RescheduleLimit: s.cfg.RescheduleLimit,
		}
		appt.ApplyStatus(StatusRequested, req.UserID, now, "")

		if err := s.repo.Create(lockCtx, appt); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingContended
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "appointment",
		EntityID:   created.ID,
		Action:     "BOOKED",
		ActorID:    req.UserID,
		Detail: map[string]any{
			"reference":  created.Reference,
			"date":       day.Format("2006-01-02"),
			"start_time": startN,
			"end_time":   endN,
		},
	})

	payload := s.appointmentPayload(created, "")
	s.enqueue(ctx, notify.EventBookingConfirmation, user.Email, payload)
	if email := s.providerEmail(ctx, provider); email != "" {
		s.enqueue(ctx, notify.EventNewAppointmentRequest, email, payload)
	}

	s.log.Info().
		Str("appointment_id", created.ID.String()).
		Str("reference", created.Reference).
		Str("provider_id", req.ProviderID.String()).
		Str("date", day.Format("2006-01-02")).
		Msg("appointment booked")

	return created, nil
}

// withBookingLocks acquires the provider-day lock, then the user-day lock
// inside it. The fixed order keeps concurrent bookings deadlock-free.
func (s *Service) withBookingLocks(ctx context.Context, providerID, userID uuid.UUID, day time.Time, fn func(ctx context.Context) error) error {
	d := day.Format("2006-01-02")
	providerKey := fmt.Sprintf("lock:booking:%s:%s", providerID, d)
	userKey := fmt.Sprintf("lock:booking:user:%s:%s", userID, d)

	return s.locker.WithLock(ctx, providerKey, func(ctx context.Context) error {
		return s.locker.WithLock(ctx, userKey, fn)
	})
}

func (s *Service) checkConflicts(ctx context.Context, providerID, userID uuid.UUID, day time.Time, startTime, endTime string, exclude uuid.UUID) error {
	conflict, err := s.repo.ProviderConflictExists(ctx, providerID, day, startTime, endTime, exclude)
	if err != nil {
		return fmt.Errorf("check provider conflict: %w", err)
	}
	if conflict {
		return ErrBookingConflict
	}

	conflict, err = s.repo.UserConflictExists(ctx, userID, day, startTime, endTime, exclude)
	if err != nil {
		return fmt.Errorf("check user conflict: %w", err)
	}
	if conflict {
		return ErrBookingConflict
	}

	return nil
}

// checkDailyLimits enforces both daily ceilings before any row is written.
func (s *Service) checkDailyLimits(ctx context.Context, provider *Provider, user *User, day time.Time) error {
	maxProvider := provider.MaxAppointmentsPerDay
	if maxProvider <= 0 {
		maxProvider = s.cfg.MaxProviderPerDay
	}
	maxUser := user.MaxAppointmentsPerDay
	if maxUser <= 0 {
		maxUser = s.cfg.MaxUserPerDay
	}

	count, err := s.repo.CountActiveForProviderOnDate(ctx, provider.ID, day)
	if err != nil {
		return fmt.Errorf("count provider appointments: %w", err)
	}
	if count >= maxProvider {
		return &CapacityError{Scope: "provider", Limit: maxProvider}
	}

	count, err = s.repo.CountActiveForUserOnDate(ctx, user.ID, day)
	if err != nil {
		return fmt.Errorf("count user appointments: %w", err)
	}
	if count >= maxUser {
		return &CapacityError{Scope: "user", Limit: maxUser}
	}

	return nil
}

// Transition moves an appointment through the lifecycle on behalf of an
// actor. The transition must be valid globally and for the actor's role,
// and the actor must be a party to the appointment (admins excepted).
func (s *Service) Transition(ctx context.Context, actor Actor, id uuid.UUID, to Status, reason string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, appt); err != nil {
		return nil, err
	}

	from := appt.Status
	if err := CheckTransition(actor.Role, from, to); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	appt.ApplyStatus(to, actor.ID, now, reason)

	if err := s.repo.UpdateStatus(ctx, appt, from); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "appointment",
		EntityID:   appt.ID,
		Action:     fmt.Sprintf("STATUS_%s", to),
		ActorID:    actor.ID,
		Detail: map[string]any{
			"from":   string(from),
			"to":     string(to),
			"reason": reason,
		},
	})

	s.notifyTransition(ctx, appt, to, reason)

	s.log.Info().
		Str("appointment_id", appt.ID.String()).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("role", string(actor.Role)).
		Msg("appointment transitioned")

	return appt, nil
}

func (s *Service) notifyTransition(ctx context.Context, appt *Appointment, to Status, reason string) {
	user, err := s.repo.GetUserByID(ctx, appt.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("appointment_id", appt.ID.String()).Msg("load user for notification failed")
		return
	}
	payload := s.appointmentPayload(appt, reason)

	switch to {
	case StatusApproved:
		s.enqueue(ctx, notify.EventAppointmentApproved, user.Email, payload)
	case StatusRejected:
		s.enqueue(ctx, notify.EventAppointmentRejected, user.Email, payload)
	case StatusCompleted:
		s.enqueue(ctx, notify.EventAppointmentCompleted, user.Email, payload)
	case StatusCancelled:
		s.enqueue(ctx, notify.EventAppointmentCancelled, user.Email, payload)
		if provider, err := s.repo.GetProviderByID(ctx, appt.ProviderID); err == nil {
			if email := s.providerEmail(ctx, provider); email != "" {
				s.enqueue(ctx, notify.EventAppointmentCancelled, email, payload)
			}
		}
	}
}

// RescheduleRequest is the input of Reschedule.
type RescheduleRequest struct {
	Date      time.Time
	StartTime string
	EndTime   string
	Reason    string
}

// Reschedule is a compound operation on an APPROVED appointment: eligibility
// check, late classification, new-slot validation, then an atomic move
// through RESCHEDULED into APPROVED, or into REQUESTED when the change is
// late and the provider requires re-approval. Nothing is written when
// validation fails.
func (s *Service) Reschedule(ctx context.Context, actor Actor, id uuid.UUID, req RescheduleRequest) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == RoleServiceProvider {
		return nil, ErrForbidden
	}
	if err := s.authorize(ctx, actor, appt); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := appt.CanReschedule(now); err != nil {
		return nil, err
	}
	late := appt.IsLateReschedule(now, s.cfg.LateRescheduleWindow)

	provider, err := s.repo.GetProviderByID(ctx, appt.ProviderID)
	if err != nil {
		return nil, err
	}

	day := timeutil.DateOnly(req.Date)
	startN, endN, err := s.validateSlot(ctx, appt.ProviderID, day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	err = s.withBookingLocks(ctx, appt.ProviderID, appt.UserID, day, func(lockCtx context.Context) error {
		if err := s.checkConflicts(lockCtx, appt.ProviderID, appt.UserID, day, startN, endN, appt.ID); err != nil {
			return err
		}

		appt.RescheduleHistory = append(appt.RescheduleHistory, RescheduleRecord{
			PreviousDate:      appt.Date,
			PreviousStartTime: appt.StartTime,
			PreviousEndTime:   appt.EndTime,
			NewDate:           day,
			NewStartTime:      startN,
			NewEndTime:        endN,
			RescheduledBy:     actor.ID,
			RescheduledAt:     now,
			Reason:            req.Reason,
			IsLateReschedule:  late,
		})
		appt.RescheduleCount++

		target := StatusApproved
		if late && provider.RequireApprovalForLateReschedule {
			target = StatusRequested
		}
		appt.ApplyStatus(StatusRescheduled, actor.ID, now, req.Reason)
		appt.ApplyStatus(target, actor.ID, now, "")

		appt.Date = day
		appt.StartTime = startN
		appt.EndTime = endN
		appt.ReminderSent = false
		appt.ReminderSentAt = nil

		return s.repo.UpdateReschedule(lockCtx, appt, StatusApproved)
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingContended
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "appointment",
		EntityID:   appt.ID,
		Action:     "RESCHEDULED",
		ActorID:    actor.ID,
		Detail: map[string]any{
			"date":       day.Format("2006-01-02"),
			"start_time": startN,
			"end_time":   endN,
			"late":       late,
			"status":     string(appt.Status),
		},
	})

	payload := s.appointmentPayload(appt, req.Reason)
	if user, err := s.repo.GetUserByID(ctx, appt.UserID); err == nil {
		s.enqueue(ctx, notify.EventAppointmentRescheduled, user.Email, payload)
	}
	if email := s.providerEmail(ctx, provider); email != "" {
		s.enqueue(ctx, notify.EventAppointmentRescheduled, email, payload)
	}

	s.log.Info().
		Str("appointment_id", appt.ID.String()).
		Bool("late", late).
		Str("status", string(appt.Status)).
		Int("reschedule_count", appt.RescheduleCount).
		Msg("appointment rescheduled")

	return appt, nil
}

// DispatchDueReminders scans for approved appointments starting inside the
// reminder window and enqueues one reminder each. The reminder flag is
// flipped with compare-and-swap before the enqueue, so overlapping scans
// never double-send. Returns the number of reminders dispatched.
func (s *Service) DispatchDueReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	from := now
	to := now.Add(s.cfg.ReminderLead + s.cfg.ReminderSpan)

	due, err := s.repo.ListRemindersDue(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	sent := 0
	for _, c := range due {
		ok, err := s.repo.MarkReminderSent(ctx, c.ID, now)
		if err != nil {
			s.log.Error().Err(err).Str("appointment_id", c.ID.String()).Msg("mark reminder sent failed")
			continue
		}
		if !ok {
			// Another scan got there first.
			continue
		}

		payload := map[string]any{
			"reference":     c.Reference,
			"service_name":  c.Service.ServiceName,
			"date":          c.Date.Format("2006-01-02"),
			"start_time":    c.StartTime,
			"end_time":      c.EndTime,
			"provider_name": c.ProviderName,
			"user_name":     c.UserName,
		}
		s.enqueue(ctx, notify.EventAppointmentReminder, c.UserEmail, payload)
		sent++
	}

	if sent > 0 {
		s.log.Info().Int("sent", sent).Msg("reminders dispatched")
	}

	return sent, nil
}

// GetAppointment loads one appointment the actor is allowed to see.
func (s *Service) GetAppointment(ctx context.Context, actor Actor, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) ListUserAppointments(ctx context.Context, userID uuid.UUID, f ListFilter) ([]Appointment, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	return s.repo.ListForUser(ctx, userID, f)
}

func (s *Service) ListProviderAppointments(ctx context.Context, providerID uuid.UUID, f ListFilter) ([]Appointment, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	return s.repo.ListForProvider(ctx, providerID, f)
}

// ProviderForUser resolves the provider record owned by a user account.
func (s *Service) ProviderForUser(ctx context.Context, userID uuid.UUID) (*Provider, error) {
	return s.repo.GetProviderByUserID(ctx, userID)
}

func (s *Service) ListProviders(ctx context.Context, serviceType string, limit, offset int) ([]Provider, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListProviders(ctx, serviceType, limit, offset)
}

// ProviderStats summarizes the counters maintained alongside transitions.
type ProviderStats struct {
	TotalAppointments     int     `json:"total_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	CancelledAppointments int     `json:"cancelled_appointments"`
	CompletionRate        float64 `json:"completion_rate"`
}

func (s *Service) ProviderStats(ctx context.Context, providerID uuid.UUID) (*ProviderStats, error) {
	provider, err := s.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	stats := &ProviderStats{
		TotalAppointments:     provider.TotalAppointments,
		CompletedAppointments: provider.CompletedAppointments,
		CancelledAppointments: provider.CancelledAppointments,
	}
	if provider.TotalAppointments > 0 {
		stats.CompletionRate = float64(provider.CompletedAppointments) / float64(provider.TotalAppointments)
	}

	return stats, nil
}

// VerifyProvider flips a provider's verification flag. Admin only.
func (s *Service) VerifyProvider(ctx context.Context, actor Actor, providerID uuid.UUID, approve bool) (*Provider, error) {
	if actor.Role != RoleSystemAdmin {
		return nil, ErrForbidden
	}

	provider, err := s.repo.SetProviderVerified(ctx, providerID, approve)
	if err != nil {
		return nil, err
	}

	action := "PROVIDER_REJECTED"
	event := notify.EventProviderRejected
	if approve {
		action = "PROVIDER_APPROVED"
		event = notify.EventProviderApproved
	}

	s.audit.Record(ctx, audit.Entry{
		EntityType: "provider",
		EntityID:   provider.ID,
		Action:     action,
		ActorID:    actor.ID,
		Detail:     map[string]any{"business_name": provider.BusinessName},
	})

	if email := s.providerEmail(ctx, provider); email != "" {
		s.enqueue(ctx, event, email, map[string]any{"provider_name": provider.BusinessName})
	}

	return provider, nil
}

// authorize checks the actor is a party to the appointment. Admins see all.
func (s *Service) authorize(ctx context.Context, actor Actor, appt *Appointment) error {
	switch actor.Role {
	case RoleSystemAdmin:
		return nil
	case RoleEndUser:
		if actor.ID == appt.UserID {
			return nil
		}
	case RoleServiceProvider:
		provider, err := s.repo.GetProviderByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, ErrProviderNotFound) {
				return ErrForbidden
			}
			return err
		}
		if provider.ID == appt.ProviderID {
			return nil
		}
	}
	return ErrForbidden
}

func (s *Service) providerEmail(ctx context.Context, provider *Provider) string {
	owner, err := s.repo.GetUserByID(ctx, provider.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("provider_id", provider.ID.String()).Msg("load provider owner failed")
		return ""
	}
	return owner.Email
}

func (s *Service) appointmentPayload(a *Appointment, reason string) map[string]any {
	p := map[string]any{
		"reference":    a.Reference,
		"service_name": a.Service.ServiceName,
		"date":         a.Date.Format("2006-01-02"),
		"start_time":   a.StartTime,
		"end_time":     a.EndTime,
	}
	if reason != "" {
		p["reason"] = reason
	}
	return p
}

func (s *Service) enqueue(ctx context.Context, t notify.EventType, recipient string, payload map[string]any) {
	if err := s.queue.Enqueue(ctx, notify.NewEvent(t, recipient, payload)); err != nil {
		s.log.Error().Err(err).Str("type", string(t)).Str("recipient", recipient).Msg("enqueue notification failed")
	}
}
