package appointment

import (
	"errors"
	"fmt"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrProviderNotFound    = errors.New("provider not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrBookingConflict: the requested interval overlaps an active
	// appointment for the provider or the user.
	ErrBookingConflict = errors.New("time slot conflicts with an existing appointment")

	// ErrBookingContended: the per-provider-per-day lock was held by a
	// concurrent booking. The caller should retry the whole sequence once.
	ErrBookingContended = errors.New("another booking for this provider and day is in progress, retry shortly")

	// ErrStatusConflict: the compare-and-swap status update lost a race.
	ErrStatusConflict = errors.New("appointment was modified concurrently")

	ErrRescheduleState = errors.New("only approved appointments can be rescheduled")
	ErrRescheduleLimit = errors.New("maximum reschedule limit reached")
	ErrReschedulePast  = errors.New("cannot reschedule past appointments")

	// Slot validation failures surfaced to callers as 4xx responses.
	ErrSlotOrder       = errors.New("start time must be before end time")
	ErrSlotUnavailable = errors.New("requested time is outside the provider's availability")
	ErrDateBlocked     = errors.New("this date is blocked (holiday or exception)")
	ErrPastSlot        = errors.New("cannot book a time in the past")

	ErrProviderUnverified = errors.New("provider is not verified")
	ErrForbidden          = errors.New("not allowed to act on this appointment")
	ErrRangeTooLong       = errors.New("availability range exceeds the maximum span")
)

// CapacityError reports a daily appointment ceiling that has been reached.
type CapacityError struct {
	Scope string // "provider" or "user"
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s has reached the maximum of %d appointments for this day", e.Scope, e.Limit)
}

// SlotCheck is the outcome of validating one requested interval.
type SlotCheck struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}
