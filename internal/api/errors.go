package api

import (
	"errors"
	"net/http"

	"github.com/varunrevoori/harmony/internal/appointment"
	"github.com/varunrevoori/harmony/internal/availability"
	redisclient "github.com/varunrevoori/harmony/internal/redis"
	"github.com/varunrevoori/harmony/internal/timeutil"
)

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		transitionErr *appointment.TransitionError
		capacityErr   *appointment.CapacityError
		formatErr     *timeutil.FormatError
	)

	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, appointment.ErrProviderNotFound):
		writeError(w, http.StatusNotFound, "provider_not_found", err.Error())
	case errors.Is(err, appointment.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, availability.ErrRuleNotFound):
		writeError(w, http.StatusNotFound, "availability_rule_not_found", err.Error())

	case errors.Is(err, appointment.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())

	case errors.Is(err, appointment.ErrBookingConflict):
		writeError(w, http.StatusConflict, "booking_conflict", err.Error())
	case errors.Is(err, appointment.ErrBookingContended),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "booking_in_progress", "another booking for this slot is in progress, please retry shortly")
	case errors.Is(err, appointment.ErrStatusConflict):
		writeError(w, http.StatusConflict, "concurrent_modification", err.Error())
	case errors.Is(err, availability.ErrRuleExists):
		writeError(w, http.StatusConflict, "rule_exists", err.Error())

	case errors.As(err, &capacityErr):
		writeError(w, http.StatusConflict, "daily_limit_reached", capacityErr.Error())

	case errors.As(err, &transitionErr):
		if transitionErr.Role != "" {
			writeError(w, http.StatusForbidden, "transition_forbidden", transitionErr.Error())
			return
		}
		writeError(w, http.StatusConflict, "invalid_transition", transitionErr.Error())

	case errors.As(err, &formatErr),
		errors.Is(err, appointment.ErrSlotOrder),
		errors.Is(err, appointment.ErrSlotUnavailable),
		errors.Is(err, appointment.ErrDateBlocked),
		errors.Is(err, appointment.ErrPastSlot),
		errors.Is(err, appointment.ErrProviderUnverified),
		errors.Is(err, appointment.ErrRescheduleState),
		errors.Is(err, appointment.ErrRescheduleLimit),
		errors.Is(err, appointment.ErrReschedulePast),
		errors.Is(err, appointment.ErrRangeTooLong),
		errors.Is(err, availability.ErrWindowOverlap),
		errors.Is(err, availability.ErrWindowInverted),
		errors.Is(err, availability.ErrBadWeekday):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
