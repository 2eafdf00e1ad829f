package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/varunrevoori/harmony/internal/appointment"
	"github.com/varunrevoori/harmony/internal/availability"
)

type BookAppointmentRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Notes      string `json:"notes,omitempty"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
}

type TransitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason,omitempty"`
}

type WindowRequest struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RuleActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type ExceptionRequest struct {
	Date     string `json:"date"`
	Reason   string `json:"reason,omitempty"`
	Category string `json:"category,omitempty"`
}

type VerifyProviderRequest struct {
	Approve bool `json:"approve"`
}

type AppointmentResponse struct {
	ID                   uuid.UUID                      `json:"id"`
	Reference            string                         `json:"reference"`
	UserID               uuid.UUID                      `json:"user_id"`
	ProviderID           uuid.UUID                      `json:"provider_id"`
	Date                 string                         `json:"date"`
	StartTime            string                         `json:"start_time"`
	EndTime              string                         `json:"end_time"`
	Status               string                         `json:"status"`
	Notes                string                         `json:"notes,omitempty"`
	CancellationReason   string                         `json:"cancellation_reason,omitempty"`
	RejectionReason      string                         `json:"rejection_reason,omitempty"`
	Service              appointment.ServiceDetails     `json:"service"`
	StatusHistory        []appointment.StatusChange     `json:"status_history"`
	RescheduleHistory    []appointment.RescheduleRecord `json:"reschedule_history,omitempty"`
	RescheduleCount      int                            `json:"reschedule_count"`
	RemainingReschedules int                            `json:"remaining_reschedules"`
	ReminderSent         bool                           `json:"reminder_sent"`
	CreatedAt            time.Time                      `json:"created_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                   a.ID,
		Reference:            a.Reference,
		UserID:               a.UserID,
		ProviderID:           a.ProviderID,
		Date:                 a.Date.Format("2006-01-02"),
		StartTime:            a.StartTime,
		EndTime:              a.EndTime,
		Status:               string(a.Status),
		Notes:                a.Notes,
		CancellationReason:   a.CancellationReason,
		RejectionReason:      a.RejectionReason,
		Service:              a.Service,
		StatusHistory:        a.StatusHistory,
		RescheduleHistory:    a.RescheduleHistory,
		RescheduleCount:      a.RescheduleCount,
		RemainingReschedules: a.RemainingReschedules(),
		ReminderSent:         a.ReminderSent,
		CreatedAt:            a.CreatedAt,
	}
}

func toAppointmentResponses(list []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for i := range list {
		out = append(out, toAppointmentResponse(&list[i]))
	}
	return out
}

type ProviderResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	ServiceType  string    `json:"service_type"`
	BasePrice    float64   `json:"base_price"`
	Currency     string    `json:"currency"`
	SlotDuration int       `json:"slot_duration"`
	IsVerified   bool      `json:"is_verified"`
}

func toProviderResponse(p *appointment.Provider) ProviderResponse {
	return ProviderResponse{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		ServiceType:  p.ServiceType,
		BasePrice:    p.BasePrice,
		Currency:     p.Currency,
		SlotDuration: p.SlotDuration,
		IsVerified:   p.IsVerified,
	}
}

type RuleResponse struct {
	ID         uuid.UUID                    `json:"id"`
	ProviderID uuid.UUID                    `json:"provider_id"`
	DayOfWeek  string                       `json:"day_of_week"`
	Windows    []availability.TimeWindow    `json:"windows"`
	IsActive   bool                         `json:"is_active"`
	Exceptions []availability.ExceptionDate `json:"exceptions,omitempty"`
}

func toRuleResponse(r *availability.Rule) RuleResponse {
	return RuleResponse{
		ID:         r.ID,
		ProviderID: r.ProviderID,
		DayOfWeek:  r.DayOfWeek,
		Windows:    r.Windows,
		IsActive:   r.IsActive,
		Exceptions: r.Exceptions,
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
