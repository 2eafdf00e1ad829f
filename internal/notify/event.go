package notify

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingConfirmation    EventType = "BOOKING_CONFIRMATION"
	EventNewAppointmentRequest  EventType = "NEW_APPOINTMENT_REQUEST"
	EventAppointmentApproved    EventType = "APPOINTMENT_APPROVED"
	EventAppointmentRejected    EventType = "APPOINTMENT_REJECTED"
	EventAppointmentCancelled   EventType = "APPOINTMENT_CANCELLED"
	EventAppointmentCompleted   EventType = "APPOINTMENT_COMPLETED"
	EventAppointmentRescheduled EventType = "APPOINTMENT_RESCHEDULED"
	EventAppointmentReminder    EventType = "APPOINTMENT_REMINDER"
	EventProviderApproved       EventType = "PROVIDER_APPROVED"
	EventProviderRejected       EventType = "PROVIDER_REJECTED"
)

// Event is one queued notification. Payload carries the template fields the
// email worker interpolates; the core never inspects it again after enqueue.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Recipient string         `json:"recipient"`
	Payload   map[string]any `json:"payload,omitempty"`
	Attempts  int            `json:"attempts"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(t EventType, recipient string, payload map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Recipient: recipient,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}
