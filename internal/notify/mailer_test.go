package notify

import (
	"strings"
	"testing"
)

func TestNewEvent(t *testing.T) {
	evt := NewEvent(EventBookingConfirmation, "sam@example.com", map[string]any{"reference": "APT-1-ABC"})

	if evt.ID == "" {
		t.Error("event id not assigned")
	}
	if evt.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", evt.Attempts)
	}
	if evt.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestRenderBody(t *testing.T) {
	evt := Event{
		Type:      EventAppointmentReminder,
		Recipient: "sam@example.com",
		Payload: map[string]any{
			"reference":  "APT-1-ABC",
			"date":       "2026-03-02",
			"start_time": "09:00",
			"ignored":    "not in template",
		},
	}

	body := renderBody(evt)

	if !strings.Contains(body, "reminder") {
		t.Errorf("reminder intro missing: %q", body)
	}
	for _, want := range []string{"APT-1-ABC", "2026-03-02", "09:00"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %q", want, body)
		}
	}
	if strings.Contains(body, "not in template") {
		t.Errorf("unknown payload key rendered: %q", body)
	}
}

func TestSubjectsCoverAllEventTypes(t *testing.T) {
	for _, et := range []EventType{
		EventBookingConfirmation,
		EventNewAppointmentRequest,
		EventAppointmentApproved,
		EventAppointmentRejected,
		EventAppointmentCancelled,
		EventAppointmentCompleted,
		EventAppointmentRescheduled,
		EventAppointmentReminder,
		EventProviderApproved,
		EventProviderRejected,
	} {
		if _, ok := subjects[et]; !ok {
			t.Errorf("no subject for %s", et)
		}
	}
}
