package notify

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

var subjects = map[EventType]string{
	EventBookingConfirmation:    "Your appointment request was received",
	EventNewAppointmentRequest:  "New appointment request",
	EventAppointmentApproved:    "Your appointment is confirmed",
	EventAppointmentRejected:    "Your appointment request was declined",
	EventAppointmentCancelled:   "Appointment cancelled",
	EventAppointmentCompleted:   "Appointment completed",
	EventAppointmentRescheduled: "Your appointment was rescheduled",
	EventAppointmentReminder:    "Upcoming appointment reminder",
	EventProviderApproved:       "Your provider account is verified",
	EventProviderRejected:       "Your provider verification was declined",
}

// Mailer delivers events over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) Send(ctx context.Context, evt Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evt.Recipient == "" {
		return fmt.Errorf("event %s has no recipient", evt.ID)
	}

	subject, ok := subjects[evt.Type]
	if !ok {
		subject = string(evt.Type)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", evt.Recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", renderBody(evt))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", evt.Type, evt.Recipient, err)
	}
	return nil
}

func renderBody(evt Event) string {
	var b strings.Builder

	switch evt.Type {
	case EventAppointmentReminder:
		fmt.Fprintf(&b, "This is a reminder for your upcoming appointment.\n\n")
	case EventNewAppointmentRequest:
		fmt.Fprintf(&b, "A new appointment has been requested with you.\n\n")
	default:
		fmt.Fprintf(&b, "There is an update on your appointment.\n\n")
	}

	for _, k := range []string{"reference", "service_name", "date", "start_time", "end_time", "provider_name", "user_name", "reason"} {
		if v, ok := evt.Payload[k]; ok && v != "" {
			fmt.Fprintf(&b, "%s: %v\n", strings.ReplaceAll(k, "_", " "), v)
		}
	}

	return b.String()
}
