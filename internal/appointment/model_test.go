package appointment

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewReference(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ref := NewReference(now)

	if !strings.HasPrefix(ref, "APT-") {
		t.Fatalf("reference %q missing prefix", ref)
	}
	parts := strings.Split(ref, "-")
	if len(parts) != 3 {
		t.Fatalf("reference %q should have three segments", ref)
	}
	if len(parts[2]) != 9 {
		t.Errorf("suffix %q should be 9 characters", parts[2])
	}
}

func TestApplyStatusAppendsHistory(t *testing.T) {
	actor := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	a := &Appointment{Status: StatusRequested}
	a.ApplyStatus(StatusApproved, actor, at, "")

	if a.Status != StatusApproved {
		t.Fatalf("status = %s, want APPROVED", a.Status)
	}
	if len(a.StatusHistory) != 1 {
		t.Fatalf("history has %d entries, want 1", len(a.StatusHistory))
	}
	h := a.StatusHistory[0]
	if h.Status != StatusApproved || h.ChangedBy != actor || !h.ChangedAt.Equal(at) {
		t.Errorf("unexpected history entry: %+v", h)
	}
}

func TestApplyStatusPersistsReasons(t *testing.T) {
	actor := uuid.New()
	at := time.Now()

	a := &Appointment{Status: StatusRequested}
	a.ApplyStatus(StatusRejected, actor, at, "fully booked that week")
	if a.RejectionReason != "fully booked that week" {
		t.Errorf("rejection reason not persisted: %q", a.RejectionReason)
	}

	b := &Appointment{Status: StatusApproved}
	b.ApplyStatus(StatusCancelled, actor, at, "no longer needed")
	if b.CancellationReason != "no longer needed" {
		t.Errorf("cancellation reason not persisted: %q", b.CancellationReason)
	}
	if b.RejectionReason != "" {
		t.Errorf("rejection reason should stay empty, got %q", b.RejectionReason)
	}
}

func futureAppointment(status Status, startIn time.Duration) *Appointment {
	start := time.Now().UTC().Add(startIn)
	return &Appointment{
		Status:          status,
		Date:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       start.Format("15:04"),
		EndTime:         start.Add(time.Hour).Format("15:04"),
		RescheduleLimit: 2,
	}
}

func TestCanReschedule(t *testing.T) {
	now := time.Now()

	a := futureAppointment(StatusApproved, 48*time.Hour)
	if err := a.CanReschedule(now); err != nil {
		t.Errorf("future approved appointment should be reschedulable: %v", err)
	}

	b := futureAppointment(StatusRequested, 48*time.Hour)
	if err := b.CanReschedule(now); !errors.Is(err, ErrRescheduleState) {
		t.Errorf("got %v, want ErrRescheduleState", err)
	}

	c := futureAppointment(StatusApproved, 48*time.Hour)
	c.RescheduleCount = 2
	if err := c.CanReschedule(now); !errors.Is(err, ErrRescheduleLimit) {
		t.Errorf("got %v, want ErrRescheduleLimit", err)
	}

	d := futureAppointment(StatusApproved, 48*time.Hour)
	d.Date = time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	if err := d.CanReschedule(now); !errors.Is(err, ErrReschedulePast) {
		t.Errorf("got %v, want ErrReschedulePast", err)
	}
}

func TestIsLateReschedule(t *testing.T) {
	now := time.Now()
	window := 24 * time.Hour

	near := futureAppointment(StatusApproved, 2*time.Hour)
	if !near.IsLateReschedule(now, window) {
		t.Error("appointment starting in 2h should be a late reschedule")
	}

	far := futureAppointment(StatusApproved, 48*time.Hour)
	if far.IsLateReschedule(now, window) {
		t.Error("appointment starting in 48h should not be late")
	}
}

func TestRemainingReschedules(t *testing.T) {
	a := &Appointment{RescheduleCount: 1, RescheduleLimit: 2}
	if got := a.RemainingReschedules(); got != 1 {
		t.Errorf("got %d, want 1", got)
	}

	b := &Appointment{RescheduleCount: 3, RescheduleLimit: 2}
	if got := b.RemainingReschedules(); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
