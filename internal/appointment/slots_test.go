package appointment

import (
	"testing"

	"github.com/varunrevoori/harmony/internal/availability"
)

func TestGenerateSlots(t *testing.T) {
	windows := []availability.TimeWindow{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "13:00", EndTime: "17:00"},
	}

	slots, err := GenerateSlots(windows, 60)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	want := []Slot{
		{StartTime: "09:00", EndTime: "10:00", Duration: 60},
		{StartTime: "10:00", EndTime: "11:00", Duration: 60},
		{StartTime: "11:00", EndTime: "12:00", Duration: 60},
		{StartTime: "13:00", EndTime: "14:00", Duration: 60},
		{StartTime: "14:00", EndTime: "15:00", Duration: 60},
		{StartTime: "15:00", EndTime: "16:00", Duration: 60},
		{StartTime: "16:00", EndTime: "17:00", Duration: 60},
	}

	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %v", len(slots), len(want), slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d: got %+v, want %+v", i, slots[i], want[i])
		}
	}
}

func TestGenerateSlotsDiscardsTrailingPartial(t *testing.T) {
	windows := []availability.TimeWindow{{StartTime: "09:00", EndTime: "10:30"}}

	slots, err := GenerateSlots(windows, 60)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1: %v", len(slots), slots)
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "10:00" {
		t.Errorf("got %+v, want 09:00-10:00", slots[0])
	}
}

func TestGenerateSlotsDefaultDuration(t *testing.T) {
	windows := []availability.TimeWindow{{StartTime: "09:00", EndTime: "11:00"}}

	slots, err := GenerateSlots(windows, 0)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2 with default duration", len(slots))
	}
}

func TestGenerateSlotsBadWindow(t *testing.T) {
	windows := []availability.TimeWindow{{StartTime: "9am", EndTime: "11:00"}}

	if _, err := GenerateSlots(windows, 60); err == nil {
		t.Fatal("expected error for malformed window time")
	}
}

func TestFilterBookedSlots(t *testing.T) {
	candidates := []Slot{
		{StartTime: "09:00", EndTime: "10:00", Duration: 60},
		{StartTime: "10:00", EndTime: "11:00", Duration: 60},
		{StartTime: "11:00", EndTime: "12:00", Duration: 60},
	}

	booked := []Appointment{
		{StartTime: "10:00", EndTime: "11:00"},
	}

	free, err := FilterBookedSlots(candidates, booked)
	if err != nil {
		t.Fatalf("FilterBookedSlots: %v", err)
	}

	if len(free) != 2 {
		t.Fatalf("got %d free slots, want 2: %v", len(free), free)
	}
	if free[0].StartTime != "09:00" || free[1].StartTime != "11:00" {
		t.Errorf("wrong slots survived: %v", free)
	}
}

func TestFilterBookedSlotsTouchingIsFree(t *testing.T) {
	candidates := []Slot{{StartTime: "10:00", EndTime: "11:00", Duration: 60}}

	// Appointments ending at the slot's start or starting at its end do
	// not overlap a half-open interval.
	booked := []Appointment{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "12:00"},
	}

	free, err := FilterBookedSlots(candidates, booked)
	if err != nil {
		t.Fatalf("FilterBookedSlots: %v", err)
	}
	if len(free) != 1 {
		t.Fatalf("touching appointments should not block the slot: %v", free)
	}
}

func TestFilterBookedSlotsPartialOverlap(t *testing.T) {
	candidates := []Slot{{StartTime: "10:00", EndTime: "11:00", Duration: 60}}
	booked := []Appointment{{StartTime: "10:30", EndTime: "11:30"}}

	free, err := FilterBookedSlots(candidates, booked)
	if err != nil {
		t.Fatalf("FilterBookedSlots: %v", err)
	}
	if len(free) != 0 {
		t.Fatalf("partially overlapped slot should be taken: %v", free)
	}
}
