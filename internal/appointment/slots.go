package appointment

import (
	"time"

	"github.com/varunrevoori/harmony/internal/availability"
	"github.com/varunrevoori/harmony/internal/timeutil"
)

// Slot is one bookable interval of exactly the provider's slot duration.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`
}

// DayAvailability is the computed bookable surface of one provider day.
type DayAvailability struct {
	Date           time.Time `json:"date"`
	DayOfWeek      string    `json:"day_of_week"`
	TotalSlots     int       `json:"total_slots"`
	BookedSlots    int       `json:"booked_slots"`
	AvailableSlots []Slot    `json:"available_slots"`
	Message        string    `json:"message"`
}

// GenerateSlots enumerates fixed-size candidate slots for the given
// windows. Within a window the cursor starts at the window's start and
// advances by the slot duration; a trailing slot that would extend past the
// window's end is discarded, never truncated. Windows are processed in
// order, so the result is chronological for non-overlapping sorted windows.
func GenerateSlots(windows []availability.TimeWindow, slotDuration int) ([]Slot, error) {
	if slotDuration <= 0 {
		slotDuration = 60
	}

	var slots []Slot
	for _, w := range windows {
		start, err := timeutil.ToMinutes(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ToMinutes(w.EndTime)
		if err != nil {
			return nil, err
		}

		for cur := start; cur+slotDuration <= end; cur += slotDuration {
			slots = append(slots, Slot{
				StartTime: timeutil.FromMinutes(cur),
				EndTime:   timeutil.FromMinutes(cur + slotDuration),
				Duration:  slotDuration,
			})
		}
	}

	return slots, nil
}

// FilterBookedSlots drops candidates that overlap any of the given
// appointments. Touching endpoints are compatible.
func FilterBookedSlots(candidates []Slot, booked []Appointment) ([]Slot, error) {
	type span struct{ start, end int }

	spans := make([]span, 0, len(booked))
	for _, b := range booked {
		start, err := timeutil.ToMinutes(b.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ToMinutes(b.EndTime)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span{start, end})
	}

	var free []Slot
	for _, s := range candidates {
		start, err := timeutil.ToMinutes(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ToMinutes(s.EndTime)
		if err != nil {
			return nil, err
		}

		taken := false
		for _, sp := range spans {
			if timeutil.Overlaps(start, end, sp.start, sp.end) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, s)
		}
	}

	return free, nil
}

// windowContains reports whether [start, end) falls entirely within the
// window. Overlapping a window boundary is not enough.
func windowContains(w availability.TimeWindow, start, end int) bool {
	ws, err := timeutil.ToMinutes(w.StartTime)
	if err != nil {
		return false
	}
	we, err := timeutil.ToMinutes(w.EndTime)
	if err != nil {
		return false
	}
	return start >= ws && end <= we
}
