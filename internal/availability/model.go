package availability

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/varunrevoori/harmony/internal/timeutil"
)

type ExceptionCategory string

const (
	ExceptionHoliday  ExceptionCategory = "HOLIDAY"
	ExceptionPersonal ExceptionCategory = "PERSONAL"
	ExceptionBlocked  ExceptionCategory = "BLOCKED"
	ExceptionOther    ExceptionCategory = "OTHER"
)

// TimeWindow is a recurring open interval within a weekday, HH:mm wall clock.
type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ExceptionDate blocks a single calendar day regardless of weekday windows.
type ExceptionDate struct {
	Date     time.Time         `json:"date"`
	Reason   string            `json:"reason,omitempty"`
	Category ExceptionCategory `json:"category"`
}

// Rule is the recurring availability for one provider on one weekday.
// At most one rule exists per (provider, weekday); windows within a rule
// never overlap.
type Rule struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	DayOfWeek  string
	Windows    []TimeWindow
	IsActive   bool
	Exceptions []ExceptionDate
	Priority   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AddWindow validates and inserts a window, keeping windows sorted by start
// time. It fails with ErrWindowOverlap if the window overlaps an existing
// one; the rule is unchanged on any error.
func (r *Rule) AddWindow(w TimeWindow) error {
	start, end, err := windowMinutes(w)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrWindowInverted
	}

	for _, existing := range r.Windows {
		es, ee, err := windowMinutes(existing)
		if err != nil {
			return err
		}
		if timeutil.Overlaps(start, end, es, ee) {
			return ErrWindowOverlap
		}
	}

	w.StartTime = timeutil.FromMinutes(start)
	w.EndTime = timeutil.FromMinutes(end)
	r.Windows = append(r.Windows, w)
	sort.Slice(r.Windows, func(i, j int) bool {
		return r.Windows[i].StartTime < r.Windows[j].StartTime
	})
	return nil
}

// RemoveWindow deletes the window with the given bounds, if present.
// It reports whether a window was removed.
func (r *Rule) RemoveWindow(w TimeWindow) bool {
	start, err1 := timeutil.Normalize(w.StartTime)
	end, err2 := timeutil.Normalize(w.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	for i, existing := range r.Windows {
		if existing.StartTime == start && existing.EndTime == end {
			r.Windows = append(r.Windows[:i], r.Windows[i+1:]...)
			return true
		}
	}
	return false
}

// HasExceptionOn reports whether the rule blocks the given calendar day,
// ignoring the time of day on both sides.
func (r *Rule) HasExceptionOn(date time.Time) bool {
	day := timeutil.DateOnly(date.UTC())
	for _, exc := range r.Exceptions {
		if timeutil.DateOnly(exc.Date.UTC()).Equal(day) {
			return true
		}
	}
	return false
}

func windowMinutes(w TimeWindow) (start, end int, err error) {
	start, err = timeutil.ToMinutes(w.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = timeutil.ToMinutes(w.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
