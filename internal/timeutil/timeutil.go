package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatError reports a wall-clock string that is not a valid HH:mm time.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q, expected HH:mm", e.Value)
}

// ToMinutes converts an HH:mm wall-clock string to minutes since midnight.
// A single-digit hour is accepted ("9:30"), hours run 0-23 and minutes
// must be exactly two digits.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, &FormatError{Value: hhmm}
	}

	hourStr, minStr := parts[0], parts[1]
	if len(hourStr) < 1 || len(hourStr) > 2 || len(minStr) != 2 {
		return 0, &FormatError{Value: hhmm}
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, &FormatError{Value: hhmm}
	}
	min, err := strconv.Atoi(minStr)
	if err != nil || min < 0 || min > 59 {
		return 0, &FormatError{Value: hhmm}
	}

	return hour*60 + min, nil
}

// Normalize returns the zero-padded form of an HH:mm string ("9:00" ->
// "09:00") so that lexicographic comparison of stored values matches
// chronological order.
func Normalize(hhmm string) (string, error) {
	m, err := ToMinutes(hhmm)
	if err != nil {
		return "", err
	}
	return FromMinutes(m), nil
}

// FromMinutes renders minutes since midnight as a zero-padded HH:mm string.
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether two half-open minute intervals [startA, endA)
// and [startB, endB) overlap. Touching endpoints do not overlap: a slot
// ending at 10:00 is compatible with one starting at 10:00.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

// Weekday names used by availability rules, in calendar order.
const (
	Sunday    = "SUNDAY"
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
)

var weekdayNames = [7]string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayOfWeek returns the symbolic weekday name for the date's local calendar day.
func DayOfWeek(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// IsWeekday reports whether s is one of the seven symbolic weekday names.
func IsWeekday(s string) bool {
	for _, name := range weekdayNames {
		if s == name {
			return true
		}
	}
	return false
}

// DateOnly truncates t to its calendar day, keeping the location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CombineDateTime builds the instant at hhmm on date's calendar day, in
// date's location.
func CombineDateTime(date time.Time, hhmm string) (time.Time, error) {
	m, err := ToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, date.Location()), nil
}
