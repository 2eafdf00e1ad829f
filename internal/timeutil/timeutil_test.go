package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:00", 540, false},
		{"23:59", 1439, false},
		{"12:30", 750, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"1200", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
		{"-1:00", 0, true},
		{"12:30:00", 0, true},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ToMinutes(%q): expected error, got %d", tt.in, got)
				continue
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("ToMinutes(%q): error %v is not a FormatError", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ToMinutes(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("9:05")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "09:05" {
		t.Errorf("Normalize(9:05) = %q, want 09:05", got)
	}
	if _, err := Normalize("25:00"); err == nil {
		t.Error("Normalize(25:00): expected error")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB int
		want                       bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"contained", 540, 600, 550, 560, true},
		{"partial", 540, 600, 570, 630, true},
		{"touching end to start", 540, 600, 600, 660, false},
		{"touching start to end", 600, 660, 540, 600, false},
		{"disjoint", 540, 600, 700, 760, false},
		{"half hour shift", 630, 690, 660, 720, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.startA, tt.endA, tt.startB, tt.endB); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.startA, tt.endA, tt.startB, tt.endB, got, tt.want)
			}
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC)
	if got := DayOfWeek(monday); got != Monday {
		t.Errorf("DayOfWeek = %q, want %q", got, Monday)
	}
	sunday := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
	if got := DayOfWeek(sunday); got != Sunday {
		t.Errorf("DayOfWeek = %q, want %q", got, Sunday)
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2026, 3, 10, 17, 45, 12, 0, time.UTC)
	got, err := CombineDateTime(date, "09:30")
	if err != nil {
		t.Fatalf("CombineDateTime: %v", err)
	}
	want := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateTime = %v, want %v", got, want)
	}

	if _, err := CombineDateTime(date, "9:5"); err == nil {
		t.Error("CombineDateTime with malformed time: expected error")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 3, 10, 17, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}
