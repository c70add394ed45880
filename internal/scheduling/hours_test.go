package scheduling

import (
	"testing"
	"time"
)

var testHoursTable = map[string]string{
	"monday":   "09:00-18:00",
	"saturday": "09:00-14:00",
}

func mustParseHours(t *testing.T, table map[string]string) OpeningHours {
	t.Helper()
	hours, err := ParseOpeningHours(table)
	if err != nil {
		t.Fatalf("ParseOpeningHours: %v", err)
	}
	return hours
}

func TestParseOpeningHours_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		table map[string]string
	}{
		{"unknown weekday", map[string]string{"moonday": "09:00-18:00"}},
		{"missing separator", map[string]string{"monday": "09:00"}},
		{"bad open time", map[string]string{"monday": "9am-18:00"}},
		{"bad close time", map[string]string{"monday": "09:00-18h"}},
		{"open equals close", map[string]string{"monday": "09:00-09:00"}},
		{"open after close", map[string]string{"monday": "18:00-09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOpeningHours(tt.table); err == nil {
				t.Errorf("expected error for %v", tt.table)
			}
		})
	}
}

func TestWindowFor(t *testing.T) {
	hours := mustParseHours(t, testHoursTable)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window, open := hours.WindowFor(monday)
	if !open {
		t.Fatal("expected Monday to be open")
	}
	if window.Open != 9*60 || window.Close != 18*60 {
		t.Errorf("expected 09:00-18:00, got %d-%d", window.Open, window.Close)
	}

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	if _, open := hours.WindowFor(sunday); open {
		t.Error("expected Sunday to be closed")
	}
}

func TestIsOpen_Boundaries(t *testing.T) {
	hours := mustParseHours(t, testHoursTable)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"opening instant is open", time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), true},
		{"midday is open", time.Date(2026, 9, 7, 12, 30, 0, 0, time.UTC), true},
		{"last minute before close is open", time.Date(2026, 9, 7, 17, 59, 0, 0, time.UTC), true},
		{"closing instant is not open", time.Date(2026, 9, 7, 18, 0, 0, 0, time.UTC), false},
		{"before opening is not open", time.Date(2026, 9, 7, 8, 59, 0, 0, time.UTC), false},
		{"closed weekday any time", time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC), false},
		{"saturday short window", time.Date(2026, 9, 12, 13, 59, 0, 0, time.UTC), true},
		{"saturday after close", time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hours.IsOpen(tt.at); got != tt.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}
