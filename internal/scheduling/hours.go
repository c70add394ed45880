package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// Window is an open interval within one day, in minutes since midnight.
// A time equal to Open is inside business hours; a time equal to Close is not,
// so the last bookable slot is the one that ends exactly at Close.
type Window struct {
	Open  int
	Close int
}

// OpeningHours is the per-weekday opening table. Weekdays absent from the
// table are closed all day. The table is immutable after construction.
type OpeningHours struct {
	windows map[time.Weekday]Window
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseOpeningHours builds the opening table from configuration entries of
// the form "HH:MM-HH:MM" keyed by lowercase weekday name.
func ParseOpeningHours(table map[string]string) (OpeningHours, error) {
	windows := make(map[time.Weekday]Window, len(table))

	for day, entry := range table {
		weekday, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(day))]
		if !ok {
			return OpeningHours{}, fmt.Errorf("unknown weekday %q", day)
		}

		parts := strings.SplitN(entry, "-", 2)
		if len(parts) != 2 {
			return OpeningHours{}, fmt.Errorf("opening window for %s must be HH:MM-HH:MM, got %q", day, entry)
		}
		open, err := parseMinuteOfDay(parts[0])
		if err != nil {
			return OpeningHours{}, fmt.Errorf("invalid open time for %s: %w", day, err)
		}
		close, err := parseMinuteOfDay(parts[1])
		if err != nil {
			return OpeningHours{}, fmt.Errorf("invalid close time for %s: %w", day, err)
		}
		if open >= close {
			return OpeningHours{}, fmt.Errorf("opening window for %s must start before it ends, got %q", day, entry)
		}

		windows[weekday] = Window{Open: open, Close: close}
	}

	return OpeningHours{windows: windows}, nil
}

func parseMinuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowFor returns the opening window for the date's weekday. The second
// return is false when the salon is closed that day.
func (h OpeningHours) WindowFor(date time.Time) (Window, bool) {
	w, ok := h.windows[date.Weekday()]
	return w, ok
}

// IsOpen reports whether t falls within business hours on its own day.
func (h OpeningHours) IsOpen(t time.Time) bool {
	w, ok := h.windows[t.Weekday()]
	if !ok {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= w.Open && minute < w.Close
}
