package scheduling

import (
	"time"

	"salonbook/pkg/model"
)

// SlotClock generates the candidate slot start times for a day. It is the
// single source of truth for what counts as a bookable moment: availability
// checks, day listings and horizon searches all run on the same grid.
type SlotClock struct {
	hours    OpeningHours
	duration time.Duration
	loc      *time.Location
}

func NewSlotClock(hours OpeningHours, duration time.Duration, loc *time.Location) SlotClock {
	return SlotClock{
		hours:    hours,
		duration: duration,
		loc:      loc,
	}
}

// CandidateStarts steps from the day's open time in fixed increments and
// stops at the last start whose slot still ends by closing time. Closed days
// yield nothing. The sequence is stateless and restartable.
func (c SlotClock) CandidateStarts(date time.Time) []time.Time {
	window, open := c.hours.WindowFor(date)
	if !open {
		return nil
	}

	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, c.loc)

	start := midnight.Add(time.Duration(window.Open) * time.Minute)
	close := midnight.Add(time.Duration(window.Close) * time.Minute)

	var starts []time.Time
	for t := start; !t.Add(c.duration).After(close); t = t.Add(c.duration) {
		starts = append(starts, t)
	}
	return starts
}

// SlotAt returns the slot beginning at t.
func (c SlotClock) SlotAt(t time.Time) model.Slot {
	return model.Slot{Start: t, End: t.Add(c.duration)}
}

// Aligned reports whether t sits on the booking grid, which is anchored at
// the day's opening time.
func (c SlotClock) Aligned(t time.Time) bool {
	window, open := c.hours.WindowFor(t)
	if !open {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	step := int(c.duration / time.Minute)
	return t.Second() == 0 && t.Nanosecond() == 0 && (minute-window.Open)%step == 0
}

// Duration is the fixed system-wide slot length.
func (c SlotClock) Duration() time.Duration {
	return c.duration
}

// Location is the fixed zone every slot is computed in.
func (c SlotClock) Location() *time.Location {
	return c.loc
}
