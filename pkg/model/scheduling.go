package model

import (
	"time"
)

// Resource is a staff member with a dedicated external calendar. Resources are
// loaded from configuration at startup and never change while running.
type Resource struct {
	Name       string `yaml:"name" json:"name" validate:"required,min=2,max=100"`
	CalendarID string `yaml:"calendar_id" json:"calendar_id" validate:"required,min=4"`
}

// Slot is a half-open interval [Start, End) on the booking grid.
// End is always Start plus the configured slot duration.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// slots share a boundary instant and do not overlap.
func (s Slot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

type AvailabilityRequest struct {
	Resource string `json:"resource" validate:"required,min=2,max=100"`
	Date     string `json:"date" validate:"required,iso_date"`
	Time     string `json:"time" validate:"required,clock_time"`
}

type BookingRequest struct {
	Resource string `json:"resource" validate:"required,min=2,max=100"`
	Date     string `json:"date" validate:"required,iso_date"`
	Time     string `json:"time" validate:"required,clock_time"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

type CancellationRequest struct {
	Resource string `json:"resource" validate:"required,min=2,max=100"`
	Date     string `json:"date" validate:"required,iso_date"`
	Time     string `json:"time" validate:"required,clock_time"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

type DaySlotsRequest struct {
	Resource string `json:"resource" validate:"required,min=2,max=100"`
	Date     string `json:"date" validate:"required,iso_date"`
}

type NextSlotsRequest struct {
	Resource string `json:"resource" validate:"required,min=2,max=100"`
	Count    int    `json:"count,omitempty" validate:"omitempty,min=1,max=50"`
}

// Availability distinguishes "free" from the reason a slot is not bookable.
// A gateway failure is never reported through this type; it surfaces as an
// error so callers can tell an outage from a taken slot.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

const (
	ReasonBooked       = "booked"
	ReasonOutsideHours = "outside_hours"
	ReasonClosed       = "closed"
)

type BookingConfirmation struct {
	EventID  string    `json:"event_id"`
	Resource string    `json:"resource"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type Cancellation struct {
	Resource string `json:"resource"`
	Name     string `json:"name"`
	Removed  int    `json:"removed"`
}

// DaySlot pairs a free slot with the date it belongs to, for horizon searches
// that cross day boundaries.
type DaySlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Slot Slot   `json:"slot"`
}
