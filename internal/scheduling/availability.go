package scheduling

import (
	"context"
	"time"

	"salonbook/internal/calendar"
	"salonbook/pkg/model"
)

// AvailabilityChecker answers whether a slot is free on a calendar. The
// external calendar is authoritative; every check is a fresh query.
type AvailabilityChecker struct {
	gateway calendar.Gateway
	timeout time.Duration
}

func NewAvailabilityChecker(gateway calendar.Gateway, timeout time.Duration) *AvailabilityChecker {
	return &AvailabilityChecker{
		gateway: gateway,
		timeout: timeout,
	}
}

// IsFree returns true iff no event on the calendar overlaps the half-open
// slot interval. Back-to-back events touching the slot boundary do not block
// it. A gateway failure propagates as an error and is never folded into a
// false "busy" or "free" answer.
func (a *AvailabilityChecker) IsFree(ctx context.Context, calendarID string, slot model.Slot) (bool, error) {
	events, err := a.ListWindow(ctx, calendarID, slot.Start, slot.End)
	if err != nil {
		return false, err
	}
	return FreeAmong(slot, events), nil
}

// ListWindow fetches the events intersecting [timeMin, timeMax) with the
// gateway call bounded by the configured timeout.
func (a *AvailabilityChecker) ListWindow(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.gateway.ListEvents(ctx, calendarID, timeMin, timeMax)
}

// FreeAmong applies the overlap test against an already-fetched event list,
// so day-level scans need only one gateway round trip.
func FreeAmong(slot model.Slot, events []calendar.Event) bool {
	for _, ev := range events {
		if slot.Overlaps(ev.Start, ev.End) {
			return false
		}
	}
	return true
}
