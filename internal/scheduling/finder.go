package scheduling

import (
	"context"
	"time"

	"salonbook/pkg/model"
)

// SlotFinder enumerates free slots by combining the slot grid with the
// calendar's ground truth. One gateway query covers a whole day; overlaps are
// computed locally with the same half-open semantics as single-slot checks.
type SlotFinder struct {
	clock   SlotClock
	checker *AvailabilityChecker
}

func NewSlotFinder(clock SlotClock, checker *AvailabilityChecker) *SlotFinder {
	return &SlotFinder{
		clock:   clock,
		checker: checker,
	}
}

// FreeSlotsForDay lists the free slots of one day in chronological order.
// A closed day is an empty result, not an error.
func (f *SlotFinder) FreeSlotsForDay(ctx context.Context, calendarID string, date time.Time) ([]model.Slot, error) {
	starts := f.clock.CandidateStarts(date)
	if len(starts) == 0 {
		return nil, nil
	}

	dayOpen := starts[0]
	dayClose := starts[len(starts)-1].Add(f.clock.Duration())
	events, err := f.checker.ListWindow(ctx, calendarID, dayOpen, dayClose)
	if err != nil {
		return nil, err
	}

	var free []model.Slot
	for _, start := range starts {
		slot := f.clock.SlotAt(start)
		if FreeAmong(slot, events) {
			free = append(free, slot)
		}
	}
	return free, nil
}

// NextFreeSlots walks forward from now, day by day, and collects up to count
// free slots within horizonDays. Slots already begun are skipped. Exhausting
// the horizon with fewer than count results is a valid partial answer.
func (f *SlotFinder) NextFreeSlots(ctx context.Context, calendarID string, count, horizonDays int, now time.Time) ([]model.Slot, error) {
	now = now.In(f.clock.Location())

	var found []model.Slot
	for offset := 0; offset < horizonDays; offset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		day := now.AddDate(0, 0, offset)
		slots, err := f.FreeSlotsForDay(ctx, calendarID, day)
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			if slot.Start.Before(now) {
				continue
			}
			found = append(found, slot)
			if len(found) == count {
				return found, nil
			}
		}
	}
	return found, nil
}
