package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGateway_InsertAndList(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	nineAM := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	id, err := gw.InsertEvent(ctx, "cal-1", Event{
		Summary: "Anna Schmidt",
		Start:   nineAM,
		End:     nineAM.Add(30 * time.Minute),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated event ID")
	}

	events, err := gw.ListEvents(ctx, "cal-1", nineAM, nineAM.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID != id || events[0].Summary != "Anna Schmidt" {
		t.Errorf("unexpected event %+v", events[0])
	}
}

func TestMemoryGateway_ListWindowSemantics(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	nineAM := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	if _, err := gw.InsertEvent(ctx, "cal-1", Event{Start: nineAM, End: nineAM.Add(30 * time.Minute)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	tests := []struct {
		name     string
		min, max time.Time
		want     int
	}{
		{"exact window", nineAM, nineAM.Add(30 * time.Minute), 1},
		{"window inside event", nineAM.Add(10 * time.Minute), nineAM.Add(20 * time.Minute), 1},
		{"window ends at event start", nineAM.Add(-time.Hour), nineAM, 0},
		{"window starts at event end", nineAM.Add(30 * time.Minute), nineAM.Add(time.Hour), 0},
		{"disjoint window", nineAM.Add(2 * time.Hour), nineAM.Add(3 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := gw.ListEvents(ctx, "cal-1", tt.min, tt.max)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}

func TestMemoryGateway_ListSortsByStart(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		at := base.Add(offset)
		if _, err := gw.InsertEvent(ctx, "cal-1", Event{Start: at, End: at.Add(30 * time.Minute)}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	events, err := gw.ListEvents(ctx, "cal-1", base, base.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Start.Before(events[i-1].Start) {
			t.Fatalf("events out of order: %v before %v", events[i].Start, events[i-1].Start)
		}
	}
}

func TestMemoryGateway_Delete(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	nineAM := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	id, err := gw.InsertEvent(ctx, "cal-1", Event{Start: nineAM, End: nineAM.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := gw.DeleteEvent(ctx, "cal-1", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := gw.EventCount("cal-1"); got != 0 {
		t.Errorf("expected an empty calendar, got %d events", got)
	}

	if err := gw.DeleteEvent(ctx, "cal-1", id); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second delete = %v, want ErrEventNotFound", err)
	}
}

func TestMemoryGateway_CalendarsAreIsolated(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()

	nineAM := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	if _, err := gw.InsertEvent(ctx, "cal-1", Event{Start: nineAM, End: nineAM.Add(30 * time.Minute)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	events, err := gw.ListEvents(ctx, "cal-2", nineAM, nineAM.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("cal-2 must not see cal-1 events, got %d", len(events))
	}
}

func TestMemoryGateway_HonoursCancelledContext(t *testing.T) {
	gw := NewMemoryGateway()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gw.ListEvents(ctx, "cal-1", time.Now(), time.Now().Add(time.Hour)); err == nil {
		t.Error("expected an error from a cancelled context")
	}
	if _, err := gw.InsertEvent(ctx, "cal-1", Event{}); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}
