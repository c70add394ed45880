package scheduling

import (
	"testing"
	"time"
)

func TestCandidateStarts_FullDay(t *testing.T) {
	hours := mustParseHours(t, testHoursTable)
	clock := NewSlotClock(hours, 30*time.Minute, time.UTC)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	starts := clock.CandidateStarts(monday)

	if len(starts) != 18 {
		t.Fatalf("expected 18 candidate starts, got %d", len(starts))
	}
	if got := starts[0].Format("15:04"); got != "09:00" {
		t.Errorf("first start = %s, want 09:00", got)
	}
	if got := starts[len(starts)-1].Format("15:04"); got != "17:30" {
		t.Errorf("last start = %s, want 17:30", got)
	}

	for i := 1; i < len(starts); i++ {
		if diff := starts[i].Sub(starts[i-1]); diff != 30*time.Minute {
			t.Errorf("gap between starts %d and %d is %s", i-1, i, diff)
		}
	}
}

func TestCandidateStarts_ClosedDay(t *testing.T) {
	hours := mustParseHours(t, testHoursTable)
	clock := NewSlotClock(hours, 30*time.Minute, time.UTC)

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	if starts := clock.CandidateStarts(sunday); len(starts) != 0 {
		t.Errorf("expected no starts on a closed day, got %d", len(starts))
	}
}

// The last slot must end exactly at close; a slot that would spill past close
// is never offered.
func TestCandidateStarts_CloseBoundary(t *testing.T) {
	hours := mustParseHours(t, map[string]string{"monday": "09:00-10:15"})
	clock := NewSlotClock(hours, 30*time.Minute, time.UTC)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	starts := clock.CandidateStarts(monday)

	// 09:00 and 09:30 fit; a 10:00 slot would end 10:30, past 10:15.
	if len(starts) != 2 {
		t.Fatalf("expected 2 starts, got %d", len(starts))
	}
	if got := starts[1].Format("15:04"); got != "09:30" {
		t.Errorf("last start = %s, want 09:30", got)
	}
}

func TestCandidateStarts_ExactFit(t *testing.T) {
	hours := mustParseHours(t, map[string]string{"monday": "09:00-10:00"})
	clock := NewSlotClock(hours, 30*time.Minute, time.UTC)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	starts := clock.CandidateStarts(monday)

	// The 09:30 slot ends exactly at close and is included.
	if len(starts) != 2 {
		t.Fatalf("expected 2 starts, got %d", len(starts))
	}
}

func TestSlotAt(t *testing.T) {
	hours := mustParseHours(t, testHoursTable)
	clock := NewSlotClock(hours, 30*time.Minute, time.UTC)

	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slot := clock.SlotAt(start)

	if !slot.Start.Equal(start) {
		t.Errorf("slot start = %v, want %v", slot.Start, start)
	}
	if want := start.Add(30 * time.Minute); !slot.End.Equal(want) {
		t.Errorf("slot end = %v, want %v", slot.End, want)
	}
}

func TestAligned(t *testing.T) {
	hours := mustParseHours(t, testHoursTable)
	clock := NewSlotClock(hours, 30*time.Minute, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"on the hour", time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), true},
		{"on the half hour", time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC), true},
		{"off grid", time.Date(2026, 9, 7, 9, 15, 0, 0, time.UTC), false},
		{"sub-minute precision", time.Date(2026, 9, 7, 9, 0, 30, 0, time.UTC), false},
		{"closed day", time.Date(2026, 9, 6, 9, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clock.Aligned(tt.at); got != tt.want {
				t.Errorf("Aligned(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}
