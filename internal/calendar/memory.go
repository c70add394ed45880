package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryGateway is an in-process Gateway for tests and local development.
// It applies the same half-open interval semantics as the real backend.
type MemoryGateway struct {
	mu     sync.Mutex
	events map[string][]Event
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		events: make(map[string][]Event),
	}
}

func (m *MemoryGateway) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result []Event
	for _, ev := range m.events[calendarID] {
		if ev.Start.Before(timeMax) && timeMin.Before(ev.End) {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	return result, nil
}

func (m *MemoryGateway) InsertEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	event.ID = uuid.NewString()
	m.events[calendarID] = append(m.events[calendarID], event)
	return event.ID, nil
}

func (m *MemoryGateway) DeleteEvent(ctx context.Context, calendarID string, eventID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	events := m.events[calendarID]
	for i, ev := range events {
		if ev.ID == eventID {
			m.events[calendarID] = append(events[:i], events[i+1:]...)
			return nil
		}
	}
	return ErrEventNotFound
}

// EventCount reports how many events a calendar holds, for test assertions.
func (m *MemoryGateway) EventCount(calendarID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events[calendarID])
}
