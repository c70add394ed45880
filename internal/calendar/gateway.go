package calendar

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEventNotFound = errors.New("calendar event not found")

	ErrUnavailable = errors.New("calendar backend unavailable")
)

// Event is an appointment as the external calendar stores it. The summary
// carries the booking holder's name; this service only ever inserts whole
// events or deletes them, it never edits one in place.
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// Gateway is the boundary to the external calendar, which is the system of
// record for all appointments. Implementations must return zone-aware
// timestamps and must surface backend failures as errors rather than empty
// results.
type Gateway interface {
	// ListEvents returns events intersecting [timeMin, timeMax), ordered by
	// start time.
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error)

	// InsertEvent creates a new event and returns its backend-assigned ID.
	InsertEvent(ctx context.Context, calendarID string, event Event) (string, error)

	// DeleteEvent removes an event, returning ErrEventNotFound if the backend
	// no longer knows it.
	DeleteEvent(ctx context.Context, calendarID string, eventID string) error
}
