package scheduling

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/pkg/kafka"
	"salonbook/pkg/model"

	"github.com/google/uuid"
)

// Publisher emits booking lifecycle records. It is optional; a nil publisher
// disables the stream without touching the booking path.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the record published for downstream consumers (analytics,
// audit). Delivery is best-effort: a publish failure never fails the booking.
type BookingEvent struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Resource string    `json:"resource"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	EventID  string    `json:"calendar_event_id,omitempty"`
	Removed  int       `json:"removed,omitempty"`
	At       time.Time `json:"at"`
}

func (s *schedulingService) publishBookingEvent(ctx context.Context, eventType string, resource model.Resource, name string, slot model.Slot, calendarEventID string, removed int) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(BookingEvent{
		ID:       uuid.NewString(),
		Type:     eventType,
		Resource: resource.Name,
		Name:     name,
		Start:    slot.Start,
		End:      slot.End,
		EventID:  calendarEventID,
		Removed:  removed,
		At:       time.Now().In(s.clock.Location()),
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to encode booking event", "type", eventType, "error", err)
		return
	}

	if err := s.events.Publish(ctx, kafka.Message{
		Key:       resource.CalendarID,
		Value:     payload,
		Timestamp: time.Now(),
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"type", eventType,
			"resource", resource.Name,
			"error", err,
		)
	}
}
