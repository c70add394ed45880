package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleGateway talks to the Google Calendar API with a service account.
// Each staff calendar must be shared with the service account's address.
type GoogleGateway struct {
	service *gcal.Service
}

func NewGoogleGateway(ctx context.Context, credentialsFile string) (*GoogleGateway, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleGateway{service: service}, nil
}

func (g *GoogleGateway) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	call := g.service.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	result, err := call.Do()
	if err != nil {
		return nil, wrapGoogleErr("list events", err)
	}

	events := make([]Event, 0, len(result.Items))
	for _, item := range result.Items {
		// All-day events carry only a Date; they block the whole day and are
		// expanded to midnight-to-midnight in the calendar's zone.
		start, end, err := eventInterval(item, timeMin.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: malformed event %s: %v", ErrUnavailable, item.Id, err)
		}
		events = append(events, Event{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   start,
			End:     end,
		})
	}

	return events, nil
}

func (g *GoogleGateway) InsertEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	created, err := g.service.Events.Insert(calendarID, &gcal.Event{
		Summary: event.Summary,
		Start:   &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339)},
		End:     &gcal.EventDateTime{DateTime: event.End.Format(time.RFC3339)},
	}).Context(ctx).Do()
	if err != nil {
		return "", wrapGoogleErr("insert event", err)
	}
	return created.Id, nil
}

func (g *GoogleGateway) DeleteEvent(ctx context.Context, calendarID string, eventID string) error {
	if err := g.service.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return wrapGoogleErr("delete event", err)
	}
	return nil
}

func eventInterval(item *gcal.Event, loc *time.Location) (time.Time, time.Time, error) {
	if item.Start == nil || item.End == nil {
		return time.Time{}, time.Time{}, errors.New("event has no start or end")
	}

	if item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}

	start, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation("2006-01-02", item.End.Date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func wrapGoogleErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone:
			return fmt.Errorf("%w: %s", ErrEventNotFound, op)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
		default:
			return fmt.Errorf("failed to %s: %w", op, err)
		}
	}

	// Transport-level failures (DNS, refused connections) have no HTTP code.
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
