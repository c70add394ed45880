package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonbook/internal/calendar"
	"salonbook/internal/scheduling/validator"
	"salonbook/pkg/config"
	apperrors "salonbook/pkg/errors"
	"salonbook/pkg/model"
)

const slotLockTTL = 10 * time.Second

type SchedulingService interface {
	CheckAvailability(ctx context.Context, req *model.AvailabilityRequest) (*model.Availability, error)
	FreeSlotsForDay(ctx context.Context, req *model.DaySlotsRequest) ([]model.DaySlot, error)
	NextFreeSlots(ctx context.Context, req *model.NextSlotsRequest) ([]model.DaySlot, error)
	Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error)
	Cancel(ctx context.Context, req *model.CancellationRequest) (*model.Cancellation, error)
}

type schedulingService struct {
	cfg       *config.Config
	checker   *AvailabilityChecker
	finder    *SlotFinder
	clock     SlotClock
	hours     OpeningHours
	validator *validator.RequestValidator
	locks     *slotLocks
	events    Publisher
}

func NewSchedulingService(
	cfg *config.Config,
	gateway calendar.Gateway,
	hours OpeningHours,
	reqValidator *validator.RequestValidator,
	events Publisher,
) SchedulingService {
	clock := NewSlotClock(hours, cfg.SlotDuration, cfg.Location)
	checker := NewAvailabilityChecker(gateway, cfg.GatewayTimeout)

	return &schedulingService{
		cfg:       cfg,
		checker:   checker,
		finder:    NewSlotFinder(clock, checker),
		clock:     clock,
		hours:     hours,
		validator: reqValidator,
		locks:     newSlotLocks(slotLockTTL),
		events:    events,
	}
}

// CheckAvailability reports whether one slot is bookable. A slot outside
// opening hours answers available=false with a reason rather than an error;
// this policy is applied uniformly to check requests, while Book treats the
// same case as caller error.
func (s *schedulingService) CheckAvailability(ctx context.Context, req *model.AvailabilityRequest) (*model.Availability, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	resource, err := s.resolveResource(req.Resource)
	if err != nil {
		return nil, err
	}
	slot, err := s.slotFor(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	if _, open := s.hours.WindowFor(slot.Start); !open {
		return &model.Availability{Available: false, Reason: model.ReasonClosed}, nil
	}
	if !s.withinHours(slot) {
		return &model.Availability{Available: false, Reason: model.ReasonOutsideHours}, nil
	}

	free, err := s.checker.IsFree(ctx, resource.CalendarID, slot)
	if err != nil {
		return nil, s.mapGatewayErr("availability check", resource.Name, err)
	}
	if !free {
		return &model.Availability{Available: false, Reason: model.ReasonBooked}, nil
	}
	return &model.Availability{Available: true}, nil
}

func (s *schedulingService) FreeSlotsForDay(ctx context.Context, req *model.DaySlotsRequest) ([]model.DaySlot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	resource, err := s.resolveResource(req.Resource)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, s.cfg.Location)
	if err != nil {
		return nil, apperrors.InvalidTime(fmt.Sprintf("%q is not a valid date", req.Date))
	}

	slots, err := s.finder.FreeSlotsForDay(ctx, resource.CalendarID, day)
	if err != nil {
		return nil, s.mapGatewayErr("day listing", resource.Name, err)
	}

	s.cfg.Log.Debug("Day listing completed",
		"resource", resource.Name,
		"date", req.Date,
		"free_slots", len(slots),
	)
	return s.toDaySlots(slots), nil
}

func (s *schedulingService) NextFreeSlots(ctx context.Context, req *model.NextSlotsRequest) ([]model.DaySlot, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	resource, err := s.resolveResource(req.Resource)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = s.cfg.NextSlotCount
	}

	now := time.Now().In(s.cfg.Location)
	slots, err := s.finder.NextFreeSlots(ctx, resource.CalendarID, count, s.cfg.HorizonDays, now)
	if err != nil {
		return nil, s.mapGatewayErr("horizon search", resource.Name, err)
	}

	s.cfg.Log.Debug("Horizon search completed",
		"resource", resource.Name,
		"requested", count,
		"found", len(slots),
		"horizon_days", s.cfg.HorizonDays,
	)
	return s.toDaySlots(slots), nil
}

// Book re-checks availability under an advisory in-process lock and inserts
// one event whose summary carries the holder's name. A taken slot is a
// normal negative outcome (SLOT_TAKEN), not a fault.
func (s *schedulingService) Book(ctx context.Context, req *model.BookingRequest) (*model.BookingConfirmation, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	resource, err := s.resolveResource(req.Resource)
	if err != nil {
		return nil, err
	}
	slot, err := s.bookableSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	lockKey := slotLockKey(resource.CalendarID, slot.Start)
	if !s.locks.acquire(lockKey, time.Now()) {
		return nil, apperrors.SlotTaken("This slot is currently being booked by another request")
	}
	defer s.locks.release(lockKey)

	free, err := s.checker.IsFree(ctx, resource.CalendarID, slot)
	if err != nil {
		return nil, s.mapGatewayErr("booking pre-check", resource.Name, err)
	}
	if !free {
		return nil, apperrors.SlotTaken(fmt.Sprintf("The %s slot on %s is already taken", req.Time, req.Date))
	}

	insertCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()
	eventID, err := s.checker.gateway.InsertEvent(insertCtx, resource.CalendarID, calendar.Event{
		Summary: req.Name,
		Start:   slot.Start,
		End:     slot.End,
	})
	if err != nil {
		return nil, s.mapGatewayErr("booking insert", resource.Name, err)
	}

	confirmation := &model.BookingConfirmation{
		EventID:  eventID,
		Resource: resource.Name,
		Name:     req.Name,
		Start:    slot.Start,
		End:      slot.End,
	}

	s.cfg.Log.Info("Booking confirmed",
		"resource", resource.Name,
		"start", slot.Start,
		"event_id", eventID,
	)
	s.publishBookingEvent(ctx, EventBookingConfirmed, resource, req.Name, slot, eventID, 0)

	return confirmation, nil
}

// Cancel locates events overlapping the slot whose summary matches the
// holder's name under the configured strategy and deletes every match.
// Zero matches is NOT_FOUND, a normal negative outcome.
func (s *schedulingService) Cancel(ctx context.Context, req *model.CancellationRequest) (*model.Cancellation, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	resource, err := s.resolveResource(req.Resource)
	if err != nil {
		return nil, err
	}
	slot, err := s.slotFor(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	events, err := s.checker.ListWindow(ctx, resource.CalendarID, slot.Start, slot.End)
	if err != nil {
		return nil, s.mapGatewayErr("cancellation lookup", resource.Name, err)
	}

	removed := 0
	for _, ev := range events {
		if !s.matchesHolder(ev.Summary, req.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, s.partialCancel(resource.Name, removed, err)
		}

		deleteCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
		err := s.checker.gateway.DeleteEvent(deleteCtx, resource.CalendarID, ev.ID)
		cancel()
		if err != nil {
			if errors.Is(err, calendar.ErrEventNotFound) {
				// Someone else removed it first; the outcome is what the
				// caller wanted.
				removed++
				continue
			}
			return nil, s.partialCancel(resource.Name, removed, err)
		}
		removed++
	}

	if removed == 0 {
		return nil, apperrors.NotFound(fmt.Sprintf("No appointment for %q at %s %s", req.Name, req.Date, req.Time))
	}

	result := &model.Cancellation{
		Resource: resource.Name,
		Name:     req.Name,
		Removed:  removed,
	}

	s.cfg.Log.Info("Booking cancelled",
		"resource", resource.Name,
		"start", slot.Start,
		"removed", removed,
	)
	s.publishBookingEvent(ctx, EventBookingCancelled, resource, req.Name, slot, "", removed)

	return result, nil
}

// --- Helpers ---

func (s *schedulingService) validate(req any) error {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Request validation failed", "error", err)
		return apperrors.Validation("Request validation failed", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

func (s *schedulingService) resolveResource(name string) (model.Resource, error) {
	resource, ok := s.cfg.FindResource(name)
	if !ok {
		s.cfg.Log.Warn("Unknown resource requested", "resource", name)
		return model.Resource{}, apperrors.UnknownResource(name)
	}
	return resource, nil
}

func (s *schedulingService) slotFor(date, clock string) (model.Slot, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, s.cfg.Location)
	if err != nil {
		return model.Slot{}, apperrors.InvalidTime(fmt.Sprintf("%q %q is not a valid date and time", date, clock))
	}
	return s.clock.SlotAt(start), nil
}

// bookableSlot parses and then enforces what Book requires beyond parsing:
// the start must sit on the grid and the whole slot must fit within hours.
func (s *schedulingService) bookableSlot(date, clock string) (model.Slot, error) {
	slot, err := s.slotFor(date, clock)
	if err != nil {
		return model.Slot{}, err
	}
	if _, open := s.hours.WindowFor(slot.Start); !open {
		return model.Slot{}, apperrors.InvalidTime(fmt.Sprintf("The salon is closed on %s", date))
	}
	if !s.clock.Aligned(slot.Start) {
		return model.Slot{}, apperrors.InvalidTime(fmt.Sprintf("%s is not on the %s booking grid", clock, s.cfg.SlotDuration))
	}
	if !s.withinHours(slot) {
		return model.Slot{}, apperrors.InvalidTime(fmt.Sprintf("%s %s is outside opening hours", date, clock))
	}
	return slot, nil
}

// withinHours requires the full slot to fit before closing, so a start equal
// to the open boundary passes and a slot ending past close does not.
func (s *schedulingService) withinHours(slot model.Slot) bool {
	if !s.hours.IsOpen(slot.Start) {
		return false
	}
	window, _ := s.hours.WindowFor(slot.Start)
	endMinute := slot.End.Hour()*60 + slot.End.Minute()
	if endMinute == 0 && slot.End.Day() != slot.Start.Day() {
		endMinute = 24 * 60
	}
	return endMinute <= window.Close
}

func (s *schedulingService) matchesHolder(summary, name string) bool {
	if s.cfg.MatchStrategy == config.MatchSubstring {
		return strings.Contains(strings.ToLower(summary), strings.ToLower(name))
	}
	return strings.EqualFold(strings.TrimSpace(summary), strings.TrimSpace(name))
}

// partialCancel surfaces an interrupted delete loop without hiding how many
// events were already removed; the calendar may now hold fewer matches than
// the caller expects on retry.
func (s *schedulingService) partialCancel(resource string, removed int, err error) error {
	s.cfg.Log.Error("Cancellation interrupted",
		"resource", resource,
		"removed_before_failure", removed,
		"error", err,
	)
	return s.mapGatewayErr("cancellation delete", resource, err).
		WithDetails(map[string]any{"removed_before_failure": removed})
}

func (s *schedulingService) toDaySlots(slots []model.Slot) []model.DaySlot {
	result := make([]model.DaySlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, model.DaySlot{
			Date: slot.Start.Format("2006-01-02"),
			Time: slot.Start.Format("15:04"),
			Slot: slot,
		})
	}
	return result
}

// mapGatewayErr turns transport failures into the typed fault taxonomy.
// Gateway trouble is never reported as "unavailable" or "not found"; callers
// must be able to tell an outage from a business answer.
func (s *schedulingService) mapGatewayErr(op, resource string, err error) *apperrors.AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.cfg.Log.Error("Calendar call timed out", "operation", op, "resource", resource, "error", err)
		return apperrors.GatewayTimeout(err)
	case errors.Is(err, context.Canceled):
		s.cfg.Log.Warn("Calendar call cancelled by caller", "operation", op, "resource", resource)
		return apperrors.GatewayError("the request was cancelled before the calendar answered", err)
	case errors.Is(err, calendar.ErrUnavailable):
		s.cfg.Log.Error("Calendar backend unavailable", "operation", op, "resource", resource, "error", err)
		return apperrors.GatewayError("the calendar backend is unavailable", err)
	default:
		s.cfg.Log.Error("Calendar call failed", "operation", op, "resource", resource, "error", err)
		return apperrors.GatewayError("the calendar call failed", err)
	}
}
