package booking

import (
	"context"

	bookingRepo "sparklewash/database/repository/booking"
	scheduleRepo "sparklewash/database/repository/schedule"
	"sparklewash/models"
	"sparklewash/utils"

	"go.uber.org/zap"
)

// AvailabilityService turns a shop's published free ranges into the slot
// groups the booking flow renders.
type AvailabilityService struct {
	Schedules   scheduleRepo.ScheduleRepository
	Bookings    bookingRepo.BookingRepository
	Sessions    *SessionStore
	StepMinutes int
}

// AvailableSlots computes the bookable slots for a shop and date.
// A shop with no published schedule gets the default grid, never an
// error. Remaining capacity is reduced by existing bookings per start
// time and clamped at zero; exhausted slots stay in the result so the UI
// can show them disabled.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, shopID, date string) (models.SlotGroups, error) {
	logger := utils.GetLogger()

	schedule, err := s.Schedules.GetByShopIDAndDate(ctx, shopID, date)
	if err != nil {
		return models.SlotGroups{}, &TransientNetworkError{Op: "fetch schedule", Err: err}
	}
	if schedule == nil {
		schedule = &models.Schedule{ShopID: shopID, Date: date}
	}

	groups := GenerateSlots(*schedule, s.StepMinutes, DefaultSlotGroups())

	booked, err := s.Bookings.CountActiveByShopAndDate(ctx, shopID, date)
	if err != nil {
		// Capacity counts are a display hint; degrade to the raw
		// capacities rather than failing the fetch.
		logger.Warn("failed to count bookings for capacity display",
			zap.String("shopId", shopID), zap.String("date", date), zap.Error(err))
		return groups, nil
	}

	applyBookedCounts(groups.Morning, booked)
	applyBookedCounts(groups.Afternoon, booked)
	return groups, nil
}

// FetchForSession runs AvailableSlots for the session's current draft,
// tagged with the draft's schedule generation. If the draft's date or
// service selection changed while the fetch was in flight, the result is
// stale and discarded.
func (s *AvailabilityService) FetchForSession(ctx context.Context, sessionID string) (models.SlotGroups, error) {
	draft, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.SlotGroups{}, err
	}
	if draft.Date == "" {
		return models.SlotGroups{}, NewValidationError("date not set")
	}
	if len(draft.Services) == 0 {
		return models.SlotGroups{}, NewValidationError("no services selected")
	}

	gen := draft.ScheduleGen

	groups, err := s.AvailableSlots(ctx, draft.ShopID, draft.Date)
	if err != nil {
		return models.SlotGroups{}, err
	}

	// Re-read the draft: a date or service change since the fetch began
	// bumps the generation and invalidates this result.
	current, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.SlotGroups{}, err
	}
	if current.ScheduleGen != gen {
		return models.SlotGroups{}, ErrStaleFetch
	}
	return groups, nil
}

func applyBookedCounts(slots []models.Slot, booked map[string]int64) {
	for i := range slots {
		remaining := slots[i].RemainingCapacity - int(booked[slots[i].StartTime])
		if remaining < 0 {
			remaining = 0
		}
		slots[i].RemainingCapacity = remaining
	}
}
