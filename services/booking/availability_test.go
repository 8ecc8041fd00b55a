package booking

import (
	"context"
	"errors"
	"testing"

	"sparklewash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSlotsSubtractsBookings(t *testing.T) {
	schedules := &fakeScheduleRepo{schedule: &models.Schedule{
		ShopID: "shop1",
		Date:   "2026-09-01",
		FreeRanges: []models.FreeRange{
			{ID: "r1", From: "09:00", To: "10:00", Capacity: intPtr(4), Active: true},
		},
	}}
	bookings := &fakeBookingRepo{slotCounts: map[string]int64{"09:00": 3, "09:30": 6}}

	svc := &AvailabilityService{Schedules: schedules, Bookings: bookings, StepMinutes: 30}
	groups, err := svc.AvailableSlots(context.Background(), "shop1", "2026-09-01")
	require.NoError(t, err)

	require.Len(t, groups.Morning, 2)
	assert.Equal(t, 1, groups.Morning[0].RemainingCapacity)
	// Overbooked slots clamp at zero and stay in the result.
	assert.Equal(t, 0, groups.Morning[1].RemainingCapacity)
}

func TestAvailableSlotsDefaultGridWhenNoSchedule(t *testing.T) {
	svc := &AvailabilityService{
		Schedules:   &fakeScheduleRepo{schedule: nil},
		Bookings:    &fakeBookingRepo{},
		StepMinutes: 30,
	}

	groups, err := svc.AvailableSlots(context.Background(), "shop1", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, DefaultSlotGroups(), groups)
}

func TestAvailableSlotsScheduleFetchErrorIsTransient(t *testing.T) {
	svc := &AvailabilityService{
		Schedules:   &fakeScheduleRepo{err: errors.New("mongo down")},
		Bookings:    &fakeBookingRepo{},
		StepMinutes: 30,
	}

	_, err := svc.AvailableSlots(context.Background(), "shop1", "2026-09-01")
	var transient *TransientNetworkError
	assert.ErrorAs(t, err, &transient)
}

func TestAvailableSlotsDegradesWhenCountsFail(t *testing.T) {
	schedules := &fakeScheduleRepo{schedule: &models.Schedule{
		ShopID: "shop1",
		Date:   "2026-09-01",
		FreeRanges: []models.FreeRange{
			{ID: "r1", From: "09:00", To: "10:00", Capacity: intPtr(4), Active: true},
		},
	}}
	bookings := &fakeBookingRepo{countErr: errors.New("aggregation timeout")}

	svc := &AvailabilityService{Schedules: schedules, Bookings: bookings, StepMinutes: 30}
	groups, err := svc.AvailableSlots(context.Background(), "shop1", "2026-09-01")
	require.NoError(t, err)

	// Raw capacities are shown when the booked counts are unavailable.
	require.Len(t, groups.Morning, 2)
	assert.Equal(t, 4, groups.Morning[0].RemainingCapacity)
}

func TestFetchForSessionRequiresDateAndServices(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()
	draft, err := store.Create(ctx, "user1", "shop1", models.VehicleCar)
	require.NoError(t, err)

	svc := &AvailabilityService{
		Schedules:   &fakeScheduleRepo{},
		Bookings:    &fakeBookingRepo{},
		Sessions:    store,
		StepMinutes: 30,
	}

	_, err = svc.FetchForSession(ctx, draft.SessionID)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	SetDate(draft, "2026-09-01")
	require.NoError(t, store.Save(ctx, draft))
	_, err = svc.FetchForSession(ctx, draft.SessionID)
	assert.ErrorAs(t, err, &validation)
}

func TestFetchForSessionReturnsCurrentSlots(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()
	draft, err := store.Create(ctx, "user1", "shop1", models.VehicleCar)
	require.NoError(t, err)

	ToggleService(draft, foamWash)
	SetDate(draft, "2026-09-01")
	require.NoError(t, store.Save(ctx, draft))

	svc := &AvailabilityService{
		Schedules:   &fakeScheduleRepo{schedule: nil},
		Bookings:    &fakeBookingRepo{},
		Sessions:    store,
		StepMinutes: 30,
	}

	groups, err := svc.FetchForSession(ctx, draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, DefaultSlotGroups(), groups)
}

func TestFetchForSessionDiscardsStaleResult(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()
	draft, err := store.Create(ctx, "user1", "shop1", models.VehicleCar)
	require.NoError(t, err)

	ToggleService(draft, foamWash)
	SetDate(draft, "2026-09-01")
	require.NoError(t, store.Save(ctx, draft))

	// The date changes while the schedule fetch is in flight; the
	// generation bump must invalidate the result.
	schedules := &fakeScheduleRepo{schedule: nil}
	schedules.onGet = func() {
		current, getErr := store.Get(ctx, draft.SessionID)
		require.NoError(t, getErr)
		SetDate(current, "2026-09-02")
		require.NoError(t, store.Save(ctx, current))
	}

	svc := &AvailabilityService{
		Schedules:   schedules,
		Bookings:    &fakeBookingRepo{},
		Sessions:    store,
		StepMinutes: 30,
	}

	_, err = svc.FetchForSession(ctx, draft.SessionID)
	assert.ErrorIs(t, err, ErrStaleFetch)
}
