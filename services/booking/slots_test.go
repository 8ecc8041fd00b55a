package booking

import (
	"testing"

	"sparklewash/models"
	"sparklewash/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule(ranges ...models.FreeRange) models.Schedule {
	return models.Schedule{ShopID: "shop1", Date: "2026-09-01", FreeRanges: ranges}
}

func startTimes(slots []models.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestGenerateSlotsSpansNoon(t *testing.T) {
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "13:00", Capacity: intPtr(3), Active: true},
	), 30, DefaultSlotGroups())

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, startTimes(groups.Morning))
	assert.Equal(t, []string{"12:00", "12:30"}, startTimes(groups.Afternoon))

	for _, s := range groups.Morning {
		assert.Equal(t, models.PeriodMorning, s.Period)
		assert.Equal(t, 3, s.RemainingCapacity)
	}
	for _, s := range groups.Afternoon {
		assert.Equal(t, models.PeriodAfternoon, s.Period)
	}
}

func TestGenerateSlotsDropsTrailingPartialPeriod(t *testing.T) {
	// 09:00-10:45 fits three 30-minute slots; the last 15 minutes are
	// not offered.
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "10:45", Active: true},
	), 30, DefaultSlotGroups())

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, startTimes(groups.Morning))
	assert.Empty(t, groups.Afternoon)
}

func TestGenerateSlotsSlotCount(t *testing.T) {
	// floor((to-from)/step) slots per range.
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "08:00", To: "11:10", Active: true},
	), 30, DefaultSlotGroups())
	assert.Len(t, groups.Morning, 6)
}

func TestGenerateSlotsNoonBoundaryIsAfternoon(t *testing.T) {
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "11:30", To: "12:30", Active: true},
	), 30, DefaultSlotGroups())

	assert.Equal(t, []string{"11:30"}, startTimes(groups.Morning))
	assert.Equal(t, []string{"12:00"}, startTimes(groups.Afternoon))
}

func TestGenerateSlotsDefaultCapacityWhenUnpublished(t *testing.T) {
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "10:00", Active: true},
	), 30, DefaultSlotGroups())

	require.NotEmpty(t, groups.Morning)
	assert.Equal(t, utils.DefaultSlotCapacity, groups.Morning[0].RemainingCapacity)
}

func TestGenerateSlotsKeepsZeroCapacitySlots(t *testing.T) {
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "10:00", Capacity: intPtr(0), Active: true},
	), 30, DefaultSlotGroups())

	require.Len(t, groups.Morning, 2)
	for _, s := range groups.Morning {
		assert.Equal(t, 0, s.RemainingCapacity)
	}
}

func TestGenerateSlotsSkipsInactiveRanges(t *testing.T) {
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "10:00", Active: false},
		models.FreeRange{ID: "r2", From: "14:00", To: "15:00", Active: true},
	), 30, DefaultSlotGroups())

	assert.Empty(t, groups.Morning)
	assert.Equal(t, []string{"14:00", "14:30"}, startTimes(groups.Afternoon))
}

func TestGenerateSlotsOverlappingRangesKeepDuplicates(t *testing.T) {
	// Overlapping ranges yield duplicate start times; callers see both.
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "10:00", Active: true},
		models.FreeRange{ID: "r2", From: "09:30", To: "10:30", Active: true},
	), 30, DefaultSlotGroups())

	assert.Equal(t, []string{"09:00", "09:30", "09:30", "10:00"}, startTimes(groups.Morning))
}

func TestGenerateSlotsSortedAcrossRanges(t *testing.T) {
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r2", From: "10:00", To: "11:00", Active: true},
		models.FreeRange{ID: "r1", From: "08:00", To: "09:00", Active: true},
	), 30, DefaultSlotGroups())

	assert.Equal(t, []string{"08:00", "08:30", "10:00", "10:30"}, startTimes(groups.Morning))
}

func TestGenerateSlotsFallbackOnEmptySchedule(t *testing.T) {
	fallback := DefaultSlotGroups()
	groups := GenerateSlots(schedule(), 30, fallback)
	assert.Equal(t, fallback, groups)
}

func TestGenerateSlotsFallbackOnMalformedRange(t *testing.T) {
	fallback := DefaultSlotGroups()

	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "10:00", Active: true},
		models.FreeRange{ID: "r2", From: "9am", To: "11:00", Active: true},
	), 30, fallback)
	assert.Equal(t, fallback, groups)
}

func TestGenerateSlotsEmptyRangeYieldsNoSlots(t *testing.T) {
	// A well-formed range too short for one step produces no slots but
	// does not trigger the fallback.
	groups := GenerateSlots(schedule(
		models.FreeRange{ID: "r1", From: "09:00", To: "09:15", Active: true},
	), 30, DefaultSlotGroups())

	assert.Empty(t, groups.Morning)
	assert.Empty(t, groups.Afternoon)
}

func TestDefaultSlotGroupsShape(t *testing.T) {
	groups := DefaultSlotGroups()
	assert.Len(t, groups.Morning, 4)
	assert.Len(t, groups.Afternoon, 5)
	assert.Equal(t, "08:00", groups.Morning[0].StartTime)
	assert.Equal(t, "16:00", groups.Afternoon[4].StartTime)
}
