package booking

import (
	"sort"

	"sparklewash/models"
	"sparklewash/utils"

	"go.uber.org/zap"
)

// GenerateSlots converts a shop's free-time ranges for a date into
// discrete bookable slots of stepMinutes each, partitioned at noon by
// slot start time and sorted ascending within each partition.
//
// A slot must fit entirely inside its range; a trailing partial period is
// dropped. A range with no published capacity gets DefaultSlotCapacity;
// a slot with zero remaining capacity is still returned so callers can
// render it disabled. Overlapping ranges may yield duplicate start times;
// they are deliberately not deduplicated here.
//
// When the schedule has no ranges, or any range is malformed, the
// caller-supplied fallback is returned instead so callers always receive
// a renderable result.
func GenerateSlots(schedule models.Schedule, stepMinutes int, fallback models.SlotGroups) models.SlotGroups {
	logger := utils.GetLogger()

	if stepMinutes <= 0 {
		stepMinutes = utils.DefaultSlotStepMinutes
	}
	if len(schedule.FreeRanges) == 0 {
		return fallback
	}

	var morning, afternoon []models.Slot
	for _, fr := range schedule.FreeRanges {
		if !fr.Active {
			continue
		}
		from, err := ParseClock(fr.From)
		if err != nil {
			logger.Warn("malformed free range, using fallback slots",
				zap.String("shopId", schedule.ShopID),
				zap.String("from", fr.From), zap.Error(err))
			return fallback
		}
		to, err := ParseClock(fr.To)
		if err != nil {
			logger.Warn("malformed free range, using fallback slots",
				zap.String("shopId", schedule.ShopID),
				zap.String("to", fr.To), zap.Error(err))
			return fallback
		}

		capacity := utils.DefaultSlotCapacity
		if fr.Capacity != nil {
			capacity = *fr.Capacity
		}

		for start := from; start.Add(stepMinutes) <= to; start = start.Add(stepMinutes) {
			slot := models.Slot{
				StartTime:         start.String(),
				RemainingCapacity: capacity,
			}
			if start < Noon {
				slot.Period = models.PeriodMorning
				morning = append(morning, slot)
			} else {
				slot.Period = models.PeriodAfternoon
				afternoon = append(afternoon, slot)
			}
		}
	}

	sortSlots(morning)
	sortSlots(afternoon)
	return models.SlotGroups{Morning: morning, Afternoon: afternoon}
}

func sortSlots(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
}

// DefaultSlotGroups is the fallback grid shown when a shop has not
// published free ranges for a date. Mirrors the legacy static slot board.
func DefaultSlotGroups() models.SlotGroups {
	return models.SlotGroups{
		Morning: []models.Slot{
			{StartTime: "08:00", Period: models.PeriodMorning, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "09:00", Period: models.PeriodMorning, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "10:00", Period: models.PeriodMorning, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "11:00", Period: models.PeriodMorning, RemainingCapacity: utils.DefaultSlotCapacity},
		},
		Afternoon: []models.Slot{
			{StartTime: "12:00", Period: models.PeriodAfternoon, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "13:00", Period: models.PeriodAfternoon, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "14:00", Period: models.PeriodAfternoon, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "15:00", Period: models.PeriodAfternoon, RemainingCapacity: utils.DefaultSlotCapacity},
			{StartTime: "16:00", Period: models.PeriodAfternoon, RemainingCapacity: utils.DefaultSlotCapacity},
		},
	}
}
