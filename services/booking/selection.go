package booking

import (
	"sparklewash/models"
)

// Draft transition rules. These run synchronously on the cached draft
// before it is written back to the session store.

// SetVehicleCategory switches the vehicle category and clears the chosen
// services: services are category-scoped, so none of them survive the
// switch. Clearing services also invalidates the chosen time.
func SetVehicleCategory(d *models.BookingDraft, vehicle string) {
	if d.VehicleCategory == vehicle {
		return
	}
	d.VehicleCategory = vehicle
	d.Services = nil
	invalidateSchedule(d)
}

// ToggleService adds the service to the draft, or removes it if already
// selected. Idempotent per ID: toggling twice is a no-op on the set.
// Emptying the selection invalidates the chosen time.
func ToggleService(d *models.BookingDraft, svc models.SelectedService) {
	for i, existing := range d.Services {
		if existing.ID == svc.ID {
			d.Services = append(d.Services[:i], d.Services[i+1:]...)
			if len(d.Services) == 0 {
				invalidateSchedule(d)
			}
			return
		}
	}
	d.Services = append(d.Services, svc)
}

// SetDate changes the appointment date. Any previously fetched schedule
// and chosen time are invalid for the new date.
func SetDate(d *models.BookingDraft, date string) {
	if d.Date == date {
		return
	}
	d.Date = date
	invalidateSchedule(d)
}

// SetTime records the chosen slot start time.
func SetTime(d *models.BookingDraft, t string) {
	d.Time = t
}

// SetFulfillmentMode records how the service will be fulfilled.
func SetFulfillmentMode(d *models.BookingDraft, mode string) {
	d.FulfillmentMode = mode
}

// invalidateSchedule clears the chosen time and bumps the schedule
// generation so any in-flight availability fetch is discarded as stale.
func invalidateSchedule(d *models.BookingDraft) {
	d.Time = ""
	d.ScheduleGen++
}

// ComputeTotals folds the selected services into price and duration
// sums. No service contributes twice: the set is unique by ID.
func ComputeTotals(d *models.BookingDraft) models.Totals {
	var totals models.Totals
	for _, svc := range d.Services {
		totals.TotalPrice += svc.UnitPrice
		totals.TotalDurationMinutes += svc.DurationMinutes
	}
	return totals
}

// IsBookable reports whether the draft is complete enough to enter the
// payment flow: at least one service, a date, and a time.
func IsBookable(d *models.BookingDraft) bool {
	return len(d.Services) > 0 && d.Date != "" && d.Time != ""
}
