package booking

import (
	"testing"

	"sparklewash/models"

	"github.com/stretchr/testify/assert"
)

var (
	foamWash = models.SelectedService{ID: "svc1", Name: "Foam Wash", UnitPrice: 200, DurationMinutes: 30}
	polish   = models.SelectedService{ID: "svc2", Name: "Polish", UnitPrice: 150, DurationMinutes: 45}
)

func draftWith(services ...models.SelectedService) *models.BookingDraft {
	return &models.BookingDraft{
		SessionID:       "sess1",
		ShopID:          "shop1",
		VehicleCategory: models.VehicleCar,
		Services:        services,
		State:           StateIdle,
	}
}

func TestToggleServiceAddsAndRemoves(t *testing.T) {
	d := draftWith()

	ToggleService(d, foamWash)
	assert.Len(t, d.Services, 1)

	ToggleService(d, polish)
	assert.Len(t, d.Services, 2)

	ToggleService(d, foamWash)
	assert.Equal(t, []models.SelectedService{polish}, d.Services)
}

func TestToggleServiceNeverDuplicates(t *testing.T) {
	d := draftWith(foamWash)

	ToggleService(d, foamWash)
	ToggleService(d, foamWash)
	assert.Len(t, d.Services, 1)
}

func TestToggleLastServiceClearsTime(t *testing.T) {
	d := draftWith(foamWash)
	d.Date = "2026-09-01"
	d.Time = "09:30"
	gen := d.ScheduleGen

	ToggleService(d, foamWash)

	assert.Empty(t, d.Services)
	assert.Empty(t, d.Time)
	assert.Equal(t, gen+1, d.ScheduleGen)
	assert.Equal(t, "2026-09-01", d.Date)
}

func TestSetVehicleCategoryClearsServices(t *testing.T) {
	d := draftWith(foamWash, polish)
	d.Time = "09:30"

	SetVehicleCategory(d, models.VehicleBike)

	assert.Equal(t, models.VehicleBike, d.VehicleCategory)
	assert.Empty(t, d.Services)
	assert.Empty(t, d.Time)
}

func TestSetVehicleCategorySameValueIsNoOp(t *testing.T) {
	d := draftWith(foamWash)
	d.Time = "09:30"

	SetVehicleCategory(d, models.VehicleCar)

	assert.Len(t, d.Services, 1)
	assert.Equal(t, "09:30", d.Time)
}

func TestSetDateInvalidatesTimeAndBumpsGeneration(t *testing.T) {
	d := draftWith(foamWash)
	d.Date = "2026-09-01"
	d.Time = "09:30"
	gen := d.ScheduleGen

	SetDate(d, "2026-09-02")

	assert.Equal(t, "2026-09-02", d.Date)
	assert.Empty(t, d.Time)
	assert.Equal(t, gen+1, d.ScheduleGen)
	assert.Len(t, d.Services, 1)
}

func TestSetDateSameValueIsNoOp(t *testing.T) {
	d := draftWith(foamWash)
	d.Date = "2026-09-01"
	d.Time = "09:30"
	gen := d.ScheduleGen

	SetDate(d, "2026-09-01")

	assert.Equal(t, "09:30", d.Time)
	assert.Equal(t, gen, d.ScheduleGen)
}

func TestComputeTotalsFoldsSelection(t *testing.T) {
	d := draftWith(foamWash, polish)

	totals := ComputeTotals(d)
	assert.Equal(t, int64(350), totals.TotalPrice)
	assert.Equal(t, 75, totals.TotalDurationMinutes)

	assert.Equal(t, models.Totals{}, ComputeTotals(draftWith()))
}

func TestIsBookable(t *testing.T) {
	d := draftWith(foamWash)
	assert.False(t, IsBookable(d))

	d.Date = "2026-09-01"
	assert.False(t, IsBookable(d))

	d.Time = "09:30"
	assert.True(t, IsBookable(d))

	d.Services = nil
	assert.False(t, IsBookable(d))
}
