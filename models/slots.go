package models

// FreeRange represents a contiguous window of the day during which a shop
// accepts bookings. Times are 24-hour "HH:MM" strings, local to the shop.
type FreeRange struct {
	ID       string `bson:"id" json:"id"`
	From     string `bson:"from" json:"from"`
	To       string `bson:"to" json:"to"`
	Capacity *int   `bson:"capacity,omitempty" json:"capacity,omitempty"` // nil means "not published"
	Active   bool   `bson:"active" json:"active"`
}

// Schedule is the set of free ranges a shop published for one date.
// Immutable once fetched for a given (shop, date) pair.
type Schedule struct {
	ShopID     string      `bson:"shopId" json:"shopId"`
	Date       string      `bson:"date" json:"date"` // e.g., "2026-03-14"
	FreeRanges []FreeRange `bson:"freeRanges" json:"freeRanges"`
}

// Slot periods, partitioned at noon by slot start time.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
)

// Slot is a discrete bookable start time derived from a free range.
// RemainingCapacity is a display hint; the authoritative capacity check
// happens at booking time.
type Slot struct {
	StartTime         string `json:"startTime"` // 24-hour "HH:MM"
	Period            string `json:"period"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

// SlotGroups holds the generated slots partitioned by period, each group
// sorted ascending by start time.
type SlotGroups struct {
	Morning   []Slot `json:"morning"`
	Afternoon []Slot `json:"afternoon"`
}
