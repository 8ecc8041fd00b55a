package models

import "time"

// Vehicle categories a shop may serve.
const (
	VehicleCar   = "Car"
	VehicleBike  = "Bike"
	VehicleHeavy = "Heavy Vehicle"
)

// Fulfillment modes.
const (
	FulfillAtLocation = "at-location"
	FulfillPickupDrop = "pickup-drop"
	FulfillAtHome     = "at-home"
)

// Payment options.
const (
	PaymentDeposit = "deposit"
	PaymentFull    = "full"
)

// Payment statuses on a persisted booking.
const (
	PayStatusUnpaid  = "unpaid"
	PayStatusPartial = "partial"
	PayStatusPaid    = "paid"
)

// Booking statuses. Lifecycle beyond creation is owned by the booking
// repository callers, not the orchestrator.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// SelectedService is one service in a customer's draft. Unique by ID
// within a draft. UnitPrice is in whole currency units.
type SelectedService struct {
	ID              string `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	UnitPrice       int64  `bson:"unitPrice" json:"unitPrice"`
	DurationMinutes int    `bson:"durationMinutes" json:"durationMinutes"`
}

// Totals is derived from the draft's services, never stored independently.
type Totals struct {
	TotalPrice           int64 `json:"totalPrice"`
	TotalDurationMinutes int   `json:"totalDurationMinutes"`
}

// BookingDraft is the customer's in-progress selection, owned by one
// session only and cached with a TTL. State tracks the orchestrator phase.
type BookingDraft struct {
	SessionID       string            `json:"sessionId"`
	UserID          string            `json:"userId"`
	ShopID          string            `json:"shopId"`
	VehicleCategory string            `json:"vehicleCategory"`
	Services        []SelectedService `json:"services"`
	Date            string            `json:"date"` // "2006-01-02"
	Time            string            `json:"time"` // 24-hour "HH:MM"
	FulfillmentMode string            `json:"fulfillmentMode"`
	PaymentOption   string            `json:"paymentOption"`

	// ScheduleGen tags availability fetches; responses carrying a stale
	// generation are discarded.
	ScheduleGen uint64 `json:"scheduleGen"`

	// Orchestrator bookkeeping.
	State           string `json:"state"`
	Receipt         string `json:"receipt,omitempty"`
	OrderID         string `json:"orderId,omitempty"`
	PaymentID       string `json:"paymentId,omitempty"`
	AmountCharged   int64  `json:"amountCharged,omitempty"`
	RemainingAmount int64  `json:"remainingAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Booking is the persisted record, created exactly once per verified
// payment. Amounts are in whole currency units.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	ShopID          string    `bson:"shopId" json:"shopId"`
	OrderID         string    `bson:"orderId" json:"orderId"`
	PaymentID       string    `bson:"paymentId" json:"paymentId"`
	ServiceIDs      []string  `bson:"serviceIds" json:"serviceIds"`
	Date            string    `bson:"date" json:"date"`
	StartTime       string    `bson:"startTime" json:"startTime"`
	EndTime         string    `bson:"endTime" json:"endTime"`
	FulfillmentMode string    `bson:"fulfillmentMode" json:"fulfillmentMode"`
	AmountPaid      int64     `bson:"amountPaid" json:"amountPaid"`
	RemainingAmount int64     `bson:"remainingAmount" json:"remainingAmount"`
	PaymentStatus   string    `bson:"paymentStatus" json:"paymentStatus"`
	BookingStatus   string    `bson:"bookingStatus" json:"bookingStatus"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
