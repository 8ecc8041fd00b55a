package models

// ReconcilePayload carries everything support needs to resolve a charge
// that was captured without a confirmed booking.
type ReconcilePayload struct {
	SessionID       string   `json:"sessionId"`
	UserID          string   `json:"userId"`
	ShopID          string   `json:"shopId"`
	OrderID         string   `json:"orderId"`
	PaymentID       string   `json:"paymentId"`
	ServiceIDs      []string `json:"serviceIds"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	FulfillmentMode string   `json:"fulfillmentMode"`
	AmountCharged   int64    `json:"amountCharged"`
	RemainingAmount int64    `json:"remainingAmount"`
	Reason          string   `json:"reason"` // "verification_failed" or "booking_failed"
}
