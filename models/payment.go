package models

// PaymentOrder is the gateway order created for one confirm attempt.
// AmountMinorUnits is in the currency's minor unit (e.g., paise).
type PaymentOrder struct {
	OrderID          string `json:"orderId"`
	AmountMinorUnits int64  `json:"amountMinorUnits"`
	Currency         string `json:"currency"`
	Receipt          string `json:"receipt"`
}

// GatewayResult is what the hosted payment widget reports back.
// Dismissed means the user closed the widget before paying.
type GatewayResult struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
	Dismissed bool   `json:"dismissed"`
}

// VerifiedPayment is the proof object re-validated before a booking may
// be created.
type VerifiedPayment struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}
