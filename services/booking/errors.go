package booking

import (
	"errors"
	"fmt"
)

// ErrPaymentDismissed is not a failure: the user closed the payment
// widget before paying. No charge, no booking; the draft is preserved.
var ErrPaymentDismissed = errors.New("payment dismissed by user")

// ErrStaleFetch marks an availability response whose generation token no
// longer matches the session; the result must be discarded.
var ErrStaleFetch = errors.New("stale availability fetch discarded")

// ValidationError blocks entering the orchestrator; recovered locally by
// completing the draft.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// TransientNetworkError covers order creation and availability fetch
// failures; safe for the user to retry.
type TransientNetworkError struct {
	Op  string
	Err error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("transientNetworkError: %s: %v", e.Op, e.Err)
}

func (e *TransientNetworkError) Unwrap() error { return e.Err }

// VerificationError means a charge may have been captured while the
// payment could not be verified. It must never be silently retried; the
// identifiers are surfaced for support reconciliation.
type VerificationError struct {
	OrderID   string
	PaymentID string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verificationError: payment %s for order %s could not be verified", e.PaymentID, e.OrderID)
}

// PostPaymentBookingError means the payment was verified but the booking
// could not be persisted. Same reconciliation requirement as verification
// failures.
type PostPaymentBookingError struct {
	OrderID   string
	PaymentID string
	Err       error
}

func (e *PostPaymentBookingError) Error() string {
	return fmt.Sprintf("postPaymentBookingError: order %s payment %s: %v", e.OrderID, e.PaymentID, e.Err)
}

func (e *PostPaymentBookingError) Unwrap() error { return e.Err }

// CapacityConflictError means the slot filled between selection and
// confirmation. Distinguished from generic booking failure so the UI can
// prompt re-selection.
type CapacityConflictError struct {
	ShopID    string
	Date      string
	StartTime string
}

func (e *CapacityConflictError) Error() string {
	return fmt.Sprintf("capacityConflict: slot %s on %s at shop %s is no longer available", e.StartTime, e.Date, e.ShopID)
}
