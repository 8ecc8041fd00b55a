package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	bookingRepo "sparklewash/database/repository/booking"
	scheduleRepo "sparklewash/database/repository/schedule"
	"sparklewash/models"
	"sparklewash/utils"

	"go.uber.org/zap"
)

// Orchestrator states. The flow is a single logical sequence that
// suspends at each network boundary; the current phase lives on the
// cached draft.
const (
	StateIdle               = "idle"
	StateReviewing          = "reviewing"
	StateCreatingOrder      = "creatingOrder"
	StateAwaitingGateway    = "awaitingGatewayResult"
	StateVerifyingPayment   = "verifyingPayment"
	StateCreatingBooking    = "creatingBooking"
	StateConfirmed          = "confirmed"
	StateOrderFailed        = "orderFailed"
	StatePaymentDismissed   = "paymentDismissed"
	StateVerificationFailed = "verificationFailed"
	StateBookingFailed      = "bookingFailed"
)

// ReconcileEnqueuer hands a captured-but-unbooked charge to the durable
// reconciliation queue.
type ReconcileEnqueuer interface {
	Enqueue(ctx context.Context, payload models.ReconcilePayload) error
}

// Orchestrator drives order creation, payment verification, and booking
// persistence for one draft session at a time.
type Orchestrator struct {
	Sessions      *SessionStore
	Gateway       PaymentGateway
	Bookings      bookingRepo.BookingRepository
	Schedules     scheduleRepo.ScheduleRepository
	Reconciler    ReconcileEnqueuer
	DepositAmount int64 // whole currency units
	Currency      string
	CallTimeout   time.Duration // bound on verification and booking calls
}

// retryableStates may re-enter the review step: nothing externally
// visible has happened yet (or the user dismissed the widget unpaid).
func retryable(state string) bool {
	switch state {
	case StateIdle, StateReviewing, StateOrderFailed, StatePaymentDismissed:
		return true
	}
	return false
}

// Review moves the draft into the confirmation view. Requires a bookable
// draft; has no side effects.
func (o *Orchestrator) Review(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	draft, err := o.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !retryable(draft.State) {
		return nil, NewValidationError(fmt.Sprintf("cannot review from state %s", draft.State))
	}
	if !IsBookable(draft) {
		return nil, NewValidationError("draft incomplete: services, date and time are required")
	}
	draft.State = StateReviewing
	if err := o.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// CreateOrder confirms the review with a payment option and opens a
// gateway order carrying the draft snapshot as metadata. Retries from a
// failed or dismissed attempt reuse the same receipt token, so the
// gateway order is not duplicated.
func (o *Orchestrator) CreateOrder(ctx context.Context, sessionID, paymentOption string) (*models.PaymentOrder, error) {
	logger := utils.GetLogger()

	draft, err := o.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !retryable(draft.State) {
		return nil, NewValidationError(fmt.Sprintf("cannot create order from state %s", draft.State))
	}
	if !IsBookable(draft) {
		return nil, NewValidationError("draft incomplete: services, date and time are required")
	}
	if paymentOption != models.PaymentDeposit && paymentOption != models.PaymentFull {
		return nil, NewValidationError(fmt.Sprintf("unknown payment option %q", paymentOption))
	}

	totals := ComputeTotals(draft)

	// Validate the chosen time before any state is persisted: a draft
	// that cannot yield a well-formed appointment window stays in its
	// current retryable state.
	endTime, err := draftEndTime(draft, totals.TotalDurationMinutes)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	var charged int64
	if paymentOption == models.PaymentDeposit {
		charged = o.DepositAmount
	} else {
		charged = totals.TotalPrice
	}
	remaining := totals.TotalPrice - charged
	if remaining < 0 {
		remaining = 0
	}

	draft.PaymentOption = paymentOption
	receipt := receiptToken(draft)
	sameAttempt := draft.OrderID != "" && draft.Receipt == receipt

	draft.AmountCharged = charged
	draft.RemainingAmount = remaining
	draft.Receipt = receipt

	// A retry with an unchanged draft reuses the existing gateway order
	// instead of opening a second one for the same charge.
	if sameAttempt {
		draft.State = StateAwaitingGateway
		if err := o.Sessions.Save(ctx, draft); err != nil {
			return nil, err
		}
		logger.Info("reusing existing gateway order",
			zap.String("sessionId", sessionID), zap.String("orderId", draft.OrderID))
		return &models.PaymentOrder{
			OrderID:          draft.OrderID,
			AmountMinorUnits: charged * 100,
			Currency:         o.Currency,
			Receipt:          receipt,
		}, nil
	}

	draft.State = StateCreatingOrder
	if err := o.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}

	notes := map[string]string{
		"sessionId":       draft.SessionID,
		"shopId":          draft.ShopID,
		"serviceIds":      strings.Join(draftServiceIDs(draft), ","),
		"vehicle":         draft.VehicleCategory,
		"date":            draft.Date,
		"startTime":       draft.Time,
		"endTime":         endTime,
		"fulfillmentMode": draft.FulfillmentMode,
		"paymentOption":   paymentOption,
		"remainingAmount": fmt.Sprintf("%d", remaining),
	}

	order, err := o.Gateway.CreateOrder(ctx, charged*100, o.Currency, receipt, notes)
	if err != nil {
		draft.State = StateOrderFailed
		if saveErr := o.Sessions.Save(ctx, draft); saveErr != nil {
			logger.Error("failed to record order failure", zap.Error(saveErr))
		}
		return nil, err
	}

	draft.OrderID = order.OrderID
	draft.State = StateAwaitingGateway
	if err := o.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}

	logger.Info("gateway order created",
		zap.String("sessionId", sessionID),
		zap.String("orderId", order.OrderID),
		zap.Int64("amountMinorUnits", order.AmountMinorUnits))
	return order, nil
}

// HandleGatewayResult consumes the widget's one-shot callback. A
// dismissal preserves the draft for retry; a reported success is
// verified and, if genuine, persisted as a booking. Duplicate callbacks
// are rejected by the state guard. From verification onward the flow
// runs to a terminal state: a charge is in flight.
func (o *Orchestrator) HandleGatewayResult(ctx context.Context, sessionID string, result models.GatewayResult) (*models.Booking, error) {
	logger := utils.GetLogger()

	draft, err := o.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.State != StateAwaitingGateway {
		return nil, NewValidationError(fmt.Sprintf("no payment awaited in state %s", draft.State))
	}

	if result.Dismissed {
		draft.State = StatePaymentDismissed
		if err := o.Sessions.Save(ctx, draft); err != nil {
			return nil, err
		}
		return nil, ErrPaymentDismissed
	}

	if result.OrderID != draft.OrderID {
		return nil, NewValidationError("gateway result does not match the awaited order")
	}

	draft.State = StateVerifyingPayment
	draft.PaymentID = result.PaymentID
	if err := o.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}

	verified := o.verifyWithRetry(ctx, models.VerifiedPayment{
		OrderID:   result.OrderID,
		PaymentID: result.PaymentID,
		Signature: result.Signature,
	})
	if !verified {
		draft.State = StateVerificationFailed
		if err := o.Sessions.Save(ctx, draft); err != nil {
			logger.Error("failed to record verification failure", zap.Error(err))
		}
		o.enqueueReconcile(ctx, draft, "verification_failed")
		logger.Error("payment verification failed",
			zap.String("orderId", result.OrderID), zap.String("paymentId", result.PaymentID))
		return nil, &VerificationError{OrderID: result.OrderID, PaymentID: result.PaymentID}
	}

	draft.State = StateCreatingBooking
	if err := o.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}

	booking, err := o.createBooking(ctx, draft)
	if err != nil {
		draft.State = StateBookingFailed
		if saveErr := o.Sessions.Save(ctx, draft); saveErr != nil {
			logger.Error("failed to record booking failure", zap.Error(saveErr))
		}
		o.enqueueReconcile(ctx, draft, "booking_failed")
		return nil, err
	}

	draft.State = StateConfirmed
	if err := o.Sessions.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to clear confirmed session", zap.String("sessionId", sessionID), zap.Error(err))
	}

	logger.Info("booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("orderId", booking.OrderID),
		zap.String("paymentId", booking.PaymentID))
	return booking, nil
}

// Cancel abandons the flow. Allowed only before a charge may be in
// flight; from verification onward the flow must reach a terminal state.
func (o *Orchestrator) Cancel(ctx context.Context, sessionID string) error {
	draft, err := o.Sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	switch draft.State {
	case StateVerifyingPayment, StateCreatingBooking:
		return NewValidationError("a charge is in flight; the flow must complete")
	}
	return o.Sessions.Delete(ctx, sessionID)
}

// verifyWithRetry checks the payment with a bounded timeout and a single
// retry. It never retries the charge itself.
func (o *Orchestrator) verifyWithRetry(ctx context.Context, payment models.VerifiedPayment) bool {
	logger := utils.GetLogger()
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, o.callTimeout())
		verified, err := o.Gateway.VerifyPayment(callCtx, payment)
		cancel()
		if err == nil {
			return verified
		}
		logger.Warn("payment verification attempt failed",
			zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return false
}

// createBooking performs the authoritative capacity check and persists
// the booking, with a single retry on transient persistence errors.
func (o *Orchestrator) createBooking(ctx context.Context, draft *models.BookingDraft) (*models.Booking, error) {
	capacity, err := o.slotCapacity(ctx, draft.ShopID, draft.Date, draft.Time)
	if err == nil {
		count, countErr := o.Bookings.CountActiveForSlot(ctx, draft.ShopID, draft.Date, draft.Time)
		if countErr == nil && count >= int64(capacity) {
			return nil, &CapacityConflictError{ShopID: draft.ShopID, Date: draft.Date, StartTime: draft.Time}
		}
	}

	totals := ComputeTotals(draft)
	endTime, err := draftEndTime(draft, totals.TotalDurationMinutes)
	if err != nil {
		return nil, &PostPaymentBookingError{OrderID: draft.OrderID, PaymentID: draft.PaymentID, Err: err}
	}

	payStatus := models.PayStatusPaid
	if draft.RemainingAmount > 0 {
		payStatus = models.PayStatusPartial
	}

	booking := &models.Booking{
		UserID:          draft.UserID,
		ShopID:          draft.ShopID,
		OrderID:         draft.OrderID,
		PaymentID:       draft.PaymentID,
		ServiceIDs:      draftServiceIDs(draft),
		Date:            draft.Date,
		StartTime:       draft.Time,
		EndTime:         endTime,
		FulfillmentMode: draft.FulfillmentMode,
		AmountPaid:      draft.AmountCharged,
		RemainingAmount: draft.RemainingAmount,
		PaymentStatus:   payStatus,
		BookingStatus:   models.BookingConfirmed,
	}

	var createErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, o.callTimeout())
		createErr = o.Bookings.Create(callCtx, booking)
		cancel()
		if createErr == nil {
			return booking, nil
		}
	}
	return nil, &PostPaymentBookingError{OrderID: draft.OrderID, PaymentID: draft.PaymentID, Err: createErr}
}

// slotCapacity finds the capacity of the free range containing the slot.
func (o *Orchestrator) slotCapacity(ctx context.Context, shopID, date, startTime string) (int, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	schedule, err := o.Schedules.GetByShopIDAndDate(ctx, shopID, date)
	if err != nil {
		return 0, err
	}
	if schedule == nil {
		return utils.DefaultSlotCapacity, nil
	}
	for _, fr := range schedule.FreeRanges {
		if !fr.Active {
			continue
		}
		from, fromErr := ParseClock(fr.From)
		to, toErr := ParseClock(fr.To)
		if fromErr != nil || toErr != nil {
			continue
		}
		if start >= from && start < to {
			if fr.Capacity != nil {
				return *fr.Capacity, nil
			}
			return utils.DefaultSlotCapacity, nil
		}
	}
	return utils.DefaultSlotCapacity, nil
}

func (o *Orchestrator) enqueueReconcile(ctx context.Context, draft *models.BookingDraft, reason string) {
	if o.Reconciler == nil {
		return
	}
	totals := ComputeTotals(draft)
	endTime, _ := draftEndTime(draft, totals.TotalDurationMinutes)
	payload := models.ReconcilePayload{
		SessionID:       draft.SessionID,
		UserID:          draft.UserID,
		ShopID:          draft.ShopID,
		OrderID:         draft.OrderID,
		PaymentID:       draft.PaymentID,
		ServiceIDs:      draftServiceIDs(draft),
		Date:            draft.Date,
		StartTime:       draft.Time,
		EndTime:         endTime,
		FulfillmentMode: draft.FulfillmentMode,
		AmountCharged:   draft.AmountCharged,
		RemainingAmount: draft.RemainingAmount,
		Reason:          reason,
	}
	if err := o.Reconciler.Enqueue(ctx, payload); err != nil {
		utils.GetLogger().Error("failed to enqueue reconciliation task",
			zap.String("orderId", draft.OrderID), zap.Error(err))
	}
}

func (o *Orchestrator) callTimeout() time.Duration {
	if o.CallTimeout <= 0 {
		return 10 * time.Second
	}
	return o.CallTimeout
}

// receiptToken derives a stable idempotency token from the draft
// snapshot, so retries of the same confirmation reuse one gateway order.
func receiptToken(d *models.BookingDraft) string {
	ids := draftServiceIDs(d)
	sort.Strings(ids)
	sum := sha256.Sum256([]byte(strings.Join([]string{
		d.SessionID, d.ShopID, d.Date, d.Time, d.PaymentOption, strings.Join(ids, ","),
	}, "|")))
	return hex.EncodeToString(sum[:16])
}

func draftServiceIDs(d *models.BookingDraft) []string {
	ids := make([]string, 0, len(d.Services))
	for _, svc := range d.Services {
		ids = append(ids, svc.ID)
	}
	return ids
}

// draftEndTime computes the appointment end from the chosen start and
// the summed service durations. The appointment must finish within the
// same day; 24:00 is accepted as an end-of-day marker.
func draftEndTime(d *models.BookingDraft, durationMinutes int) (string, error) {
	start, err := ParseClock(d.Time)
	if err != nil {
		return "", fmt.Errorf("invalid start time %q: %w", d.Time, err)
	}
	end := start.Add(durationMinutes)
	if end > EndOfDay {
		return "", fmt.Errorf("appointment starting at %s runs past midnight", d.Time)
	}
	return end.String(), nil
}
