package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"sparklewash/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client, 30*time.Minute)
}

type fakeScheduleRepo struct {
	schedule *models.Schedule
	err      error
	onGet    func() // runs before returning, to simulate concurrent edits
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, _ *models.Schedule) error { return nil }

func (f *fakeScheduleRepo) GetByShopIDAndDate(_ context.Context, _, _ string) (*models.Schedule, error) {
	if f.onGet != nil {
		f.onGet()
	}
	return f.schedule, f.err
}

func (f *fakeScheduleRepo) DeleteRange(_ context.Context, _, _, _ string) error { return nil }

type fakeBookingRepo struct {
	created     []*models.Booking
	createErr   error
	failCreates int // fail this many Create calls before succeeding
	slotCounts  map[string]int64
	countErr    error
	byOrderID   map[string]*models.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	if f.failCreates > 0 {
		f.failCreates--
		return errors.New("persistence unavailable")
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ string) (*models.Booking, error) {
	return nil, errors.New("not found")
}

func (f *fakeBookingRepo) GetByOrderID(_ context.Context, orderID string) (*models.Booking, error) {
	return f.byOrderID[orderID], nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) CountActiveForSlot(_ context.Context, _, _, startTime string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.slotCounts[startTime], nil
}

func (f *fakeBookingRepo) CountActiveByShopAndDate(_ context.Context, _, _ string) (map[string]int64, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.slotCounts, nil
}

type fakeGateway struct {
	orders      []string // receipts passed to CreateOrder
	orderErr    error
	nextOrderID string
	verified    bool
	verifyErr   error
	verifyCalls int
}

func (f *fakeGateway) CreateOrder(_ context.Context, amountMinorUnits int64, currency, receipt string, _ map[string]string) (*models.PaymentOrder, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	f.orders = append(f.orders, receipt)
	id := f.nextOrderID
	if id == "" {
		id = "order_test"
	}
	return &models.PaymentOrder{
		OrderID:          id,
		AmountMinorUnits: amountMinorUnits,
		Currency:         currency,
		Receipt:          receipt,
	}, nil
}

func (f *fakeGateway) VerifyPayment(_ context.Context, _ models.VerifiedPayment) (bool, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return false, f.verifyErr
	}
	return f.verified, nil
}

type fakeReconciler struct {
	payloads []models.ReconcilePayload
}

func (f *fakeReconciler) Enqueue(_ context.Context, payload models.ReconcilePayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func intPtr(v int) *int { return &v }
