package booking

import (
	"context"
	"strings"

	"sparklewash/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway implements PaymentGateway over Stripe PaymentIntents.
// The intent ID plays the order role; verification asks Stripe for the
// intent's status instead of checking a local signature. The API key is
// set globally at startup.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) CreateOrder(_ context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (*models.PaymentOrder, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.AddMetadata("receipt", receipt)
	for k, v := range notes {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, &TransientNetworkError{Op: "create payment intent", Err: err}
	}

	return &models.PaymentOrder{
		OrderID:          intent.ID,
		AmountMinorUnits: amountMinorUnits,
		Currency:         currency,
		Receipt:          receipt,
	}, nil
}

func (g *StripeGateway) VerifyPayment(_ context.Context, payment models.VerifiedPayment) (bool, error) {
	intent, err := paymentintent.Get(payment.OrderID, nil)
	if err != nil {
		return false, &TransientNetworkError{Op: "fetch payment intent", Err: err}
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return false, nil
	}
	if payment.PaymentID != "" && intent.LatestCharge != nil && intent.LatestCharge.ID != payment.PaymentID {
		return false, nil
	}
	return true, nil
}
