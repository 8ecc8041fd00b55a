package booking

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sparklewash/models"
)

// PaymentGateway abstracts the external payment provider. CreateOrder
// opens an order the hosted widget can collect against; VerifyPayment
// re-validates the widget's reported success before it is trusted.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, payment models.VerifiedPayment) (bool, error)
}

// CheckoutGateway talks to the hosted-checkout provider. The provider
// signs successful payments with HMAC-SHA256 over "orderId|paymentId"
// using the merchant secret.
type CheckoutGateway struct {
	BaseURL string
	KeyID   string
	Secret  string
	Client  *http.Client
}

func NewCheckoutGateway(baseURL, keyID, secret string) *CheckoutGateway {
	return &CheckoutGateway{
		BaseURL: baseURL,
		KeyID:   keyID,
		Secret:  secret,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type checkoutOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type checkoutOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (g *CheckoutGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (*models.PaymentOrder, error) {
	body, err := json.Marshal(checkoutOrderRequest{
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.KeyID, g.Secret)

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, &TransientNetworkError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransientNetworkError{Op: "create order", Err: fmt.Errorf("gateway returned status %d", resp.StatusCode)}
	}

	var orderResp checkoutOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, &TransientNetworkError{Op: "create order", Err: fmt.Errorf("decoding response failed: %w", err)}
	}

	return &models.PaymentOrder{
		OrderID:          orderResp.ID,
		AmountMinorUnits: amountMinorUnits,
		Currency:         currency,
		Receipt:          receipt,
	}, nil
}

// VerifyPayment checks the gateway signature locally. The signature is
// HMAC-SHA256 of "orderId|paymentId" keyed with the merchant secret.
func (g *CheckoutGateway) VerifyPayment(_ context.Context, payment models.VerifiedPayment) (bool, error) {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	fmt.Fprintf(mac, "%s|%s", payment.OrderID, payment.PaymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	provided, err := hex.DecodeString(payment.Signature)
	if err != nil {
		return false, nil
	}
	expectedRaw, _ := hex.DecodeString(expected)
	return hmac.Equal(provided, expectedRaw), nil
}

// SignPayment produces the signature the gateway would attach to a
// successful payment. Exposed for tests and sandbox tooling.
func (g *CheckoutGateway) SignPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.Secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}
