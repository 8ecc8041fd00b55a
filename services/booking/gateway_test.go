package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sparklewash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutGatewayCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		keyID, secret, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", keyID)
		assert.Equal(t, "secret_test", secret)

		var req checkoutOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(5000), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "shop1", req.Notes["shopId"])

		json.NewEncoder(w).Encode(checkoutOrderResponse{
			ID:       "order_abc",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	g := NewCheckoutGateway(srv.URL, "key_test", "secret_test")
	order, err := g.CreateOrder(context.Background(), 5000, "INR", "rcpt1", map[string]string{"shopId": "shop1"})
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, int64(5000), order.AmountMinorUnits)
	assert.Equal(t, "rcpt1", order.Receipt)
}

func TestCheckoutGatewayCreateOrderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewCheckoutGateway(srv.URL, "key_test", "secret_test")
	_, err := g.CreateOrder(context.Background(), 5000, "INR", "rcpt1", nil)

	var transient *TransientNetworkError
	assert.ErrorAs(t, err, &transient)
}

func TestCheckoutGatewayVerifyPayment(t *testing.T) {
	g := NewCheckoutGateway("http://unused", "key_test", "secret_test")
	ctx := context.Background()

	sig := g.SignPayment("order_abc", "pay_123")
	ok, err := g.VerifyPayment(ctx, models.VerifiedPayment{
		OrderID: "order_abc", PaymentID: "pay_123", Signature: sig,
	})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckoutGatewayVerifyPaymentRejectsTampering(t *testing.T) {
	g := NewCheckoutGateway("http://unused", "key_test", "secret_test")
	ctx := context.Background()
	sig := g.SignPayment("order_abc", "pay_123")

	cases := []models.VerifiedPayment{
		{OrderID: "order_other", PaymentID: "pay_123", Signature: sig},
		{OrderID: "order_abc", PaymentID: "pay_456", Signature: sig},
		{OrderID: "order_abc", PaymentID: "pay_123", Signature: "deadbeef"},
		{OrderID: "order_abc", PaymentID: "pay_123", Signature: "not-hex"},
	}
	for _, payment := range cases {
		ok, err := g.VerifyPayment(ctx, payment)
		require.NoError(t, err)
		assert.False(t, ok, payment.Signature)
	}
}

func TestCheckoutGatewayVerifyPaymentKeyedBySecret(t *testing.T) {
	a := NewCheckoutGateway("http://unused", "key_test", "secret_a")
	b := NewCheckoutGateway("http://unused", "key_test", "secret_b")

	sig := a.SignPayment("order_abc", "pay_123")
	ok, err := b.VerifyPayment(context.Background(), models.VerifiedPayment{
		OrderID: "order_abc", PaymentID: "pay_123", Signature: sig,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}
