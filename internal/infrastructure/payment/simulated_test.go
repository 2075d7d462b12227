package payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healclinics/storefront/internal/domain/checkout"
)

func TestCreatePayment(t *testing.T) {
	gateway := NewSimulatedGateway("https://pay.example.nl/checkout", time.Minute)

	payment, err := gateway.CreatePayment(context.Background(), checkout.CreatePaymentRequest{
		Amount:      decimal.RequireFromString("24.90"),
		Description: "Bestelling ord-42",
		OrderID:     "ord-42",
		RedirectURL: "https://shop.example.nl/bedankt",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, checkout.PaymentStatusOpen, payment.Status)
	assert.Equal(t, "https://pay.example.nl/checkout/"+payment.ID, payment.CheckoutURL)
	assert.False(t, payment.IsSettled())
}

func TestCreatePaymentRejectsNegativeAmount(t *testing.T) {
	gateway := NewSimulatedGateway("https://pay.example.nl", 0)

	_, err := gateway.CreatePayment(context.Background(), checkout.CreatePaymentRequest{
		Amount: decimal.RequireFromString("-1"),
	})
	assert.Error(t, err)
}

func TestPaymentSettlesAfterDelay(t *testing.T) {
	gateway := NewSimulatedGateway("https://pay.example.nl", time.Minute)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gateway.now = func() time.Time { return current }

	payment, err := gateway.CreatePayment(context.Background(), checkout.CreatePaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	fetched, err := gateway.GetPayment(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, checkout.PaymentStatusOpen, fetched.Status)

	current = current.Add(2 * time.Minute)
	fetched, err = gateway.GetPayment(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, checkout.PaymentStatusPaid, fetched.Status)
	assert.True(t, fetched.IsSettled())
	assert.Equal(t, current, fetched.PaidAt)
}

func TestGetPaymentUnknownID(t *testing.T) {
	gateway := NewSimulatedGateway("https://pay.example.nl", 0)

	_, err := gateway.GetPayment(context.Background(), "tr_onbekend")
	assert.ErrorIs(t, err, checkout.ErrPaymentNotFound)
}

func TestZeroDelaySettlesImmediately(t *testing.T) {
	gateway := NewSimulatedGateway("https://pay.example.nl", 0)

	payment, err := gateway.CreatePayment(context.Background(), checkout.CreatePaymentRequest{
		Amount: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)

	fetched, err := gateway.GetPayment(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, checkout.PaymentStatusPaid, fetched.Status)
}
