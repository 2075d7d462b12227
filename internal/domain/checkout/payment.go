package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusOpen    PaymentStatus = "open"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"
)

// ErrPaymentNotFound indicates the payment ID is unknown to the gateway.
var ErrPaymentNotFound = errors.New("checkout: payment not found")

// CreatePaymentRequest describes a payment to open with the gateway.
type CreatePaymentRequest struct {
	Amount      decimal.Decimal
	Description string
	RedirectURL string
	OrderID     string
}

// Payment is a payment as tracked by the gateway.
type Payment struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	OrderID     string
	Status      PaymentStatus
	CheckoutURL string
	RedirectURL string
	CreatedAt   time.Time
	PaidAt      time.Time
}

// IsSettled reports whether the payment reached a terminal state.
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusFailed || p.Status == PaymentStatusExpired
}

// Gateway is the port to a payment provider.
type Gateway interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
}
