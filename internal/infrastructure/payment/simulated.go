package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healclinics/storefront/internal/domain/checkout"
)

// SimulatedGateway is an in-process payment gateway for development and
// testing. Payments start in the open state and settle as paid once the
// configured delay has elapsed.
type SimulatedGateway struct {
	settleDelay time.Duration
	checkoutURL string
	now         func() time.Time

	mu       sync.RWMutex
	payments map[string]*checkout.Payment
}

// NewSimulatedGateway creates a simulated gateway. checkoutURL is the page a
// customer would be sent to for a real provider; the payment ID is appended
// to it.
func NewSimulatedGateway(checkoutURL string, settleDelay time.Duration) *SimulatedGateway {
	if settleDelay < 0 {
		settleDelay = 0
	}
	return &SimulatedGateway{
		settleDelay: settleDelay,
		checkoutURL: strings.TrimRight(checkoutURL, "/"),
		now:         time.Now,
		payments:    make(map[string]*checkout.Payment),
	}
}

var _ checkout.Gateway = (*SimulatedGateway)(nil)

// CreatePayment opens a new payment in the open state.
func (g *SimulatedGateway) CreatePayment(_ context.Context, req checkout.CreatePaymentRequest) (*checkout.Payment, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("payment: negative amount %s", req.Amount.String())
	}

	id := "tr_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	payment := &checkout.Payment{
		ID:          id,
		Amount:      req.Amount,
		Description: req.Description,
		OrderID:     req.OrderID,
		Status:      checkout.PaymentStatusOpen,
		CheckoutURL: g.checkoutURL + "/" + id,
		RedirectURL: req.RedirectURL,
		CreatedAt:   g.now(),
	}

	g.mu.Lock()
	g.payments[id] = payment
	g.mu.Unlock()

	copied := *payment
	return &copied, nil
}

// GetPayment returns the current state of a payment, settling it as paid
// when the delay has elapsed.
func (g *SimulatedGateway) GetPayment(_ context.Context, id string) (*checkout.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	payment, ok := g.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", checkout.ErrPaymentNotFound, id)
	}

	if payment.Status == checkout.PaymentStatusOpen && g.now().Sub(payment.CreatedAt) >= g.settleDelay {
		payment.Status = checkout.PaymentStatusPaid
		payment.PaidAt = g.now()
	}

	copied := *payment
	return &copied, nil
}
