package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domaincart "github.com/healclinics/storefront/internal/domain/cart"
	"github.com/healclinics/storefront/internal/domain/checkout"
	"github.com/healclinics/storefront/internal/domain/shared"
	"github.com/healclinics/storefront/internal/infrastructure/backend"
	"github.com/healclinics/storefront/internal/infrastructure/telemetry"
)

// CartAccess is the slice of the cart service checkout needs.
type CartAccess interface {
	Snapshot(ctx context.Context, sessionID string) (*domaincart.Cart, error)
	ClearAfterOrder(ctx context.Context, sessionID string)
}

// OrderBackend places orders with the shop API.
type OrderBackend interface {
	PlaceOrder(ctx context.Context, token string, order backend.OrderRequest) (*backend.OrderConfirmation, error)
}

// Service drives checkout: it turns the session's cart into an order, opens
// a payment for it, and clears the cart once the payment settles.
type Service struct {
	carts   CartAccess
	orders  OrderBackend
	gateway checkout.Gateway
	metrics *telemetry.StoreMetrics
	logger  *zap.Logger

	redirectURL string

	// settled remembers payments whose completion was already handled, so
	// polling a paid payment clears the cart and counts the order only once.
	settled sync.Map
}

// NewService creates a checkout service. redirectURL is where the customer
// lands after paying.
func NewService(carts CartAccess, orders OrderBackend, gateway checkout.Gateway, redirectURL string, metrics *telemetry.StoreMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:       carts,
		orders:      orders,
		gateway:     gateway,
		metrics:     metrics,
		logger:      logger,
		redirectURL: redirectURL,
	}
}

// Start places an order for the session's cart and opens a payment for it.
func (s *Service) Start(ctx context.Context, sessionID, authToken string, req StartRequest) (*StartResponse, error) {
	current, err := s.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Len() == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Je winkelwagen is leeg")
	}

	total := current.TotalPrice()
	lines := make([]backend.OrderLine, 0, current.Len())
	for _, item := range current.Items() {
		lines = append(lines, backend.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}

	confirmation, err := s.orders.PlaceOrder(ctx, authToken, backend.OrderRequest{
		Lines: lines,
		Total: total.StringFixed(2),
		ShippingAddress: backend.AddressEntry{
			Street:      req.Street,
			HouseNumber: req.HouseNumber,
			PostalCode:  req.PostalCode,
			City:        req.City,
			Country:     req.Country,
		},
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, shared.ErrUnauthorized
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	payment, err := s.gateway.CreatePayment(ctx, checkout.CreatePaymentRequest{
		Amount:      total,
		Description: "Bestelling " + confirmation.OrderID,
		RedirectURL: s.redirectURL,
		OrderID:     confirmation.OrderID,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.logger.Info("checkout started",
		zap.String("order_id", confirmation.OrderID),
		zap.String("payment_id", payment.ID),
		zap.String("total", total.StringFixed(2)),
	)

	return &StartResponse{
		OrderID:     confirmation.OrderID,
		PaymentID:   payment.ID,
		CheckoutURL: payment.CheckoutURL,
		Total:       total.StringFixed(2),
		Status:      string(payment.Status),
	}, nil
}

// Status reports a payment's state. When the payment has settled as paid the
// session's cart is cleared.
func (s *Service) Status(ctx context.Context, sessionID, paymentID string) (*StatusResponse, error) {
	payment, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, checkout.ErrPaymentNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	if payment.Status == checkout.PaymentStatusPaid {
		if _, seen := s.settled.LoadOrStore(payment.ID, struct{}{}); !seen {
			s.metrics.RecordOrderPlaced(ctx)
			s.carts.ClearAfterOrder(ctx, sessionID)
		}
	}

	return &StatusResponse{
		PaymentID:   payment.ID,
		OrderID:     payment.OrderID,
		Status:      string(payment.Status),
		RedirectURL: payment.RedirectURL,
	}, nil
}
