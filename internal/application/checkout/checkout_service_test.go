package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domaincart "github.com/healclinics/storefront/internal/domain/cart"
	"github.com/healclinics/storefront/internal/domain/shared"
	"github.com/healclinics/storefront/internal/infrastructure/backend"
	"github.com/healclinics/storefront/internal/infrastructure/payment"
)

type mockCartAccess struct {
	mock.Mock
}

func (m *mockCartAccess) Snapshot(ctx context.Context, sessionID string) (*domaincart.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincart.Cart), args.Error(1)
}

func (m *mockCartAccess) ClearAfterOrder(ctx context.Context, sessionID string) {
	m.Called(ctx, sessionID)
}

type mockOrderBackend struct {
	mock.Mock
}

func (m *mockOrderBackend) PlaceOrder(ctx context.Context, token string, order backend.OrderRequest) (*backend.OrderConfirmation, error) {
	args := m.Called(ctx, token, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.OrderConfirmation), args.Error(1)
}

func filledCart() *domaincart.Cart {
	price := decimal.RequireFromString("4.95")
	c := domaincart.New()
	c.AddItem(domaincart.Product{ID: 12, Name: "Groene thee", Price: &price, Stock: 20}, 2)
	return c
}

func validRequest() StartRequest {
	return StartRequest{
		Email:       "jan@example.nl",
		Street:      "Dorpsstraat",
		HouseNumber: "12",
		PostalCode:  "1234 AB",
		City:        "Amsterdam",
	}
}

func TestStartPlacesOrderAndOpensPayment(t *testing.T) {
	carts := new(mockCartAccess)
	carts.On("Snapshot", mock.Anything, "sess-1").Return(filledCart(), nil)

	orders := new(mockOrderBackend)
	orders.On("PlaceOrder", mock.Anything, "", mock.MatchedBy(func(order backend.OrderRequest) bool {
		return order.Total == "9.90" && len(order.Lines) == 1 && order.Lines[0].ProductID == 12
	})).Return(&backend.OrderConfirmation{OrderID: "ord-42", Status: "pending"}, nil)

	gateway := payment.NewSimulatedGateway("https://pay.example.nl", time.Minute)
	service := NewService(carts, orders, gateway, "https://shop.example.nl/bedankt", nil, zap.NewNop())

	resp, err := service.Start(context.Background(), "sess-1", "", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "ord-42", resp.OrderID)
	assert.Equal(t, "9.90", resp.Total)
	assert.Equal(t, "open", resp.Status)
	assert.NotEmpty(t, resp.CheckoutURL)
	orders.AssertExpectations(t)
}

func TestStartRejectsEmptyCart(t *testing.T) {
	carts := new(mockCartAccess)
	carts.On("Snapshot", mock.Anything, "sess-1").Return(domaincart.New(), nil)

	gateway := payment.NewSimulatedGateway("https://pay.example.nl", 0)
	service := NewService(carts, new(mockOrderBackend), gateway, "", nil, zap.NewNop())

	_, err := service.Start(context.Background(), "sess-1", "", validRequest())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
}

func TestStartMapsUnauthorized(t *testing.T) {
	carts := new(mockCartAccess)
	carts.On("Snapshot", mock.Anything, "sess-1").Return(filledCart(), nil)

	orders := new(mockOrderBackend)
	orders.On("PlaceOrder", mock.Anything, "tok-oud", mock.Anything).Return(nil, backend.ErrUnauthorized)

	gateway := payment.NewSimulatedGateway("https://pay.example.nl", 0)
	service := NewService(carts, orders, gateway, "", nil, zap.NewNop())

	_, err := service.Start(context.Background(), "sess-1", "tok-oud", validRequest())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestStatusClearsCartOnceWhenPaid(t *testing.T) {
	carts := new(mockCartAccess)
	carts.On("Snapshot", mock.Anything, "sess-1").Return(filledCart(), nil)
	carts.On("ClearAfterOrder", mock.Anything, "sess-1").Return()

	orders := new(mockOrderBackend)
	orders.On("PlaceOrder", mock.Anything, "", mock.Anything).Return(&backend.OrderConfirmation{OrderID: "ord-42"}, nil)

	gateway := payment.NewSimulatedGateway("https://pay.example.nl", 0)
	service := NewService(carts, orders, gateway, "", nil, zap.NewNop())

	started, err := service.Start(context.Background(), "sess-1", "", validRequest())
	require.NoError(t, err)

	status, err := service.Status(context.Background(), "sess-1", started.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "paid", status.Status)
	assert.Equal(t, "ord-42", status.OrderID)

	_, err = service.Status(context.Background(), "sess-1", started.PaymentID)
	require.NoError(t, err)
	carts.AssertNumberOfCalls(t, "ClearAfterOrder", 1)
}

func TestStatusUnknownPayment(t *testing.T) {
	gateway := payment.NewSimulatedGateway("https://pay.example.nl", 0)
	service := NewService(new(mockCartAccess), new(mockOrderBackend), gateway, "", nil, zap.NewNop())

	_, err := service.Status(context.Background(), "sess-1", "tr_onbekend")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
