package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/healclinics/storefront/internal/domain/cart"
	"github.com/healclinics/storefront/internal/domain/shared"
	"github.com/healclinics/storefront/internal/infrastructure/telemetry"
)

// ProductSource resolves products for cart mutations.
type ProductSource interface {
	Product(ctx context.Context, id int64) (*cart.Product, error)
}

// Service handles cart operations for a session. Persistence is best-effort:
// a failed save is logged but never fails the request, so the customer keeps
// a working in-memory cart for the current response.
type Service struct {
	store    cart.Repository
	products ProductSource
	metrics  *telemetry.StoreMetrics
	logger   *zap.Logger
}

// NewService creates a cart service.
func NewService(store cart.Repository, products ProductSource, metrics *telemetry.StoreMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		products: products,
		metrics:  metrics,
		logger:   logger,
	}
}

// Get returns the session's cart, or an empty cart when none is stored.
func (s *Service) Get(ctx context.Context, sessionID string) (*Response, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toResponse(current), nil
}

// AddItem adds a product to the cart. Adding a product already in the cart
// merges quantities, capped at the product's stock.
func (s *Service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*Response, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.Product(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product niet gevonden")
		}
		return nil, err
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	source := current.AddItem(*product, quantity)
	if source == cart.PriceSourceDefaulted {
		s.logger.Warn("product price missing, cart line defaulted to zero",
			zap.Int64("product_id", product.ID),
			zap.String("product_name", product.Name),
		)
		s.metrics.RecordPriceDefaulted(ctx, product.ID)
	}
	s.metrics.RecordItemsAdded(ctx, quantity)

	s.persist(ctx, sessionID, current)
	return toResponse(current), nil
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line;
// quantities above the product's stock are clamped.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*Response, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current.UpdateQuantity(productID, quantity)
	s.persist(ctx, sessionID, current)
	return toResponse(current), nil
}

// RemoveItem removes a line from the cart. Removing an absent product is a
// no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64) (*Response, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current.RemoveItem(productID)
	s.persist(ctx, sessionID, current)
	return toResponse(current), nil
}

// Clear empties the cart and closes the cart panel.
func (s *Service) Clear(ctx context.Context, sessionID string) (*Response, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current.Clear()
	s.persist(ctx, sessionID, current)
	return toResponse(current), nil
}

// SetOpen opens or closes the cart panel.
func (s *Service) SetOpen(ctx context.Context, sessionID string, open bool) (*Response, error) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if open {
		current.Open()
	} else {
		current.Close()
	}
	s.persist(ctx, sessionID, current)
	return toResponse(current), nil
}

// Snapshot returns the raw domain cart for other services, such as checkout.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.load(ctx, sessionID)
}

// ClearAfterOrder empties the cart once an order has been placed.
func (s *Service) ClearAfterOrder(ctx context.Context, sessionID string) {
	current, err := s.load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load cart for post-order clear", zap.Error(err))
		return
	}
	current.Clear()
	s.persist(ctx, sessionID, current)
}

func (s *Service) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return cart.New(), nil
		}
		s.logger.Warn("failed to load cart, starting empty",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return cart.New(), nil
	}
	return current, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, current *cart.Cart) {
	if err := s.store.Save(ctx, sessionID, current); err != nil {
		s.logger.Error("failed to save cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}
