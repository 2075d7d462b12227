package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/healclinics/storefront/internal/domain/cart"
	"github.com/healclinics/storefront/internal/domain/shared"
	"github.com/healclinics/storefront/internal/infrastructure/backend"
)

// Backend is the slice of the shop API the catalog needs.
type Backend interface {
	ListProducts(ctx context.Context, category, search string) ([]backend.ProductPayload, error)
	GetProduct(ctx context.Context, id int64) (*backend.ProductPayload, error)
}

// ProductView represents a product in API responses. Price is the resolved
// unit price; DisplayPrice is the backend's preformatted label when one
// exists.
type ProductView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	DisplayPrice string `json:"display_price,omitempty"`
	Stock        int    `json:"stock"`
	ImageURL     string `json:"image_url,omitempty"`
	Category     string `json:"category,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Service exposes the product catalog to the storefront.
type Service struct {
	backend Backend
}

// NewService creates a catalog service.
func NewService(b Backend) *Service {
	return &Service{backend: b}
}

// List returns the catalog, optionally filtered by category and search term.
func (s *Service) List(ctx context.Context, category, search string) ([]ProductView, error) {
	payloads, err := s.backend.ListProducts(ctx, category, search)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	views := make([]ProductView, 0, len(payloads))
	for _, payload := range payloads {
		views = append(views, toView(payload))
	}
	return views, nil
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id int64) (*ProductView, error) {
	payload, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	view := toView(*payload)
	return &view, nil
}

// Product resolves a product for cart mutations.
func (s *Service) Product(ctx context.Context, id int64) (*cart.Product, error) {
	payload, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	product := payload.ToCartProduct()
	return &product, nil
}

func toView(payload backend.ProductPayload) ProductView {
	product := payload.ToCartProduct()
	price, _ := product.ResolvePrice()
	return ProductView{
		ID:           payload.ID,
		Name:         payload.Name,
		Price:        price.StringFixed(2),
		DisplayPrice: payload.DisplayPrice,
		Stock:        payload.Stock,
		ImageURL:     payload.ImageURL,
		Category:     payload.Category,
		Description:  payload.Description,
	}
}
