package cart

import (
	"github.com/healclinics/storefront/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateQuantityRequest represents a request to change a line's quantity.
// Quantity zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ItemResponse represents one cart line in API responses.
type ItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
	ImageURL  string `json:"image_url,omitempty"`
	Stock     int    `json:"stock"`
	Category  string `json:"category,omitempty"`
}

// Response represents the cart in API responses.
type Response struct {
	Items      []ItemResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice string         `json:"total_price"`
	Open       bool           `json:"open"`
}

func toResponse(c *cart.Cart) *Response {
	items := c.Items()
	out := &Response{
		Items:      make([]ItemResponse, 0, len(items)),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().StringFixed(2),
		Open:       c.IsOpen(),
	}
	for _, item := range items {
		out.Items = append(out.Items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().StringFixed(2),
			ImageURL:  item.ImageURL,
			Stock:     item.Stock,
			Category:  item.Category,
		})
	}
	return out
}
