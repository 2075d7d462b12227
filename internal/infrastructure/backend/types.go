package backend

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/healclinics/storefront/internal/domain/cart"
)

// ProductPayload is the product shape returned by the backend API. The price
// arrives as either a JSON number or a (possibly comma-decimal) string
// depending on which backend endpoint produced it, so it stays raw until
// mapping.
type ProductPayload struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name_nl"`
	Price        json.RawMessage `json:"price,omitempty"`
	DisplayPrice string          `json:"display_price,omitempty"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url,omitempty"`
	Category     string          `json:"category,omitempty"`
	Description  string          `json:"description_nl,omitempty"`
}

// ToCartProduct maps the payload onto the cart's product shape, preserving
// the raw price variants so the cart's fallback chain can resolve them.
func (p ProductPayload) ToCartProduct() cart.Product {
	out := cart.Product{
		ID:           p.ID,
		Name:         p.Name,
		DisplayPrice: p.DisplayPrice,
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
		Category:     p.Category,
	}

	if len(p.Price) > 0 {
		var asNumber float64
		if err := json.Unmarshal(p.Price, &asNumber); err == nil {
			d := decimal.NewFromFloat(asNumber)
			out.Price = &d
			return out
		}
		var asString string
		if err := json.Unmarshal(p.Price, &asString); err == nil {
			out.PriceText = asString
		}
	}
	return out
}

// Credentials is the result of a successful login or registration.
type Credentials struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// UserPayload is the backend's account shape.
type UserPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AddressEntry is one saved address-book entry.
type AddressEntry struct {
	ID          int64  `json:"id,omitempty"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	Country     string `json:"country,omitempty"`
	IsDefault   bool   `json:"is_default,omitempty"`
}

// OrderLine is one line of an order placement request.
type OrderLine struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderRequest is the order placement payload sent to the backend.
type OrderRequest struct {
	Lines           []OrderLine  `json:"lines"`
	Total           string       `json:"total"`
	ShippingAddress AddressEntry `json:"shipping_address"`
	Email           string       `json:"email"`
	PaymentID       string       `json:"payment_id"`
}

// OrderConfirmation is the backend's response to a placed order.
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
