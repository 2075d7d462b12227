package checkout

// StartRequest is the payload to begin checkout. The shipping address is the
// result of the address form, auto-filled or hand-entered.
type StartRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Street      string `json:"street" binding:"required"`
	HouseNumber string `json:"house_number" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required,nl_postcode"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country"`
}

// StartResponse is returned when an order has been placed and its payment
// opened.
type StartResponse struct {
	OrderID     string `json:"order_id"`
	PaymentID   string `json:"payment_id"`
	CheckoutURL string `json:"checkout_url"`
	Total       string `json:"total"`
	Status      string `json:"status"`
}

// StatusResponse reports a payment's current state.
type StatusResponse struct {
	PaymentID   string `json:"payment_id"`
	OrderID     string `json:"order_id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url,omitempty"`
}
