package account

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse represents an account in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse carries the backend token and the authenticated account.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SaveAddressRequest is the payload to save an address-book entry.
type SaveAddressRequest struct {
	Street      string `json:"street" binding:"required"`
	HouseNumber string `json:"house_number" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
	City        string `json:"city" binding:"required"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"is_default"`
}

// AddressResponse represents a saved address in API responses.
type AddressResponse struct {
	ID          int64  `json:"id"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"is_default"`
}
