package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/healclinics/storefront/internal/domain/address"
	"github.com/healclinics/storefront/internal/domain/shared"
	"github.com/healclinics/storefront/internal/infrastructure/backend"
)

// Backend is the slice of the shop API the account service needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.Credentials, error)
	Register(ctx context.Context, name, email, password string) (*backend.Credentials, error)
	GetProfile(ctx context.Context, token string) (*backend.UserPayload, error)
	ListAddresses(ctx context.Context, token string) ([]backend.AddressEntry, error)
	CreateAddress(ctx context.Context, token string, entry backend.AddressEntry) (*backend.AddressEntry, error)
	DeleteAddress(ctx context.Context, token string, id int64) error
}

// Service proxies account operations to the shop API. The storefront never
// stores credentials itself; it passes the backend's bearer token through.
type Service struct {
	backend Backend
}

// NewService creates an account service.
func NewService(b Backend) *Service {
	return &Service{backend: b}
}

// Login authenticates a customer.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	creds, err := s.backend.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "E-mailadres of wachtwoord is onjuist")
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	return toAuthResponse(creds), nil
}

// Register creates a new customer account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	creds, err := s.backend.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return toAuthResponse(creds), nil
}

// Profile fetches the account belonging to a token.
func (s *Service) Profile(ctx context.Context, token string) (*UserResponse, error) {
	user, err := s.backend.GetProfile(ctx, token)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, shared.ErrUnauthorized
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Addresses lists the customer's address book.
func (s *Service) Addresses(ctx context.Context, token string) ([]AddressResponse, error) {
	entries, err := s.backend.ListAddresses(ctx, token)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, shared.ErrUnauthorized
		}
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	out := make([]AddressResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toAddressResponse(entry))
	}
	return out, nil
}

// SaveAddress validates and stores a new address-book entry. An empty
// country defaults to Nederland, matching the address flow.
func (s *Service) SaveAddress(ctx context.Context, token string, req SaveAddressRequest) (*AddressResponse, error) {
	if !address.ValidatePostcode(req.PostalCode) {
		return nil, shared.NewDomainError("INVALID_POSTCODE", "Ongeldige postcode format (gebruik bijv. 1234 AB)")
	}

	country := req.Country
	if country == "" {
		country = address.CountryNetherlands
	}

	entry, err := s.backend.CreateAddress(ctx, token, backend.AddressEntry{
		Street:      req.Street,
		HouseNumber: req.HouseNumber,
		PostalCode:  address.FormatPostcode(address.NormalizePostcode(req.PostalCode)),
		City:        req.City,
		Province:    req.Province,
		Country:     country,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, shared.ErrUnauthorized
		}
		return nil, fmt.Errorf("save address: %w", err)
	}

	resp := toAddressResponse(*entry)
	return &resp, nil
}

// RemoveAddress deletes an address-book entry.
func (s *Service) RemoveAddress(ctx context.Context, token string, id int64) error {
	err := s.backend.DeleteAddress(ctx, token, id)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return shared.ErrUnauthorized
		}
		if errors.Is(err, backend.ErrNotFound) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("remove address: %w", err)
	}
	return nil
}

func toAuthResponse(creds *backend.Credentials) *AuthResponse {
	return &AuthResponse{
		Token: creds.Token,
		User: UserResponse{
			ID:    creds.User.ID,
			Email: creds.User.Email,
			Name:  creds.User.Name,
		},
	}
}

func toAddressResponse(entry backend.AddressEntry) AddressResponse {
	return AddressResponse{
		ID:          entry.ID,
		Street:      entry.Street,
		HouseNumber: entry.HouseNumber,
		PostalCode:  entry.PostalCode,
		City:        entry.City,
		Province:    entry.Province,
		Country:     entry.Country,
		IsDefault:   entry.IsDefault,
	}
}
