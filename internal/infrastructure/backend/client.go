package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maxResponseSize is the maximum allowed response size from the shop API (5MB)
const maxResponseSize = 5 * 1024 * 1024

var (
	// ErrUnauthorized indicates the backend rejected the caller's credentials.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("backend: not found")
)

// Client talks to the shop's backend API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListProducts fetches the product catalog, optionally filtered by category
// and a free-text search term.
func (c *Client) ListProducts(ctx context.Context, category, search string) ([]ProductPayload, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if search != "" {
		query.Set("search", search)
	}

	var out []ProductPayload
	if err := c.doJSON(ctx, http.MethodGet, "/products", query, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*ProductPayload, error) {
	var out ProductPayload
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates a customer and returns their credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var out Credentials
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new customer account and returns its credentials.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out Credentials
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the account belonging to the given token.
func (c *Client) GetProfile(ctx context.Context, token string) (*UserPayload, error) {
	var out UserPayload
	if err := c.doJSON(ctx, http.MethodGet, "/account", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAddresses fetches the customer's saved addresses.
func (c *Client) ListAddresses(ctx context.Context, token string) ([]AddressEntry, error) {
	var out []AddressEntry
	if err := c.doJSON(ctx, http.MethodGet, "/account/addresses", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAddress saves a new address to the customer's address book.
func (c *Client) CreateAddress(ctx context.Context, token string, entry AddressEntry) (*AddressEntry, error) {
	var out AddressEntry
	if err := c.doJSON(ctx, http.MethodPost, "/account/addresses", nil, token, entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAddress removes a saved address by ID.
func (c *Client) DeleteAddress(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/account/addresses/"+strconv.FormatInt(id, 10), nil, token, nil, nil)
}

// PlaceOrder submits an order. The token is optional: guest checkout sends
// an empty token and identifies the customer by email.
func (c *Client) PlaceOrder(ctx context.Context, token string, order OrderRequest) (*OrderConfirmation, error) {
	var out OrderConfirmation
	if err := c.doJSON(ctx, http.MethodPost, "/orders", nil, token, order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs one request against the backend API and decodes the JSON
// response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s %s", ErrUnauthorized, method, path)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 400:
		return fmt.Errorf("backend: %s %s returned status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}
