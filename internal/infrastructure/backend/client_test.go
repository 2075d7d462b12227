package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healclinics/storefront/internal/domain/cart"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestListProducts(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "thee", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`[
			{"id": 12, "name_nl": "Groene thee", "price": 4.95, "stock": 20},
			{"id": 13, "name_nl": "Zwarte thee", "price": "3,50", "stock": 5}
		]`))
	})
	defer server.Close()

	products, err := client.ListProducts(context.Background(), "thee", "")
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0].ToCartProduct()
	price, source := first.ResolvePrice()
	assert.Equal(t, cart.PriceSourceNumeric, source)
	assert.Equal(t, "4.95", price.String())

	second := products[1].ToCartProduct()
	price, source = second.ResolvePrice()
	assert.Equal(t, cart.PriceSourceText, source)
	assert.Equal(t, "3.5", price.String())
}

func TestGetProductNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginSendsCredentials(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jan@example.nl", body["email"])

		_, _ = w.Write([]byte(`{"token": "tok-1", "user": {"id": 7, "email": "jan@example.nl", "name": "Jan"}}`))
	})
	defer server.Close()

	creds, err := client.Login(context.Background(), "jan@example.nl", "geheim")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", creds.Token)
	assert.Equal(t, int64(7), creds.User.ID)
}

func TestLoginRejected(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := client.Login(context.Background(), "jan@example.nl", "fout")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAddressBookUsesBearerToken(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id": 1, "street": "Dorpsstraat", "house_number": "12", "postal_code": "1234 AB", "city": "Amsterdam"}]`))
	})
	defer server.Close()

	entries, err := client.ListAddresses(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Dorpsstraat", entries[0].Street)
}

func TestPlaceOrder(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)

		var order OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "24.90", order.Total)
		require.Len(t, order.Lines, 1)
		assert.Equal(t, int64(12), order.Lines[0].ProductID)

		_, _ = w.Write([]byte(`{"order_id": "ord-42", "status": "pending"}`))
	})
	defer server.Close()

	confirmation, err := client.PlaceOrder(context.Background(), "", OrderRequest{
		Lines: []OrderLine{{ProductID: 12, Quantity: 2, UnitPrice: "12.45"}},
		Total: "24.90",
		Email: "jan@example.nl",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-42", confirmation.OrderID)
	assert.Equal(t, "pending", confirmation.Status)
}

func TestServerErrorIsWrapped(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.ListProducts(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
