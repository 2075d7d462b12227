package pdok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healclinics/storefront/internal/domain/address"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func TestClient_Lookup(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/free", r.URL.Path)
		assert.Equal(t, "postcode:1011AB AND huisnummer:1", r.URL.Query().Get("fq"))
		assert.Equal(t, "1", r.URL.Query().Get("rows"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[{
			"straatnaam":"Prins Hendrikkade",
			"huisnummer":1,
			"postcode":"1011AB",
			"woonplaatsnaam":"Amsterdam",
			"provincienaam":"Noord-Holland"
		}]}}`))
	})

	resolved, err := client.Lookup(context.Background(), "1011AB", "1")
	require.NoError(t, err)

	assert.Equal(t, "Prins Hendrikkade", resolved.Street)
	assert.Equal(t, "1", resolved.HouseNumber)
	assert.Equal(t, "1011 AB", resolved.PostalCode)
	assert.Equal(t, "Amsterdam", resolved.City)
	assert.Equal(t, "Noord-Holland", resolved.Province)
	assert.Equal(t, "Nederland", resolved.Country)
}

func TestClient_Lookup_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"numFound":0,"docs":[]}}`))
	})

	_, err := client.Lookup(context.Background(), "9999ZZ", "1")
	assert.ErrorIs(t, err, address.ErrNoMatch)
}

func TestClient_Lookup_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Lookup(context.Background(), "1011AB", "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, address.ErrNoMatch)
}

func TestClient_Suggest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suggest", r.URL.Path)
		assert.Equal(t, "Heren", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("rows"))
		assert.Equal(t, "type:adres", r.URL.Query().Get("fq"))

		_, _ = w.Write([]byte(`{"response":{"numFound":2,"docs":[
			{"weergavenaam":"Herengracht 1, 1015BA Amsterdam","straatnaam":"Herengracht","huisnummer":"1","postcode":"1015BA","woonplaatsnaam":"Amsterdam"},
			{"straatnaam":"Herenstraat","huisnummer":12,"postcode":"3512KB","woonplaatsnaam":"Utrecht"}
		]}}`))
	})

	suggestions, err := client.Suggest(context.Background(), "Heren", 8)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "Herengracht 1, 1015BA Amsterdam", suggestions[0].Label)

	// Label falls back to a composed string when weergavenaam is omitted.
	assert.Equal(t, "Herenstraat 12, 3512KB Utrecht", suggestions[1].Label)
	assert.Equal(t, "12", suggestions[1].HouseNumber)
}

func TestClient_Suggest_MissingHouseNumberDefaultsToOne(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[
			{"straatnaam":"Kerkstraat","postcode":"1017GL","woonplaatsnaam":"Amsterdam"}
		]}}`))
	})

	suggestions, err := client.Suggest(context.Background(), "Kerk", 8)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "1", suggestions[0].HouseNumber)
}

func TestClient_Suggest_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.Suggest(context.Background(), "Heren", 8)
	assert.Error(t, err)
}
