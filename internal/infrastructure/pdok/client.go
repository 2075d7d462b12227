package pdok

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/healclinics/storefront/internal/domain/address"
)

// maxResponseSize is the maximum allowed response size from the locatieserver (2MB)
const maxResponseSize = 2 * 1024 * 1024

// lookupFields and suggestFields select the document fields each query needs.
const (
	lookupFields  = "straatnaam,huisnummer,postcode,woonplaatsnaam,provincienaam"
	suggestFields = "weergavenaam,straatnaam,huisnummer,postcode,woonplaatsnaam"
)

// Client talks to the PDOK locatieserver, the national Dutch address
// database. It implements the address.Directory port.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a locatieserver client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup resolves an exact address from a compact postcode and house number.
// At most one document is requested; no document means address.ErrNoMatch.
func (c *Client) Lookup(ctx context.Context, postcode, houseNumber string) (*address.Resolved, error) {
	params := url.Values{}
	params.Set("fq", fmt.Sprintf("postcode:%s AND huisnummer:%s", postcode, houseNumber))
	params.Set("rows", "1")
	params.Set("fl", lookupFields)

	resp, err := c.doRequest(ctx, "/free", params)
	if err != nil {
		return nil, err
	}

	if resp.Response.NumFound == 0 || len(resp.Response.Docs) == 0 {
		return nil, address.ErrNoMatch
	}

	doc := resp.Response.Docs[0]
	return &address.Resolved{
		Street:      doc.Straatnaam,
		HouseNumber: doc.houseNumber(),
		PostalCode:  address.FormatPostcode(doc.Postcode),
		City:        doc.Woonplaatsnaam,
		Province:    doc.Provincienaam,
		Country:     address.CountryNetherlands,
	}, nil
}

// Suggest returns up to limit address suggestions for a free-text query.
// Results are filtered to address-type documents; when the service omits a
// display name the label is composed from the document fields.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]address.Suggestion, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("rows", fmt.Sprintf("%d", limit))
	params.Set("fl", suggestFields)
	params.Set("fq", "type:adres")

	resp, err := c.doRequest(ctx, "/suggest", params)
	if err != nil {
		return nil, err
	}

	suggestions := make([]address.Suggestion, 0, len(resp.Response.Docs))
	for _, doc := range resp.Response.Docs {
		houseNumber := doc.houseNumber()
		if houseNumber == "" {
			houseNumber = "1"
		}
		label := doc.Weergavenaam
		if label == "" {
			label = address.ComposeLabel(doc.Straatnaam, houseNumber, doc.Postcode, doc.Woonplaatsnaam)
		}
		suggestions = append(suggestions, address.Suggestion{
			Label:       label,
			Street:      doc.Straatnaam,
			HouseNumber: houseNumber,
			PostalCode:  doc.Postcode,
			City:        doc.Woonplaatsnaam,
		})
	}
	return suggestions, nil
}

// doRequest performs a GET against the locatieserver and decodes the
// Solr-style response wrapper.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values) (*searchResponse, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("pdok: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdok: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdok: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("pdok: failed to read response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("pdok: failed to parse response: %w", err)
	}
	return &parsed, nil
}

// Ensure Client implements the directory port
var _ address.Directory = (*Client)(nil)
