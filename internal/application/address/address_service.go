package address

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/healclinics/storefront/internal/domain/address"
	"github.com/healclinics/storefront/internal/infrastructure/telemetry"
)

// minSuggestQueryLength is the minimum query length before suggestions are
// fetched. Shorter queries return an empty list without a network call.
const minSuggestQueryLength = 3

// LookupStatus tags the outcome of a lookup.
type LookupStatus string

const (
	LookupStatusFound    LookupStatus = "found"
	LookupStatusInvalid  LookupStatus = "invalid"
	LookupStatusNotFound LookupStatus = "not_found"
	LookupStatusError    LookupStatus = "error"
)

// Customer-facing messages, in Dutch like the rest of the storefront.
const (
	msgRequired    = "Postcode en huisnummer zijn verplicht"
	msgInvalid     = "Ongeldige postcode format (gebruik bijv. 1234 AB)"
	msgNotFound    = "Adres niet gevonden"
	msgUnavailable = "Adres service tijdelijk niet beschikbaar"
)

// LookupResult is the outcome of a postcode and house number lookup. Message
// is set for every non-found status and is safe to show to the customer.
type LookupResult struct {
	Status  LookupStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Address *address.Resolved `json:"address,omitempty"`
}

// Service resolves Dutch addresses through an address directory.
type Service struct {
	directory    address.Directory
	metrics      *telemetry.StoreMetrics
	logger       *zap.Logger
	suggestLimit int
}

// NewService creates an address service. suggestLimit caps the number of
// suggestions returned per query.
func NewService(directory address.Directory, suggestLimit int, metrics *telemetry.StoreMetrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if suggestLimit <= 0 {
		suggestLimit = 8
	}
	return &Service{
		directory:    directory,
		metrics:      metrics,
		logger:       logger,
		suggestLimit: suggestLimit,
	}
}

// Lookup resolves a postcode and house number to a full address. Failures
// are reported in the result status rather than as errors so handlers can
// return them with a customer-facing message.
func (s *Service) Lookup(ctx context.Context, postcode, houseNumber string) *LookupResult {
	postcode = strings.TrimSpace(postcode)
	houseNumber = strings.TrimSpace(houseNumber)

	if postcode == "" || houseNumber == "" {
		s.metrics.RecordAddressLookup(ctx, "invalid")
		return &LookupResult{Status: LookupStatusInvalid, Message: msgRequired}
	}
	if !address.ValidatePostcode(postcode) {
		s.metrics.RecordAddressLookup(ctx, "invalid")
		return &LookupResult{Status: LookupStatusInvalid, Message: msgInvalid}
	}

	resolved, err := s.directory.Lookup(ctx, address.NormalizePostcode(postcode), houseNumber)
	if err != nil {
		if errors.Is(err, address.ErrNoMatch) {
			s.metrics.RecordAddressLookup(ctx, "not_found")
			return &LookupResult{Status: LookupStatusNotFound, Message: msgNotFound}
		}
		s.logger.Warn("address lookup failed",
			zap.String("postcode", postcode),
			zap.Error(err),
		)
		s.metrics.RecordAddressLookup(ctx, "error")
		return &LookupResult{Status: LookupStatusError, Message: msgUnavailable}
	}

	s.metrics.RecordAddressLookup(ctx, "found")
	return &LookupResult{Status: LookupStatusFound, Address: resolved}
}

// Suggest returns address suggestions for a partial query. Queries shorter
// than three characters return an empty list without hitting the directory,
// and directory failures degrade to an empty list.
func (s *Service) Suggest(ctx context.Context, query string) []address.Suggestion {
	query = strings.TrimSpace(query)
	if len(query) < minSuggestQueryLength {
		return []address.Suggestion{}
	}

	s.metrics.RecordAddressSuggest(ctx)
	suggestions, err := s.directory.Suggest(ctx, query, s.suggestLimit)
	if err != nil {
		s.logger.Warn("address suggest failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return []address.Suggestion{}
	}
	if suggestions == nil {
		return []address.Suggestion{}
	}
	return suggestions
}
