package address

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/healclinics/storefront/internal/domain/address"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Lookup(ctx context.Context, postcode, houseNumber string) (*address.Resolved, error) {
	args := m.Called(ctx, postcode, houseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Resolved), args.Error(1)
}

func (m *mockDirectory) Suggest(ctx context.Context, query string, limit int) ([]address.Suggestion, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Suggestion), args.Error(1)
}

func dorpsstraat() *address.Resolved {
	return &address.Resolved{
		Street:      "Dorpsstraat",
		HouseNumber: "12",
		PostalCode:  "1234 AB",
		City:        "Amsterdam",
		Country:     address.CountryNetherlands,
	}
}

func TestLookupFound(t *testing.T) {
	directory := new(mockDirectory)
	directory.On("Lookup", mock.Anything, "1234AB", "12").Return(dorpsstraat(), nil)
	service := NewService(directory, 8, nil, zap.NewNop())

	result := service.Lookup(context.Background(), "1234 ab", "12")
	assert.Equal(t, LookupStatusFound, result.Status)
	require.NotNil(t, result.Address)
	assert.Equal(t, "Dorpsstraat", result.Address.Street)
	assert.Empty(t, result.Message)
	directory.AssertExpectations(t)
}

func TestLookupMissingFields(t *testing.T) {
	directory := new(mockDirectory)
	service := NewService(directory, 8, nil, zap.NewNop())

	result := service.Lookup(context.Background(), "", "12")
	assert.Equal(t, LookupStatusInvalid, result.Status)
	assert.Equal(t, "Postcode en huisnummer zijn verplicht", result.Message)

	result = service.Lookup(context.Background(), "1234 AB", "   ")
	assert.Equal(t, LookupStatusInvalid, result.Status)
	directory.AssertNotCalled(t, "Lookup")
}

func TestLookupInvalidPostcode(t *testing.T) {
	directory := new(mockDirectory)
	service := NewService(directory, 8, nil, zap.NewNop())

	result := service.Lookup(context.Background(), "0234 AB", "12")
	assert.Equal(t, LookupStatusInvalid, result.Status)
	assert.Equal(t, "Ongeldige postcode format (gebruik bijv. 1234 AB)", result.Message)
	directory.AssertNotCalled(t, "Lookup")
}

func TestLookupNoMatch(t *testing.T) {
	directory := new(mockDirectory)
	directory.On("Lookup", mock.Anything, "9999ZZ", "1").Return(nil, address.ErrNoMatch)
	service := NewService(directory, 8, nil, zap.NewNop())

	result := service.Lookup(context.Background(), "9999 ZZ", "1")
	assert.Equal(t, LookupStatusNotFound, result.Status)
	assert.Equal(t, "Adres niet gevonden", result.Message)
}

func TestLookupServiceFailure(t *testing.T) {
	directory := new(mockDirectory)
	directory.On("Lookup", mock.Anything, "1234AB", "12").Return(nil, errors.New("gateway timeout"))
	service := NewService(directory, 8, nil, zap.NewNop())

	result := service.Lookup(context.Background(), "1234 AB", "12")
	assert.Equal(t, LookupStatusError, result.Status)
	assert.Equal(t, "Adres service tijdelijk niet beschikbaar", result.Message)
}

func TestSuggestShortQuerySkipsDirectory(t *testing.T) {
	directory := new(mockDirectory)
	service := NewService(directory, 8, nil, zap.NewNop())

	suggestions := service.Suggest(context.Background(), "do")
	assert.Empty(t, suggestions)
	suggestions = service.Suggest(context.Background(), "  a  ")
	assert.Empty(t, suggestions)
	directory.AssertNotCalled(t, "Suggest")
}

func TestSuggestReturnsResults(t *testing.T) {
	directory := new(mockDirectory)
	directory.On("Suggest", mock.Anything, "dorps", 8).Return([]address.Suggestion{
		{Label: "Dorpsstraat 12, 1234 AB Amsterdam", Street: "Dorpsstraat"},
	}, nil)
	service := NewService(directory, 8, nil, zap.NewNop())

	suggestions := service.Suggest(context.Background(), " dorps ")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Dorpsstraat", suggestions[0].Street)
}

func TestSuggestFailureDegradesToEmpty(t *testing.T) {
	directory := new(mockDirectory)
	directory.On("Suggest", mock.Anything, "dorps", 8).Return(nil, errors.New("timeout"))
	service := NewService(directory, 8, nil, zap.NewNop())

	suggestions := service.Suggest(context.Background(), "dorps")
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}
