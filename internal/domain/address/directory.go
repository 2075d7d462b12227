package address

import (
	"context"
	"errors"
)

// ErrNoMatch is returned by Directory.Lookup when the postcode and house
// number combination is not in the address database.
var ErrNoMatch = errors.New("address not found")

// Directory is the port to the external national address database.
type Directory interface {
	// Lookup resolves an exact address from a compact postcode ("1234AB")
	// and house number. Returns ErrNoMatch when nothing matches; any other
	// error is a transport or service failure.
	Lookup(ctx context.Context, postcode, houseNumber string) (*Resolved, error)
	// Suggest returns up to limit candidate addresses for a free-text query.
	Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error)
}
