package cart

import (
	"context"
	"errors"
)

// ErrCartNotFound is returned by Repository.Load when no cart has been
// persisted for the session yet.
var ErrCartNotFound = errors.New("cart not found")

// Repository is the persistence port for session carts. Implementations store
// one versioned snapshot per session ID and are expected to run schema
// migrations on load (see DecodeSnapshot).
type Repository interface {
	// Load returns the persisted cart for the session, or ErrCartNotFound.
	Load(ctx context.Context, sessionID string) (*Cart, error)
	// Save overwrites the persisted snapshot for the session.
	Save(ctx context.Context, sessionID string, c *Cart) error
	// Delete removes the persisted snapshot for the session.
	Delete(ctx context.Context, sessionID string) error
}
