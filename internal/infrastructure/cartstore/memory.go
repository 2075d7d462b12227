package cartstore

import (
	"context"
	"sync"

	"github.com/healclinics/storefront/internal/domain/cart"
)

// MemoryStore is an in-memory cart store for tests and single-instance
// development runs. It round-trips carts through the snapshot codec so the
// persistence path (including migrations) behaves exactly like Redis.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Load returns the cart for a session, or cart.ErrCartNotFound.
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.blobs[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return cart.DecodeSnapshot(data)
}

// Save overwrites the snapshot for a session.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := cart.EncodeSnapshot(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[sessionID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the snapshot for a session.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.blobs, sessionID)
	s.mu.Unlock()
	return nil
}

// SeedRaw stores a raw snapshot blob directly, bypassing the codec. Tests use
// it to exercise schema migration against hand-written legacy payloads.
func (s *MemoryStore) SeedRaw(sessionID string, data []byte) {
	s.mu.Lock()
	s.blobs[sessionID] = data
	s.mu.Unlock()
}

// Ensure MemoryStore implements the repository port
var _ cart.Repository = (*MemoryStore)(nil)
