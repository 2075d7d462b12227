package address

import (
	"sync"
	"time"
)

// DefaultAutofillIdleTTL is how long a session's autofill state survives
// without any address activity.
const DefaultAutofillIdleTTL = 30 * time.Minute

// AutofillRegistry keeps one Autofill per session. Entries are evicted after
// a period of inactivity; every access restarts the eviction clock.
type AutofillRegistry struct {
	idleTTL time.Duration

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	autofill *Autofill
	evict    *Debouncer
}

// NewAutofillRegistry creates a registry. Non-positive idle TTLs fall back
// to DefaultAutofillIdleTTL.
func NewAutofillRegistry(idleTTL time.Duration) *AutofillRegistry {
	if idleTTL <= 0 {
		idleTTL = DefaultAutofillIdleTTL
	}
	return &AutofillRegistry{
		idleTTL: idleTTL,
		entries: make(map[string]*registryEntry),
	}
}

// ForSession returns the session's autofill state, creating it on first use,
// and pushes the session's eviction back by the idle TTL.
func (r *AutofillRegistry) ForSession(sessionID string) *Autofill {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &registryEntry{
			autofill: NewAutofill(),
			evict:    NewDebouncer(r.idleTTL),
		}
		r.entries[sessionID] = entry
	}
	entry.evict.Trigger(func() { r.drop(sessionID) })
	return entry.autofill
}

// Len reports the number of live sessions.
func (r *AutofillRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *AutofillRegistry) drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[sessionID]; ok {
		entry.evict.Cancel()
		delete(r.entries, sessionID)
	}
}
