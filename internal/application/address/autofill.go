package address

import (
	"sync"

	"github.com/healclinics/storefront/internal/domain/address"
)

// FieldState is the autofill state of one address form field.
type FieldState string

const (
	FieldStateEmpty        FieldState = "empty"
	FieldStateTyping       FieldState = "typing"
	FieldStateQuerying     FieldState = "querying"
	FieldStateSuggested    FieldState = "suggested"
	FieldStateNotFound     FieldState = "not_found"
	FieldStateServiceError FieldState = "service_error"
	FieldStateAutoFilled   FieldState = "auto_filled"
)

// Form fields a successful lookup fills in.
const (
	AutofillFieldStreet = "street"
	AutofillFieldCity   = "city"
)

// AutofillFields lists the fields lookup writes to, in form order.
var AutofillFields = []string{AutofillFieldStreet, AutofillFieldCity}

// KnownAutofillField reports whether field is one lookup fills in.
func KnownAutofillField(field string) bool {
	for _, known := range AutofillFields {
		if field == known {
			return true
		}
	}
	return false
}

// Autofill coordinates the address form's autofill flow. Every query issued
// for a field gets a sequence number; a response is only applied when it
// carries the field's newest sequence, so a slow early response can never
// overwrite the result of a later keystroke.
type Autofill struct {
	mu     sync.Mutex
	fields map[string]*fieldTracker
}

type fieldTracker struct {
	seq      uint64
	state    FieldState
	resolved *address.Resolved
}

// NewAutofill creates an autofill coordinator.
func NewAutofill() *Autofill {
	return &Autofill{fields: make(map[string]*fieldTracker)}
}

// Touch marks a field as being typed in. It bumps the sequence so any
// in-flight query for the field is invalidated.
func (a *Autofill) Touch(field string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker := a.tracker(field)
	tracker.seq++
	tracker.state = FieldStateTyping
	tracker.resolved = nil
}

// Begin marks a field as querying and returns the sequence the caller must
// present when completing. It reports false while the field is auto-filled:
// queries stay suppressed until the customer edits the field again.
func (a *Autofill) Begin(field string) (uint64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker := a.tracker(field)
	if tracker.state == FieldStateAutoFilled {
		return 0, false
	}
	tracker.seq++
	tracker.state = FieldStateQuerying
	return tracker.seq, true
}

// Complete applies a lookup result to a field. It reports false, without
// changing state, when seq is no longer the field's newest sequence.
func (a *Autofill) Complete(field string, seq uint64, result *LookupResult) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker := a.tracker(field)
	if seq != tracker.seq {
		return false
	}

	switch result.Status {
	case LookupStatusFound:
		tracker.state = FieldStateAutoFilled
		tracker.resolved = result.Address
	case LookupStatusNotFound:
		tracker.state = FieldStateNotFound
		tracker.resolved = nil
	case LookupStatusError:
		tracker.state = FieldStateServiceError
		tracker.resolved = nil
	default:
		tracker.state = FieldStateTyping
		tracker.resolved = nil
	}
	return true
}

// Suggest marks a field as showing suggestions when seq is still current.
func (a *Autofill) Suggest(field string, seq uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker := a.tracker(field)
	if seq != tracker.seq {
		return false
	}
	tracker.state = FieldStateSuggested
	return true
}

// State returns a field's current state. Unknown fields are empty.
func (a *Autofill) State(field string) FieldState {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker, ok := a.fields[field]
	if !ok {
		return FieldStateEmpty
	}
	return tracker.state
}

// Resolved returns the address applied to a field, if it was auto-filled.
func (a *Autofill) Resolved(field string) *address.Resolved {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker, ok := a.fields[field]
	if !ok {
		return nil
	}
	return tracker.resolved
}

// Reset clears a field back to empty and invalidates in-flight queries.
func (a *Autofill) Reset(field string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tracker := a.tracker(field)
	tracker.seq++
	tracker.state = FieldStateEmpty
	tracker.resolved = nil
}

func (a *Autofill) tracker(field string) *fieldTracker {
	tracker, ok := a.fields[field]
	if !ok {
		tracker = &fieldTracker{state: FieldStateEmpty}
		a.fields[field] = tracker
	}
	return tracker
}
