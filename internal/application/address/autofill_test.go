package address

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/healclinics/storefront/internal/domain/address"
)

func TestAutofillHappyPath(t *testing.T) {
	autofill := NewAutofill()
	assert.Equal(t, FieldStateEmpty, autofill.State("postcode"))

	autofill.Touch("postcode")
	assert.Equal(t, FieldStateTyping, autofill.State("postcode"))

	seq, _ := autofill.Begin("postcode")
	assert.Equal(t, FieldStateQuerying, autofill.State("postcode"))

	applied := autofill.Complete("postcode", seq, &LookupResult{
		Status:  LookupStatusFound,
		Address: &address.Resolved{Street: "Dorpsstraat"},
	})
	assert.True(t, applied)
	assert.Equal(t, FieldStateAutoFilled, autofill.State("postcode"))
	assert.Equal(t, "Dorpsstraat", autofill.Resolved("postcode").Street)
}

func TestAutofillStaleResponseIsDropped(t *testing.T) {
	autofill := NewAutofill()

	stale, _ := autofill.Begin("postcode")
	fresh, _ := autofill.Begin("postcode")

	applied := autofill.Complete("postcode", stale, &LookupResult{
		Status:  LookupStatusFound,
		Address: &address.Resolved{Street: "Oudeweg"},
	})
	assert.False(t, applied)
	assert.Equal(t, FieldStateQuerying, autofill.State("postcode"))

	applied = autofill.Complete("postcode", fresh, &LookupResult{Status: LookupStatusNotFound})
	assert.True(t, applied)
	assert.Equal(t, FieldStateNotFound, autofill.State("postcode"))
	assert.Nil(t, autofill.Resolved("postcode"))
}

func TestAutofillTypingInvalidatesInFlightQuery(t *testing.T) {
	autofill := NewAutofill()

	seq, _ := autofill.Begin("postcode")
	autofill.Touch("postcode")

	applied := autofill.Complete("postcode", seq, &LookupResult{Status: LookupStatusFound})
	assert.False(t, applied)
	assert.Equal(t, FieldStateTyping, autofill.State("postcode"))
}

func TestAutofillFieldsAreIndependent(t *testing.T) {
	autofill := NewAutofill()

	postcodeSeq, _ := autofill.Begin("postcode")
	autofill.Begin("street")

	applied := autofill.Complete("postcode", postcodeSeq, &LookupResult{Status: LookupStatusError})
	assert.True(t, applied)
	assert.Equal(t, FieldStateServiceError, autofill.State("postcode"))
	assert.Equal(t, FieldStateQuerying, autofill.State("street"))
}

func TestAutofillSuggestState(t *testing.T) {
	autofill := NewAutofill()

	seq, _ := autofill.Begin("street")
	assert.True(t, autofill.Suggest("street", seq))
	assert.Equal(t, FieldStateSuggested, autofill.State("street"))

	autofill.Touch("street")
	assert.False(t, autofill.Suggest("street", seq))
}

func TestAutofillSuppressesQueriesAfterAutoFill(t *testing.T) {
	autofill := NewAutofill()

	seq, ok := autofill.Begin("postcode")
	assert.True(t, ok)
	autofill.Complete("postcode", seq, &LookupResult{
		Status:  LookupStatusFound,
		Address: &address.Resolved{Street: "Dorpsstraat"},
	})

	_, ok = autofill.Begin("postcode")
	assert.False(t, ok)
	assert.Equal(t, FieldStateAutoFilled, autofill.State("postcode"))

	autofill.Touch("postcode")
	_, ok = autofill.Begin("postcode")
	assert.True(t, ok)
}

func TestAutofillReset(t *testing.T) {
	autofill := NewAutofill()

	seq, _ := autofill.Begin("postcode")
	autofill.Reset("postcode")

	assert.Equal(t, FieldStateEmpty, autofill.State("postcode"))
	assert.False(t, autofill.Complete("postcode", seq, &LookupResult{Status: LookupStatusFound}))
}

func TestDebouncerOnlyLastTriggerRuns(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	var calls []int
	record := func(n int) func() {
		return func() {
			mu.Lock()
			calls = append(calls, n)
			mu.Unlock()
		}
	}

	debouncer.Trigger(record(1))
	debouncer.Trigger(record(2))
	debouncer.Trigger(record(3))

	time.Sleep(80 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{3}, calls)
}

func TestDebouncerCancel(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	called := false
	debouncer.Trigger(func() {
		mu.Lock()
		called = true
		mu.Unlock()
	})
	debouncer.Cancel()

	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.False(t, called)
}
