package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	addressapp "github.com/healclinics/storefront/internal/application/address"
	"github.com/healclinics/storefront/internal/domain/address"
	"github.com/healclinics/storefront/internal/interfaces/http/dto"
	"github.com/healclinics/storefront/internal/interfaces/http/middleware"
)

// AddressHandler exposes the Dutch address lookup and autocomplete flow.
// Autofill state is tracked per session: a lookup fills the street and city
// fields, and suggestion queries for a filled field are suppressed until the
// customer edits it again.
type AddressHandler struct {
	BaseHandler
	addresses *addressapp.Service
	autofill  *addressapp.AutofillRegistry
}

// NewAddressHandler creates an address handler.
func NewAddressHandler(addresses *addressapp.Service, autofill *addressapp.AutofillRegistry) *AddressHandler {
	return &AddressHandler{addresses: addresses, autofill: autofill}
}

// Lookup resolves a postcode and house number to a full address. The result
// status is part of the payload: invalid input and a missing address are
// normal outcomes of the form flow, not transport errors. A fresh lookup
// supersedes any earlier fill, and a slow earlier response is dropped once a
// newer lookup has started.
// GET /api/v1/address/lookup?postcode=&house_number=
func (h *AddressHandler) Lookup(c *gin.Context) {
	state := h.autofill.ForSession(middleware.GetSessionID(c))

	seqs := make(map[string]uint64, len(addressapp.AutofillFields))
	for _, field := range addressapp.AutofillFields {
		state.Touch(field)
		seq, _ := state.Begin(field)
		seqs[field] = seq
	}

	result := h.addresses.Lookup(c.Request.Context(), c.Query("postcode"), c.Query("house_number"))

	for field, seq := range seqs {
		state.Complete(field, seq, result)
	}

	status := http.StatusOK
	if result.Status == addressapp.LookupStatusError {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.NewSuccessResponse(result))
}

// Suggest returns address suggestions for a partial query. Always a list,
// possibly empty. While the field is auto-filled the directory is not
// queried at all.
// GET /api/v1/address/suggest?q=&field=
func (h *AddressHandler) Suggest(c *gin.Context) {
	field := c.DefaultQuery("field", addressapp.AutofillFieldStreet)
	state := h.autofill.ForSession(middleware.GetSessionID(c))

	seq, ok := state.Begin(field)
	if !ok {
		h.Success(c, []address.Suggestion{})
		return
	}

	suggestions := h.addresses.Suggest(c.Request.Context(), c.Query("q"))
	state.Suggest(field, seq)
	h.Success(c, suggestions)
}

// TouchField records a manual edit of a form field. This clears an earlier
// auto-fill and re-enables suggestion queries for the field.
// POST /api/v1/address/fields/:field/touch
func (h *AddressHandler) TouchField(c *gin.Context) {
	field := c.Param("field")
	if !addressapp.KnownAutofillField(field) {
		h.BadRequest(c, "Onbekend veld")
		return
	}

	state := h.autofill.ForSession(middleware.GetSessionID(c))
	state.Touch(field)

	h.Success(c, gin.H{"field": field, "state": state.State(field)})
}
