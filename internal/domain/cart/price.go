package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceSource reports where AddItem found a usable unit price. The product
// feed is inconsistent about how prices are exposed, so resolution walks a
// fallback chain instead of failing on a malformed payload.
type PriceSource int

const (
	// PriceSourceNumeric means the numeric price field was present.
	PriceSourceNumeric PriceSource = iota
	// PriceSourceText means the string price field was parsed.
	PriceSourceText
	// PriceSourceDisplay means the display-price field was parsed.
	PriceSourceDisplay
	// PriceSourceDefaulted means no price could be resolved and zero was used.
	// Callers should log a diagnostic; the add itself still succeeds.
	PriceSourceDefaulted
	// PriceSourceExisting means the product was already in the cart and only
	// its quantity changed.
	PriceSourceExisting
)

// Product is the minimal product shape the cart needs when adding an item.
// Price fields mirror the backend feed: a numeric price when available, a
// string price that may use a comma decimal separator, and a formatted
// display price as last resort.
type Product struct {
	ID           int64
	Name         string
	Price        *decimal.Decimal
	PriceText    string
	DisplayPrice string
	Stock        int
	ImageURL     string
	Category     string
}

// ResolvePrice walks the fallback chain: numeric price, string price,
// display price, then zero. It never fails; the PriceSource tells the caller
// whether the result was defaulted.
func (p Product) ResolvePrice() (decimal.Decimal, PriceSource) {
	if p.Price != nil {
		return *p.Price, PriceSourceNumeric
	}
	if d, ok := ParsePriceText(p.PriceText); ok {
		return d, PriceSourceText
	}
	if d, ok := ParsePriceText(p.DisplayPrice); ok {
		return d, PriceSourceDisplay
	}
	return decimal.Zero, PriceSourceDefaulted
}

// ParsePriceText parses a price string such as "19.99" or "19,99". The comma
// decimal separator is common in Dutch-locale feeds and is normalized to a
// dot before parsing. Returns false for empty or unparseable input.
func ParsePriceText(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
