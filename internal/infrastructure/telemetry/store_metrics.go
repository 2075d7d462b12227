package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil indicates a nil meter was passed to NewStoreMetrics.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// StoreMetrics tracks storefront business metrics.
type StoreMetrics struct {
	cartItemsAdded    metric.Int64Counter
	priceDefaulted    metric.Int64Counter
	ordersPlaced      metric.Int64Counter
	addressLookups    metric.Int64Counter
	addressSuggestsIn metric.Int64Counter
}

// NewStoreMetrics registers the storefront's business instruments on the
// given meter.
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &StoreMetrics{}
	var err error

	m.cartItemsAdded, err = meter.Int64Counter(
		"storefront_cart_items_added_total",
		metric.WithDescription("Total items added to carts"),
		metric.WithUnit("{items}"),
	)
	if err != nil {
		return nil, err
	}

	m.priceDefaulted, err = meter.Int64Counter(
		"storefront_cart_price_defaulted_total",
		metric.WithDescription("Cart lines whose price fell back to zero because no product price field was usable"),
		metric.WithUnit("{lines}"),
	)
	if err != nil {
		return nil, err
	}

	m.ordersPlaced, err = meter.Int64Counter(
		"storefront_orders_placed_total",
		metric.WithDescription("Total orders placed through checkout"),
		metric.WithUnit("{orders}"),
	)
	if err != nil {
		return nil, err
	}

	m.addressLookups, err = meter.Int64Counter(
		"storefront_address_lookups_total",
		metric.WithDescription("Postcode and house number lookups by outcome"),
		metric.WithUnit("{lookups}"),
	)
	if err != nil {
		return nil, err
	}

	m.addressSuggestsIn, err = meter.Int64Counter(
		"storefront_address_suggestions_total",
		metric.WithDescription("Address suggestion queries"),
		metric.WithUnit("{queries}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordItemsAdded records quantity items added to a cart.
func (m *StoreMetrics) RecordItemsAdded(ctx context.Context, quantity int) {
	if m == nil {
		return
	}
	m.cartItemsAdded.Add(ctx, int64(quantity))
}

// RecordPriceDefaulted records one cart line that received a zero price.
func (m *StoreMetrics) RecordPriceDefaulted(ctx context.Context, productID int64) {
	if m == nil {
		return
	}
	m.priceDefaulted.Add(ctx, 1, metric.WithAttributes(
		attribute.Int64("product_id", productID),
	))
}

// RecordOrderPlaced records one completed checkout.
func (m *StoreMetrics) RecordOrderPlaced(ctx context.Context) {
	if m == nil {
		return
	}
	m.ordersPlaced.Add(ctx, 1)
}

// RecordAddressLookup records one address lookup with its outcome
// (found, not_found, invalid, error).
func (m *StoreMetrics) RecordAddressLookup(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.addressLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordAddressSuggest records one suggestion query.
func (m *StoreMetrics) RecordAddressSuggest(ctx context.Context) {
	if m == nil {
		return
	}
	m.addressSuggestsIn.Add(ctx, 1)
}
