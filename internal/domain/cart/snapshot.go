package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// SchemaVersion is the current persisted cart schema version.
const SchemaVersion = 2

// envelope is the persisted cart blob: the schema version plus the raw line
// items. Items stay as loose maps until all migrations have run, because an
// older schema may use field names the current LineItem no longer has.
type envelope struct {
	Version int              `json:"version"`
	Items   []map[string]any `json:"items"`
}

// snapshotItem is the current (version 2) wire shape of a line item. Prices
// are serialized as strings to avoid float drift in the stored blob.
type snapshotItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
	Stock    int    `json:"stock"`
	Category string `json:"category,omitempty"`
}

// Migration is one schema upgrade step. Steps are strictly sequential
// (version N to N+1) and each must be idempotent and item-preserving: a
// migration may rewrite fields but never drop a line item.
type Migration interface {
	// SourceVersion is the schema version this step reads.
	SourceVersion() int
	// Apply rewrites the raw items to the next schema version.
	Apply(items []map[string]any) ([]map[string]any, error)
}

// migrations is the ordered upgrade chain, indexed by source version.
var migrations = []Migration{
	passthroughMigration{source: 0},
	legacyPriceMigration{},
}

// passthroughMigration upgrades a schema version without changing any data.
type passthroughMigration struct {
	source int
}

func (m passthroughMigration) SourceVersion() int { return m.source }

func (m passthroughMigration) Apply(items []map[string]any) ([]map[string]any, error) {
	return items, nil
}

// legacyPriceMigration rewrites version 1 items that still carry the legacy
// "price_incl_btw" field into the current "price" field. A missing or
// unparseable legacy price migrates to zero rather than failing; the legacy
// key is always discarded.
type legacyPriceMigration struct{}

func (m legacyPriceMigration) SourceVersion() int { return 1 }

func (m legacyPriceMigration) Apply(items []map[string]any) ([]map[string]any, error) {
	for _, item := range items {
		legacy, hasLegacy := item["price_incl_btw"]
		if _, hasCurrent := item["price"]; !hasCurrent && hasLegacy {
			item["price"] = coercePrice(legacy).String()
		}
		delete(item, "price_incl_btw")
	}
	return items, nil
}

// EncodeSnapshot serializes the cart under the current schema version.
// The visibility flag is transient and not persisted.
func EncodeSnapshot(c *Cart) ([]byte, error) {
	items := c.Items()
	wire := struct {
		Version int            `json:"version"`
		Items   []snapshotItem `json:"items"`
	}{
		Version: SchemaVersion,
		Items:   make([]snapshotItem, 0, len(items)),
	}
	for _, li := range items {
		wire.Items = append(wire.Items, snapshotItem{
			ID:       li.ProductID,
			Name:     li.Name,
			Price:    li.UnitPrice.String(),
			Quantity: li.Quantity,
			ImageURL: li.ImageURL,
			Stock:    li.Stock,
			Category: li.Category,
		})
	}
	return json.Marshal(wire)
}

// DecodeSnapshot deserializes a persisted cart blob, upgrading older schema
// versions through the migration chain first. Individual corrupted fields
// degrade to safe defaults; only a structurally unreadable blob is an error.
func DecodeSnapshot(data []byte) (*Cart, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("cart snapshot: %w", err)
	}

	items, err := migrate(env.Items, env.Version)
	if err != nil {
		return nil, err
	}

	c := New()
	for _, raw := range items {
		li, ok := itemFromRaw(raw)
		if !ok {
			continue
		}
		c.items = append(c.items, li)
	}
	return c, nil
}

// migrate runs the upgrade chain from the stored version to SchemaVersion.
// Snapshots already at (or somehow beyond) the current version pass through.
func migrate(items []map[string]any, fromVersion int) ([]map[string]any, error) {
	if fromVersion >= SchemaVersion {
		return items, nil
	}
	if fromVersion < 0 {
		fromVersion = 0
	}
	var err error
	for v := fromVersion; v < SchemaVersion; v++ {
		step := migrations[v]
		if step.SourceVersion() != v {
			return nil, fmt.Errorf("cart snapshot: migration chain broken at version %d", v)
		}
		items, err = step.Apply(items)
		if err != nil {
			return nil, fmt.Errorf("cart snapshot: migrate v%d to v%d: %w", v, v+1, err)
		}
	}
	return items, nil
}

// itemFromRaw maps a migrated raw item onto a LineItem. An entry without a
// usable product ID is skipped; everything else degrades field by field.
func itemFromRaw(raw map[string]any) (LineItem, bool) {
	id, ok := coerceInt(raw["id"])
	if !ok || id <= 0 {
		return LineItem{}, false
	}

	stock, ok := coerceInt(raw["stock"])
	if !ok || stock <= 0 {
		stock = DefaultStockCeiling
	}

	qty, ok := coerceInt(raw["quantity"])
	if !ok || qty < 1 {
		qty = 1
	}

	return LineItem{
		ProductID: int64(id),
		Name:      coerceString(raw["name"]),
		UnitPrice: coercePrice(raw["price"]),
		Quantity:  min(qty, stock),
		ImageURL:  coerceString(raw["image_url"]),
		Stock:     stock,
		Category:  coerceString(raw["category"]),
	}, true
}

// coercePrice accepts the price encodings seen in the wild: JSON numbers,
// dot-decimal strings and comma-decimal strings. Anything else is zero.
func coercePrice(v any) decimal.Decimal {
	switch p := v.(type) {
	case float64:
		return decimal.NewFromFloat(p)
	case string:
		if d, ok := ParsePriceText(p); ok {
			return d
		}
	case json.Number:
		if d, err := decimal.NewFromString(p.String()); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		if d, ok := ParsePriceText(n); ok {
			return int(d.IntPart()), true
		}
	}
	return 0, false
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}
