package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 7, Name: "Omega-3", Price: numericPrice(21.50), Stock: 8, Category: "supplementen"}, 3)
	c.Open() // visibility must not survive persistence

	data, err := EncodeSnapshot(c)
	require.NoError(t, err)

	loaded, err := DecodeSnapshot(data)
	require.NoError(t, err)

	assert.False(t, loaded.IsOpen())
	require.Equal(t, 1, loaded.Len())
	item, _ := loaded.Item(7)
	assert.Equal(t, "Omega-3", item.Name)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 8, item.Stock)
	assert.Equal(t, "supplementen", item.Category)
	assert.Equal(t, "21.5", item.UnitPrice.String())
}

func TestSnapshot_MigratesLegacyPriceField(t *testing.T) {
	blob := []byte(`{"version":1,"items":[{"id":1,"name":"Zink","price_incl_btw":"19,99","quantity":2,"stock":5}]}`)

	c, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	require.Equal(t, 1, c.Len())
	item, _ := c.Item(1)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(19.99)))

	// The legacy key must be gone after a save cycle.
	data, err := EncodeSnapshot(c)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "price_incl_btw")
}

func TestSnapshot_MigrationKeepsExistingPrice(t *testing.T) {
	blob := []byte(`{"version":1,"items":[{"id":1,"price":"9.95","price_incl_btw":"19,99","quantity":1,"stock":5}]}`)

	c, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	item, _ := c.Item(1)
	assert.Equal(t, "9.95", item.UnitPrice.String())
}

func TestSnapshot_MigrationNeverDropsItems(t *testing.T) {
	// Unparseable legacy price migrates to zero instead of failing.
	blob := []byte(`{"version":1,"items":[{"id":1,"price_incl_btw":"n.v.t.","quantity":1,"stock":5},{"id":2,"quantity":1,"stock":5}]}`)

	c, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	item, _ := c.Item(1)
	assert.True(t, item.UnitPrice.IsZero())
}

func TestSnapshot_MigrationIdempotent(t *testing.T) {
	blob := []byte(`{"version":1,"items":[{"id":1,"price_incl_btw":"19,99","quantity":2,"stock":5}]}`)

	first, err := DecodeSnapshot(blob)
	require.NoError(t, err)
	saved, err := EncodeSnapshot(first)
	require.NoError(t, err)

	second, err := DecodeSnapshot(saved)
	require.NoError(t, err)

	a, _ := first.Item(1)
	b, _ := second.Item(1)
	assert.True(t, a.UnitPrice.Equal(b.UnitPrice))
	assert.Equal(t, a.Quantity, b.Quantity)
}

func TestSnapshot_VersionZeroPassthrough(t *testing.T) {
	blob := []byte(`{"version":0,"items":[{"id":1,"price":4.5,"quantity":1,"stock":3}]}`)

	c, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	item, _ := c.Item(1)
	assert.Equal(t, "4.5", item.UnitPrice.String())
}

func TestSnapshot_DefensiveFieldDefaults(t *testing.T) {
	blob := []byte(`{"version":2,"items":[
		{"id":1,"price":"bad","quantity":0,"stock":-3},
		{"id":0,"price":"5","quantity":1,"stock":5},
		{"price":"5","quantity":1,"stock":5}
	]}`)

	c, err := DecodeSnapshot(blob)
	require.NoError(t, err)

	// Entries without a usable product ID are skipped; the rest degrade.
	require.Equal(t, 1, c.Len())
	item, _ := c.Item(1)
	assert.True(t, item.UnitPrice.IsZero())
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, DefaultStockCeiling, item.Stock)
}

func TestSnapshot_FutureVersionPassesThrough(t *testing.T) {
	blob := []byte(`{"version":3,"items":[{"id":1,"price":"5","quantity":1,"stock":5}]}`)

	c, err := DecodeSnapshot(blob)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestSnapshot_RejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`not json`))
	assert.Error(t, err)
}

func TestSnapshot_WireShape(t *testing.T) {
	c := New()
	c.AddItem(Product{ID: 1, Name: "Cursus", Price: numericPrice(10), Stock: 2}, 1)

	data, err := EncodeSnapshot(c)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, float64(SchemaVersion), env["version"])
}
