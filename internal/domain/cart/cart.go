package cart

import (
	"github.com/shopspring/decimal"
)

// DefaultStockCeiling caps line item quantities when the product feed does not
// report a stock level.
const DefaultStockCeiling = 999

// LineItem is one product-and-quantity entry in the cart, keyed by product ID.
type LineItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageURL  string
	Stock     int
	Category  string
}

// Subtotal returns the line total, treating a negative or otherwise corrupted
// unit price as zero so that a bad persisted entry can never poison the cart.
func (li LineItem) Subtotal() decimal.Decimal {
	return validPrice(li.UnitPrice).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is the session shopping cart: an insertion-ordered collection of line
// items plus the sidebar visibility flag. It is the single source of truth for
// cart contents; all mutations keep the invariants that each product ID maps
// to at most one line item and every quantity is between 1 and the item's
// stock ceiling.
type Cart struct {
	items []LineItem
	open  bool
}

// New creates an empty, closed cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges the product into the cart. If a line item with the same
// product ID already exists its quantity grows by qty, capped at the stock
// ceiling; otherwise a new line item is appended with the resolved price.
// A qty below 1 is treated as 1. The returned PriceSource reports how the
// unit price was obtained so callers can emit a diagnostic when it was
// defaulted; adding never fails.
func (c *Cart) AddItem(p Product, qty int) PriceSource {
	if qty < 1 {
		qty = 1
	}

	ceiling := p.Stock
	if ceiling <= 0 {
		ceiling = DefaultStockCeiling
	}

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity = min(c.items[i].Quantity+qty, ceiling)
			return PriceSourceExisting
		}
	}

	price, source := p.ResolvePrice()
	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: price,
		Quantity:  min(qty, ceiling),
		ImageURL:  p.ImageURL,
		Stock:     ceiling,
		Category:  p.Category,
	})
	return source
}

// RemoveItem deletes the line item with the given product ID. Removing an
// absent ID is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for a line item. A quantity of zero or
// less removes the item; anything above the stock ceiling is clamped to it.
func (c *Cart) UpdateQuantity(productID int64, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = min(qty, c.items[i].Stock)
			return
		}
	}
}

// TotalItems returns the sum of all line item quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// TotalPrice returns the sum of line subtotals. Corrupted prices count as
// zero, so the total is always well defined.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.items {
		total = total.Add(c.items[i].Subtotal())
	}
	return total
}

// Contains reports whether a line item with the given product ID exists.
func (c *Cart) Contains(productID int64) bool {
	_, ok := c.Item(productID)
	return ok
}

// Item returns the line item for the given product ID, if present.
func (c *Cart) Item(productID int64) (LineItem, bool) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return c.items[i], true
		}
	}
	return LineItem{}, false
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsOpen reports whether the cart sidebar is visible.
func (c *Cart) IsOpen() bool {
	return c.open
}

// Toggle flips the sidebar visibility flag.
func (c *Cart) Toggle() {
	c.open = !c.open
}

// Open marks the cart sidebar visible.
func (c *Cart) Open() {
	c.open = true
}

// Close marks the cart sidebar hidden.
func (c *Cart) Close() {
	c.open = false
}

// Clear empties the cart and closes the sidebar. Called after a successful
// order placement.
func (c *Cart) Clear() {
	c.items = nil
	c.open = false
}

// validPrice normalizes a corrupted price to zero. Prices can only go bad via
// tampered persisted state, so this is a read-side guard rather than a write
// invariant.
func validPrice(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
