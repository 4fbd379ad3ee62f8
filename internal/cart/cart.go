// Package cart implements the per-session shopping cart: a mapping from
// product id to quantity. A product id present in the cart always has
// quantity >= 1; quantities <= 0 are removed, never stored.
package cart

import (
	"github.com/auraxlabs/aurastore/internal/domain"
	"github.com/shopspring/decimal"
)

// Cart maps product id to quantity. The session exclusively owns its
// cart; callers must not share one Cart across sessions.
type Cart map[int64]int

func New() Cart {
	return make(Cart)
}

// Add increments the quantity for id by one, creating the entry at 1.
// Validation that id exists in the catalog happens at the boundary,
// before Add is called.
func (c Cart) Add(id int64) {
	c[id]++
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (c Cart) Remove(id int64) {
	delete(c, id)
}

// SetQuantity sets the quantity for an existing entry. qty <= 0 removes
// the entry. Setting a quantity for an id not already in the cart does
// not create an entry; only Add creates entries.
func (c Cart) SetQuantity(id int64, qty int) {
	if qty <= 0 {
		delete(c, id)
		return
	}
	if _, ok := c[id]; ok {
		c[id] = qty
	}
}

// Count returns the total item count: the sum of all quantities, not
// the number of distinct products. Recomputed on every call.
func (c Cart) Count() int {
	var n int
	for _, qty := range c {
		n += qty
	}
	return n
}

// Item is one resolved cart line.
type Item struct {
	Product  domain.Product
	Quantity int
	Subtotal decimal.Decimal
}

// Snapshot is a read-only view of the cart with prices resolved.
type Snapshot struct {
	Items map[int64]Item
	Total decimal.Decimal
	Count int
}

// Snapshot resolves every entry against the given catalog. Entries whose
// product id is no longer in the catalog are skipped. Subtotals and the
// total are computed in decimal; rounding happens at display time only.
func (c Cart) Snapshot(catalog map[int64]domain.Product) Snapshot {
	snap := Snapshot{
		Items: make(map[int64]Item, len(c)),
		Total: decimal.Zero,
		Count: c.Count(),
	}
	for id, qty := range c {
		p, ok := catalog[id]
		if !ok {
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		snap.Items[id] = Item{Product: p, Quantity: qty, Subtotal: subtotal}
		snap.Total = snap.Total.Add(subtotal)
	}
	return snap
}
