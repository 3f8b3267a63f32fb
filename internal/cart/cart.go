// Package cart implements the per-session order being assembled before
// checkout. A cart consults the catalog for availability but never commits
// stock; it holds at most one line per product and preserves insertion order.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

// ErrInvalidQuantity is returned when a quantity or delta is not positive.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrNotInCart is returned when the cart has no line for the product.
var ErrNotInCart = errors.New("product not in cart")

// Cart accumulates line items for one checkout session. It is not safe for
// concurrent use: each cart is owned by exactly one session and callers
// serialize access themselves.
type Cart struct {
	lines []model.LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(productID int64) int {
	for i, li := range c.lines {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}

// Quantity returns the quantity currently held for the product, zero if the
// product is not in the cart.
func (c *Cart) Quantity(productID int64) int64 {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// AddItem puts quantity units of the product into the cart, merging into an
// existing line or appending a new one at the end. The availability check
// counts what the cart already holds, so a cart can never reserve more than
// the catalog has.
func (c *Cart) AddItem(cat *catalog.Catalog, productID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p, err := cat.Lookup(productID)
	if err != nil {
		return err
	}
	wanted := c.Quantity(productID) + quantity
	if !cat.HasSufficientStock(productID, wanted) {
		return &catalog.InsufficientStockError{ProductID: productID, Available: p.Stock, Requested: wanted}
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, model.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  quantity,
	})
	return nil
}

// RemoveItem deletes the product's line entirely.
func (c *Cart) RemoveItem(productID int64) error {
	i := c.index(productID)
	if i < 0 {
		return ErrNotInCart
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// IncreaseQuantity adds delta to an existing line, re-checking availability
// against the catalog's current stock plus what the cart already holds.
func (c *Cart) IncreaseQuantity(cat *catalog.Catalog, productID, delta int64) error {
	if delta <= 0 {
		return ErrInvalidQuantity
	}
	i := c.index(productID)
	if i < 0 {
		return ErrNotInCart
	}
	wanted := c.lines[i].Quantity + delta
	if !cat.HasSufficientStock(productID, wanted) {
		p, err := cat.Lookup(productID)
		if err != nil {
			return err
		}
		return &catalog.InsufficientStockError{ProductID: productID, Available: p.Stock, Requested: wanted}
	}
	c.lines[i].Quantity = wanted
	return nil
}

// DecreaseQuantity subtracts delta from an existing line. A delta covering
// the whole line removes it; quantities never persist at or below zero.
func (c *Cart) DecreaseQuantity(productID, delta int64) error {
	if delta <= 0 {
		return ErrInvalidQuantity
	}
	i := c.index(productID)
	if i < 0 {
		return ErrNotInCart
	}
	if delta >= c.lines[i].Quantity {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity -= delta
	return nil
}

// Subtotal sums quantity times unit price over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range c.lines {
		total = total.Add(li.Amount())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Items returns a copy of the cart's lines in insertion order.
func (c *Cart) Items() []model.LineItem {
	out := make([]model.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// RevalidateAgainstCatalog re-checks every line against the catalog's
// current stock. It returns the first failure encountered, in line order;
// stock may have moved since the items were added.
func (c *Cart) RevalidateAgainstCatalog(cat *catalog.Catalog) error {
	for _, li := range c.lines {
		p, err := cat.Lookup(li.ProductID)
		if err != nil {
			return err
		}
		if p.Stock < li.Quantity {
			return &catalog.InsufficientStockError{ProductID: li.ProductID, Available: p.Stock, Requested: li.Quantity}
		}
	}
	return nil
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	c.lines = nil
}
