// Package catalog implements the shared product store. It is the single
// source of truth for availability; carts consult it but never mutate it.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/eventlog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

// ErrProductNotFound is returned when a product id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidRange is returned by FilterByPriceRange when min exceeds max or
// either bound is negative.
var ErrInvalidRange = errors.New("invalid price range")

// InsufficientStockError reports a requested quantity exceeding availability.
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available, %d requested",
		e.ProductID, e.Available, e.Requested)
}

// Catalog is the process-wide product store. All methods are safe for
// concurrent use; an internal mutex guards products and stock counts.
type Catalog struct {
	mu    sync.RWMutex
	byID  map[int64]*model.Product
	order []int64
	sink  eventlog.Sink
}

// New builds a Catalog from a seed snapshot. Products must have unique
// positive ids, non-negative prices, and non-negative stock.
func New(seed []model.Product, sink eventlog.Sink) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[int64]*model.Product, len(seed)),
		sink: sink,
	}
	for _, p := range seed {
		if p.ID <= 0 {
			return nil, errors.Errorf("seed product %q: id must be positive, got %d", p.Name, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.Errorf("seed product id %d appears twice", p.ID)
		}
		if p.UnitPrice.IsNegative() {
			return nil, errors.Errorf("seed product %d: negative unit price %s", p.ID, p.UnitPrice)
		}
		if p.Stock < 0 {
			return nil, errors.Errorf("seed product %d: negative stock %d", p.ID, p.Stock)
		}
		cp := p
		c.byID[p.ID] = &cp
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Lookup returns a copy of the product with the given id.
func (c *Catalog) Lookup(productID int64) (model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[productID]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return *p, nil
}

// HasSufficientStock reports whether the product exists and can cover
// quantity. An absent product yields false, not an error.
func (c *Catalog) HasSufficientStock(productID, quantity int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[productID]
	return ok && p.Stock >= quantity
}

// ListAvailable returns products with stock remaining, in catalog order.
func (c *Catalog) ListAvailable() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Product
	for _, id := range c.order {
		if p := c.byID[id]; p.Stock > 0 {
			out = append(out, *p)
		}
	}
	return out
}

// Search matches term case-insensitively against product names, in catalog
// order. An empty term is a degenerate query: it yields no results and the
// event log records it so callers can surface the condition.
func (c *Catalog) Search(term string) []model.Product {
	if term == "" {
		c.emit(eventlog.LevelDebug, "catalog_search_empty_term", nil)
		return nil
	}
	needle := strings.ToLower(term)
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Product
	for _, id := range c.order {
		p := c.byID[id]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, *p)
		}
	}
	return out
}

// FilterByPriceRange returns products whose unit price lies in [min, max],
// in catalog order.
func (c *Catalog) FilterByPriceRange(min, max decimal.Decimal) ([]model.Product, error) {
	if min.IsNegative() || max.IsNegative() || min.GreaterThan(max) {
		return nil, ErrInvalidRange
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Product
	for _, id := range c.order {
		p := c.byID[id]
		if p.UnitPrice.GreaterThanOrEqual(min) && p.UnitPrice.LessThanOrEqual(max) {
			out = append(out, *p)
		}
	}
	return out, nil
}

// ReduceStock deducts quantity from the product's stock. Stock never goes
// negative: a request beyond availability fails with InsufficientStockError
// and leaves the catalog untouched.
func (c *Catalog) ReduceStock(productID, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[productID]
	if !ok {
		return ErrProductNotFound
	}
	if p.Stock < quantity {
		return &InsufficientStockError{ProductID: productID, Available: p.Stock, Requested: quantity}
	}
	p.Stock -= quantity
	c.emit(eventlog.LevelInfo, "stock_reduced", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
		"remaining":  p.Stock,
	})
	return nil
}

// RestoreStock adds quantity back to the product's stock. Used by rollback
// and cancellation paths.
func (c *Catalog) RestoreStock(productID, quantity int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[productID]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock += quantity
	c.emit(eventlog.LevelInfo, "stock_restored", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
		"remaining":  p.Stock,
	})
	return nil
}

func (c *Catalog) emit(level eventlog.Level, msg string, fields map[string]any) {
	if c.sink == nil {
		return
	}
	c.sink.Emit(eventlog.Event{Level: level, Message: msg, Fields: fields})
}
