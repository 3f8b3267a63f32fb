package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]model.Product{
		{ID: 1, Name: "Widget", UnitPrice: price("10.00"), Stock: 5},
		{ID: 2, Name: "Gadget", UnitPrice: price("2.50"), Stock: 8},
	}, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return c
}

func expectSubtotal(t *testing.T, c *Cart, want string) {
	t.Helper()
	if got := c.Subtotal(); !got.Equal(price(want)) {
		t.Fatalf("expected subtotal %s, got %s", want, got)
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	if err := c.AddItem(cat, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddItem(cat, 1, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	expectSubtotal(t, c, "50.00")
}

func TestAddItemValidation(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	if err := c.AddItem(cat, 1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.AddItem(cat, 99, 1); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("failed adds must leave the cart empty")
	}
}

func TestAddItemCountsReservedQuantity(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	if err := c.AddItem(cat, 1, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := c.AddItem(cat, 1, 3)
	var insufficient *catalog.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 5 || insufficient.Requested != 6 {
		t.Fatalf("unexpected payload: %+v", insufficient)
	}
	if got := c.Quantity(1); got != 3 {
		t.Fatalf("failed add mutated the line: %d", got)
	}
}

func TestAddItemOverStockLeavesCartEmpty(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	err := c.AddItem(cat, 1, 10)
	var insufficient *catalog.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 5 || insufficient.Requested != 10 {
		t.Fatalf("unexpected payload: %+v", insufficient)
	}
	if !c.IsEmpty() {
		t.Fatalf("cart must remain empty")
	}
}

func TestRemoveItem(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 1, 1)
	_ = c.AddItem(cat, 2, 1)
	if err := c.RemoveItem(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("unexpected lines after remove: %+v", items)
	}
	if err := c.RemoveItem(1); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
}

func TestIncreaseQuantity(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 1, 2)
	if err := c.IncreaseQuantity(cat, 1, 3); err != nil {
		t.Fatalf("increase: %v", err)
	}
	if got := c.Quantity(1); got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
	if err := c.IncreaseQuantity(cat, 1, 1); err == nil {
		t.Fatalf("expected insufficient stock")
	}
	if err := c.IncreaseQuantity(cat, 1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := c.IncreaseQuantity(cat, 2, 1); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
}

func TestDecreaseQuantity(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 1, 4)
	if err := c.DecreaseQuantity(1, 1); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if got := c.Quantity(1); got != 3 {
		t.Fatalf("expected quantity 3, got %d", got)
	}
	// a delta covering the whole line removes it, not an error
	if err := c.DecreaseQuantity(1, 3); err != nil {
		t.Fatalf("decrease to zero: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("line must be removed when fully decreased")
	}
	if err := c.DecreaseQuantity(1, 1); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
	_ = c.AddItem(cat, 1, 2)
	if err := c.DecreaseQuantity(1, 5); err != nil {
		t.Fatalf("decrease beyond quantity: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("delta beyond quantity must remove the line")
	}
}

func TestSubtotalTracksEveryMutation(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	expectSubtotal(t, c, "0")
	_ = c.AddItem(cat, 1, 2)
	expectSubtotal(t, c, "20.00")
	_ = c.AddItem(cat, 2, 4)
	expectSubtotal(t, c, "30.00")
	_ = c.IncreaseQuantity(cat, 1, 1)
	expectSubtotal(t, c, "40.00")
	_ = c.DecreaseQuantity(2, 2)
	expectSubtotal(t, c, "35.00")
	_ = c.RemoveItem(1)
	expectSubtotal(t, c, "5.00")
}

func TestInsertionOrderPreserved(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 2, 1)
	_ = c.AddItem(cat, 1, 1)
	_ = c.AddItem(cat, 2, 1)
	items := c.Items()
	if len(items) != 2 || items[0].ProductID != 2 || items[1].ProductID != 1 {
		t.Fatalf("insertion order lost: %+v", items)
	}
}

func TestRevalidateAgainstCatalog(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 1, 4)
	if err := c.RevalidateAgainstCatalog(cat); err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	// another session takes the last units
	if err := cat.ReduceStock(1, 3); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	err := c.RevalidateAgainstCatalog(cat)
	var insufficient *catalog.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 2 || insufficient.Requested != 4 {
		t.Fatalf("unexpected payload: %+v", insufficient)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 1, 1)
	c.Clear()
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after clear")
	}
	c.Clear()
	if !c.IsEmpty() {
		t.Fatalf("clear must be idempotent")
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	cat := newTestCatalog(t)
	c := New()
	_ = c.AddItem(cat, 1, 2)
	items := c.Items()
	items[0].Quantity = 99
	if got := c.Quantity(1); got != 2 {
		t.Fatalf("Items must not alias internal lines, got %d", got)
	}
}
