package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/config"
)

func press(t *testing.T, u *ui, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	if _, cmd := u.Update(msg); cmd != nil {
		t.Fatalf("unexpected command from key %q", key)
	}
}

func newTestUI(t *testing.T) *ui {
	t.Helper()
	u, err := newUI(config.Load())
	if err != nil {
		t.Fatalf("newUI: %v", err)
	}
	return u
}

func TestAddKeyUpdatesCartAndStatus(t *testing.T) {
	u := newTestUI(t)
	selected, ok := u.selected()
	if !ok {
		t.Fatalf("no product selected")
	}
	press(t, u, "a")
	if u.cart.Quantity(selected.ID) != 1 {
		t.Fatalf("expected one unit of %d in cart", selected.ID)
	}
	if !strings.Contains(u.status, "Added") {
		t.Fatalf("status must report the add, got %q", u.status)
	}
}

func TestCartErrorSurfacesInStatus(t *testing.T) {
	u := newTestUI(t)
	// decreasing a product that was never added fails and must be shown
	press(t, u, "-")
	if !strings.Contains(u.status, "Error") || !strings.Contains(u.status, "not in cart") {
		t.Fatalf("status must carry the error, got %q", u.status)
	}
	if !u.cart.IsEmpty() {
		t.Fatalf("failed operation mutated the cart")
	}
}

func TestAdjustAndRemoveKeys(t *testing.T) {
	u := newTestUI(t)
	selected, _ := u.selected()
	press(t, u, "a")
	press(t, u, "+")
	if got := u.cart.Quantity(selected.ID); got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
	press(t, u, "-")
	if got := u.cart.Quantity(selected.ID); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
	press(t, u, "x")
	if !u.cart.IsEmpty() {
		t.Fatalf("expected empty cart after remove")
	}
	if !strings.Contains(u.status, "Removed") {
		t.Fatalf("status must report the removal, got %q", u.status)
	}
}

func TestCheckoutKeyProducesInvoice(t *testing.T) {
	u := newTestUI(t)
	press(t, u, "a")
	press(t, u, "c")
	if u.invoice == "" {
		t.Fatalf("expected rendered invoice")
	}
	if !u.cart.IsEmpty() {
		t.Fatalf("cart must be cleared after checkout")
	}
	if !strings.Contains(u.invoice, "Factura") {
		t.Fatalf("invoice header missing: %q", u.invoice)
	}
}

func TestRenderInvoiceIsASCIISeparated(t *testing.T) {
	u := newTestUI(t)
	press(t, u, "a")
	press(t, u, "c")
	for _, r := range u.invoice {
		if r == '—' {
			t.Fatalf("invoice rendering must not use em-dashes: %q", u.invoice)
		}
	}
	if !strings.Contains(u.invoice, " | ") {
		t.Fatalf("expected pipe-separated invoice header: %q", u.invoice)
	}
}
