// Package checkout reconciles a cart against the catalog and turns it into
// an immutable invoice. It is the only place stock deductions are committed.
package checkout

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/cart"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/eventlog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Tax labels and rates. IVA applies to every checkout; the service charge is
// opt-in per call and always follows IVA in the breakdown.
const (
	vatLabel     = "IVA (13%)"
	serviceLabel = "Servicio (10%)"
)

var (
	vatRate     = decimal.New(13, -2)
	serviceRate = decimal.New(10, -2)
)

// Service runs checkouts against one shared catalog. Its mutex covers the
// whole revalidate-then-commit sequence so no interleaved checkout can
// observe a half-committed catalog; compose exactly one Service per catalog.
type Service struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	sink    eventlog.Sink
	seller  model.SellerInfo
	prefix  string

	now    func() time.Time
	suffix func() int
}

// NewService builds a checkout Service for the given catalog. prefix names
// the invoice id family and defaults to FACT.
func NewService(cat *catalog.Catalog, sink eventlog.Sink, seller model.SellerInfo, prefix string) *Service {
	if prefix == "" {
		prefix = "FACT"
	}
	return &Service{
		catalog: cat,
		sink:    sink,
		seller:  seller,
		prefix:  prefix,
		now:     time.Now,
		suffix:  randomSuffix,
	}
}

// randomSuffix draws the 4-digit invoice suffix from [1000, 9999).
func randomSuffix() int {
	return 1000 + rand.IntN(8999)
}

// Process validates the cart against the catalog, computes taxes and totals,
// commits stock deductions all-or-nothing, and returns the invoice. On any
// failure the catalog and cart are left exactly as they were. The caller
// clears the cart after a successful return; Process never mutates it.
func (s *Service) Process(c *cart.Cart, applyServiceCharge bool) (model.Invoice, error) {
	if c.IsEmpty() {
		return model.Invoice{}, ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := c.RevalidateAgainstCatalog(s.catalog); err != nil {
		s.emit(eventlog.LevelWarning, "checkout_rejected", map[string]any{"reason": err.Error()})
		return model.Invoice{}, err
	}

	subtotal := c.Subtotal()
	taxes := []model.TaxLine{
		{Label: vatLabel, Amount: subtotal.Mul(vatRate).Round(2)},
	}
	if applyServiceCharge {
		taxes = append(taxes, model.TaxLine{Label: serviceLabel, Amount: subtotal.Mul(serviceRate).Round(2)})
	}
	total := subtotal
	for _, t := range taxes {
		total = total.Add(t.Amount)
	}

	lines := c.Items()
	if err := s.commit(lines); err != nil {
		s.emit(eventlog.LevelError, "checkout_commit_failed", map[string]any{"reason": err.Error()})
		return model.Invoice{}, err
	}

	inv := model.Invoice{
		ID:       s.newInvoiceID(),
		IssuedAt: s.now().UTC(),
		Lines:    lines,
		Subtotal: subtotal,
		Taxes:    taxes,
		Total:    total,
		Seller:   s.seller,
	}
	s.emit(eventlog.LevelInfo, "checkout_completed", map[string]any{
		"invoice_id": inv.ID,
		"lines":      len(inv.Lines),
		"total":      inv.Total.StringFixed(2),
	})
	return inv, nil
}

// commit deducts stock for every line in cart order. Revalidation already
// passed under the same mutex, so failure here means a committer outside
// this service raced us; partial deductions are restored before returning.
func (s *Service) commit(lines []model.LineItem) error {
	for i, li := range lines {
		if err := s.catalog.ReduceStock(li.ProductID, li.Quantity); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := s.catalog.RestoreStock(lines[j].ProductID, lines[j].Quantity); rerr != nil {
					return errors.Wrapf(rerr, "rollback of product %d failed", lines[j].ProductID)
				}
			}
			return err
		}
	}
	return nil
}

func (s *Service) newInvoiceID() string {
	return fmt.Sprintf("%s-%s-%04d", s.prefix, s.now().Format("20060102"), s.suffix())
}

func (s *Service) emit(level eventlog.Level, msg string, fields map[string]any) {
	if s.sink == nil {
		return
	}
	s.sink.Emit(eventlog.Event{Level: level, Message: msg, Fields: fields})
}
