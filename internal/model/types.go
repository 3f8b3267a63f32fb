// Package model defines domain value types shared across the service.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Stock is the only field that changes after
// construction, and only through the catalog's reduce/restore operations.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int64           `json:"stock"`
}

// LineItem is one product-quantity pair inside a cart. Name and unit price
// are snapshotted from the product when the line is created.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// Amount returns quantity times unit price for the line.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// TaxLine is one labelled tax amount on an invoice. Line order is
// significant: IVA comes first, the optional service charge second.
type TaxLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SellerInfo identifies the issuing business on an invoice.
type SellerInfo struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Invoice is the immutable record produced by a successful checkout.
// Lines are a snapshot copy; they never alias a live cart.
type Invoice struct {
	ID       string          `json:"id"`
	IssuedAt time.Time       `json:"issued_at"`
	Lines    []LineItem      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Taxes    []TaxLine       `json:"taxes"`
	Total    decimal.Decimal `json:"total"`
	Seller   SellerInfo      `json:"seller"`
}

// TaxTotal sums the amounts of all tax lines.
func (inv Invoice) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range inv.Taxes {
		total = total.Add(t.Amount)
	}
	return total
}

// TotalUnits sums the quantities of all invoice lines.
func (inv Invoice) TotalUnits() int64 {
	var units int64
	for _, li := range inv.Lines {
		units += li.Quantity
	}
	return units
}
