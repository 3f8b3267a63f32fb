package checkout

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

// Summarize returns a one-line description of an invoice.
func Summarize(inv model.Invoice) string {
	return fmt.Sprintf("%s | %s | %d items | total %s",
		inv.ID, inv.IssuedAt.Format("2006-01-02"), len(inv.Lines), inv.Total.StringFixed(2))
}

// InvoiceStatistics aggregates read-only figures over one invoice.
type InvoiceStatistics struct {
	ItemCount        int             `json:"item_count"`
	TotalUnits       int64           `json:"total_units"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	Total            decimal.Decimal `json:"total"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
	PriciestProduct  string          `json:"priciest_product"`
	CheapestProduct  string          `json:"cheapest_product"`
}

// Statistics computes aggregate figures for an invoice. An invoice without
// units has no average unit price and is rejected; Process never produces
// one, since it refuses empty carts.
func Statistics(inv model.Invoice) (InvoiceStatistics, error) {
	units := inv.TotalUnits()
	if units == 0 {
		return InvoiceStatistics{}, errors.New("invoice has no units")
	}
	stats := InvoiceStatistics{
		ItemCount:        len(inv.Lines),
		TotalUnits:       units,
		Subtotal:         inv.Subtotal,
		TotalTax:         inv.TaxTotal(),
		Total:            inv.Total,
		AverageUnitPrice: inv.Subtotal.Div(decimal.NewFromInt(units)).Round(2),
	}
	var priciest, cheapest decimal.Decimal
	for i, li := range inv.Lines {
		if i == 0 || li.UnitPrice.GreaterThan(priciest) {
			priciest = li.UnitPrice
			stats.PriciestProduct = li.Name
		}
		if i == 0 || li.UnitPrice.LessThan(cheapest) {
			cheapest = li.UnitPrice
			stats.CheapestProduct = li.Name
		}
	}
	return stats, nil
}
