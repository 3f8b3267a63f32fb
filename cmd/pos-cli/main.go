// Package main is an interactive terminal front end driving the checkout
// core in-process: browse the catalog, build a cart, and produce invoices.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/cart"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/checkout"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/config"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/eventlog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

type ui struct {
	catalog  *catalog.Catalog
	cart     *cart.Cart
	svc      *checkout.Service
	sink     *eventlog.Capture
	products []model.Product
	cursor   int

	serviceCharge bool
	status        string
	invoice       string
}

func newUI(cfg config.Config) (*ui, error) {
	sink := &eventlog.Capture{}
	cat, err := catalog.New(catalog.Seed(), sink)
	if err != nil {
		return nil, err
	}
	return &ui{
		catalog:       cat,
		cart:          cart.New(),
		svc:           checkout.NewService(cat, sink, cfg.Seller(), cfg.InvoicePrefix),
		sink:          sink,
		products:      cat.ListAvailable(),
		serviceCharge: cfg.ServiceChargeDefault,
		status:        "Ready",
	}, nil
}

func (u *ui) Init() tea.Cmd {
	return nil
}

func (u *ui) selected() (model.Product, bool) {
	if u.cursor < 0 || u.cursor >= len(u.products) {
		return model.Product{}, false
	}
	return u.products[u.cursor], true
}

func (u *ui) refresh() {
	u.products = u.catalog.ListAvailable()
	if u.cursor >= len(u.products) {
		u.cursor = len(u.products) - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// report surfaces the outcome of a cart operation in the status line.
func (u *ui) report(err error, ok string) {
	if err != nil {
		u.status = fmt.Sprintf("Error: %v", err)
		return
	}
	u.status = ok
	u.refresh()
}

func (u *ui) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return u, nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		return u, tea.Quit
	case "up":
		if u.cursor > 0 {
			u.cursor--
		}
	case "down":
		if u.cursor < len(u.products)-1 {
			u.cursor++
		}
	case "a":
		if p, ok := u.selected(); ok {
			u.report(u.cart.AddItem(u.catalog, p.ID, 1), fmt.Sprintf("Added %s", p.Name))
		}
	case "+", "=":
		if p, ok := u.selected(); ok {
			u.report(u.cart.IncreaseQuantity(u.catalog, p.ID, 1), fmt.Sprintf("Increased %s", p.Name))
		}
	case "-":
		if p, ok := u.selected(); ok {
			u.report(u.cart.DecreaseQuantity(p.ID, 1), fmt.Sprintf("Decreased %s", p.Name))
		}
	case "x":
		if p, ok := u.selected(); ok {
			u.report(u.cart.RemoveItem(p.ID), fmt.Sprintf("Removed %s", p.Name))
		}
	case "s":
		u.serviceCharge = !u.serviceCharge
		u.status = fmt.Sprintf("Service charge: %v", u.serviceCharge)
	case "c":
		inv, err := u.svc.Process(u.cart, u.serviceCharge)
		if err != nil {
			u.status = fmt.Sprintf("Checkout failed: %v", err)
			break
		}
		u.cart.Clear()
		u.invoice = renderInvoice(inv)
		u.status = checkout.Summarize(inv)
		u.refresh()
	}
	return u, nil
}

func (u *ui) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "pos-checkout-simulator CLI")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Products:")
	for i, p := range u.products {
		marker := " "
		if i == u.cursor {
			marker = ">"
		}
		fmt.Fprintf(b, " %s [%d] %-28s %10s  stock %d\n", marker, p.ID, p.Name, p.UnitPrice.StringFixed(2), p.Stock)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Cart:")
	if u.cart.IsEmpty() {
		fmt.Fprintln(b, "  (empty)")
	} else {
		for _, li := range u.cart.Items() {
			fmt.Fprintf(b, "  %dx %-28s %10s\n", li.Quantity, li.Name, li.Amount().StringFixed(2))
		}
		fmt.Fprintf(b, "  Subtotal: %s\n", u.cart.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(b, "\nService charge: %v\n", u.serviceCharge)
	fmt.Fprintf(b, "Status: %s\n", u.status)
	if u.invoice != "" {
		fmt.Fprintf(b, "\n%s\n", u.invoice)
	}
	fmt.Fprintln(b, "\nControls: up/down select, a add, +/- adjust, x remove, s service charge, c checkout, q quit")
	return b.String()
}

func renderInvoice(inv model.Invoice) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s\n", inv.Seller.Name)
	fmt.Fprintf(b, "%s | %s | %s\n", inv.Seller.TaxID, inv.Seller.Address, inv.Seller.Phone)
	fmt.Fprintf(b, "Factura %s | %s\n", inv.ID, inv.IssuedAt.Format("2006-01-02 15:04"))
	for _, li := range inv.Lines {
		fmt.Fprintf(b, "  %dx %-28s %10s\n", li.Quantity, li.Name, li.Amount().StringFixed(2))
	}
	fmt.Fprintf(b, "  %-32s %10s\n", "Subtotal", inv.Subtotal.StringFixed(2))
	for _, t := range inv.Taxes {
		fmt.Fprintf(b, "  %-32s %10s\n", t.Label, t.Amount.StringFixed(2))
	}
	fmt.Fprintf(b, "  %-32s %10s\n", "Total", inv.Total.StringFixed(2))
	return b.String()
}

// runDemo performs a scripted add-and-checkout against the seed catalog and
// prints the invoice, useful for a quick smoke run without the TUI.
func runDemo(cfg config.Config) error {
	u, err := newUI(cfg)
	if err != nil {
		return err
	}
	for _, p := range u.products[:3] {
		if err := u.cart.AddItem(u.catalog, p.ID, 2); err != nil {
			return err
		}
	}
	inv, err := u.svc.Process(u.cart, true)
	if err != nil {
		return err
	}
	u.cart.Clear()
	fmt.Println(renderInvoice(inv))
	stats, err := checkout.Statistics(inv)
	if err != nil {
		return err
	}
	fmt.Printf("items=%d units=%d avg=%s priciest=%q cheapest=%q\n",
		stats.ItemCount, stats.TotalUnits, stats.AverageUnitPrice.StringFixed(2),
		stats.PriciestProduct, stats.CheapestProduct)
	return nil
}

func main() {
	demo := flag.Bool("demo", false, "run a scripted checkout and exit")
	flag.Parse()

	cfg := config.Load()
	if *demo {
		if err := runDemo(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	u, err := newUI(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	p := tea.NewProgram(u)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
