// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
)

// Config holds configuration knobs for the HTTP server, invoicing, and the
// event log.
type Config struct {
	HTTPAddr             string
	ShutdownTimeout      time.Duration
	InvoicePrefix        string
	ServiceChargeDefault bool
	EventTailSize        int

	SellerName    string
	SellerTaxID   string
	SellerAddress string
	SellerPhone   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := strings.ToLower(getenv(key, ""))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:      durenvs("SHUTDOWN_TIMEOUT", 15),
		InvoicePrefix:        getenv("INVOICE_PREFIX", "FACT"),
		ServiceChargeDefault: boolenv("SERVICE_CHARGE_DEFAULT", false),
		EventTailSize:        atoienv("EVENT_TAIL_SIZE", 256),
		SellerName:           getenv("SELLER_NAME", "Mini Súper El Trébol"),
		SellerTaxID:          getenv("SELLER_TAX_ID", "3-101-456789"),
		SellerAddress:        getenv("SELLER_ADDRESS", "Avenida Central, San José"),
		SellerPhone:          getenv("SELLER_PHONE", "+506 2222-3344"),
	}
}

// Seller assembles the static seller record stamped into invoices.
func (c Config) Seller() model.SellerInfo {
	return model.SellerInfo{
		Name:    c.SellerName,
		TaxID:   c.SellerTaxID,
		Address: c.SellerAddress,
		Phone:   c.SellerPhone,
	}
}
