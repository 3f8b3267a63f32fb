package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("INVOICE_PREFIX", "")
	t.Setenv("SERVICE_CHARGE_DEFAULT", "")
	t.Setenv("EVENT_TAIL_SIZE", "")
	t.Setenv("SELLER_NAME", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.InvoicePrefix != "FACT" {
		t.Fatalf("InvoicePrefix default")
	}
	if c.ServiceChargeDefault {
		t.Fatalf("ServiceChargeDefault default")
	}
	if c.EventTailSize != 256 {
		t.Fatalf("EventTailSize default")
	}
	if c.Seller().Name == "" {
		t.Fatalf("seller name default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("INVOICE_PREFIX", "TICKET")
	t.Setenv("SERVICE_CHARGE_DEFAULT", "true")
	t.Setenv("EVENT_TAIL_SIZE", "32")
	t.Setenv("SELLER_NAME", "Tienda Prueba")
	t.Setenv("SELLER_TAX_ID", "3-101-999999")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.InvoicePrefix != "TICKET" {
		t.Fatalf("InvoicePrefix env")
	}
	if !c.ServiceChargeDefault {
		t.Fatalf("ServiceChargeDefault env")
	}
	if c.EventTailSize != 32 {
		t.Fatalf("EventTailSize env")
	}
	s := c.Seller()
	if s.TaxID != "3-101-999999" {
		t.Fatalf("seller env")
	}
}
