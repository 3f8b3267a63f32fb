// Package main boots the POS Checkout Simulator HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/checkout"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/config"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/eventlog"
	httpapi "github.com/fairyhunter13/pos-checkout-simulator/internal/http"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/obs"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	events := eventlog.NewLog(cfg.EventTailSize)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events.Start(ctx)

	cat, err := catalog.New(catalog.Seed(), events)
	if err != nil {
		obs.Logger.Error("catalog_seed_error", "error", err)
		os.Exit(1)
	}
	svc := checkout.NewService(cat, events, cfg.Seller(), cfg.InvoicePrefix)

	reg := prometheus.NewRegistry()
	metrics := obs.NewServerMetrics(reg)
	app := httpapi.NewApp(cfg, cat, svc, events, metrics)
	mux := httpapi.NewRouter(app, reg)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}

	events.CloseIntake()
	obs.Logger.Info("shutdown_drain_begin", "backlog_size", events.BacklogSize())
	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelDrain()
	if drained := events.DrainUntil(ctxDrain); !drained {
		obs.Logger.Warn("shutdown_drain_timeout")
	} else {
		obs.Logger.Info("shutdown_drain_complete")
	}
	obs.Logger.Info("service_stopped")
}
