package httpapi

import (
	"expvar"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/obs"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App, reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", app.listProductsHandler)
	mux.HandleFunc("/products/search", app.searchProductsHandler)
	mux.HandleFunc("/products/filter", app.filterProductsHandler)
	mux.HandleFunc("/cart", app.cartGetHandler)
	mux.HandleFunc("/cart/items", app.cartAddHandler)
	mux.HandleFunc("/cart/items/increase", app.cartIncreaseHandler)
	mux.HandleFunc("/cart/items/decrease", app.cartDecreaseHandler)
	mux.HandleFunc("/cart/items/remove", app.cartRemoveHandler)
	mux.HandleFunc("/checkout", app.checkoutHandler)
	mux.HandleFunc("/events", app.eventsHandler)
	mux.HandleFunc("/healthz", app.healthHandler)
	mux.Handle("/metrics", obs.MetricsHandler(reg))
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/openapi.yaml", app.openapiHandler)
	mux.HandleFunc("/docs", app.docsHandler)
	return WithRequestID(WithLogging(WithMetrics(app.Metrics, mux)))
}
