package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/checkout"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/config"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/eventlog"
	httpopenapi "github.com/fairyhunter13/pos-checkout-simulator/internal/http/openapi"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/model"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/obs"
)

// App wires the HTTP handlers to the core components.
type App struct {
	Cfg      config.Config
	Catalog  *catalog.Catalog
	Checkout *checkout.Service
	Events   *eventlog.Log
	Metrics  *obs.ServerMetrics
	sessions *sessionRegistry
	started  time.Time
}

// NewApp constructs the HTTP application around the shared core.
func NewApp(cfg config.Config, cat *catalog.Catalog, svc *checkout.Service, events *eventlog.Log, m *obs.ServerMetrics) *App {
	return &App{
		Cfg:      cfg,
		Catalog:  cat,
		Checkout: svc,
		Events:   events,
		Metrics:  m,
		sessions: newSessionRegistry(),
		started:  time.Now(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	products := a.Catalog.ListAvailable()
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (a *App) searchProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	term := r.URL.Query().Get("q")
	if strings.TrimSpace(term) == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "q is required")
		return
	}
	results := a.Catalog.Search(term)
	if results == nil {
		results = []model.Product{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (a *App) filterProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	q := r.URL.Query()
	minStr := q.Get("min")
	if minStr == "" {
		minStr = "0"
	}
	maxStr := q.Get("max")
	if maxStr == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "max is required")
		return
	}
	min, err := decimal.NewFromString(minStr)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "min must be a decimal")
		return
	}
	max, err := decimal.NewFromString(maxStr)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "max must be a decimal")
		return
	}
	results, err := a.Catalog.FilterByPriceRange(min, max)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if results == nil {
		results = []model.Product{}
	}
	writeJSON(w, http.StatusOK, results)
}

type cartItemRequest struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity,omitempty"`
}

func (a *App) decodeCartRequest(w http.ResponseWriter, r *http.Request) (*cartItemRequest, bool) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return nil, false
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return nil, false
	}
	var req cartItemRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return nil, false
	}
	if req.SessionID == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "session_id is required")
		return nil, false
	}
	return &req, true
}

// cartView is the read-only cart representation for UI callers.
type cartView struct {
	SessionID string           `json:"session_id"`
	Items     []model.LineItem `json:"items"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Empty     bool             `json:"empty"`
}

func (a *App) viewOf(sessionID string, s *session) cartView {
	items := s.cart.Items()
	if items == nil {
		items = []model.LineItem{}
	}
	return cartView{
		SessionID: sessionID,
		Items:     items,
		Subtotal:  s.cart.Subtotal(),
		Empty:     s.cart.IsEmpty(),
	}
}

func (a *App) cartGetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	sid := r.URL.Query().Get("session_id")
	if sid == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "session_id is required")
		return
	}
	s, ok := a.sessions.lookup(sid)
	if !ok {
		writeJSON(w, http.StatusOK, cartView{SessionID: sid, Items: []model.LineItem{}, Subtotal: decimal.Zero, Empty: true})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, a.viewOf(sid, s))
}

func (a *App) cartAddHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeCartRequest(w, r)
	if !ok {
		return
	}
	s := a.sessions.get(req.SessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.AddItem(a.Catalog, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(req.SessionID, s))
}

func (a *App) cartIncreaseHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeCartRequest(w, r)
	if !ok {
		return
	}
	s := a.sessions.get(req.SessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.IncreaseQuantity(a.Catalog, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(req.SessionID, s))
}

func (a *App) cartDecreaseHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeCartRequest(w, r)
	if !ok {
		return
	}
	s := a.sessions.get(req.SessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.DecreaseQuantity(req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(req.SessionID, s))
}

func (a *App) cartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeCartRequest(w, r)
	if !ok {
		return
	}
	s := a.sessions.get(req.SessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.RemoveItem(req.ProductID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(req.SessionID, s))
}

type checkoutRequest struct {
	SessionID     string `json:"session_id"`
	ServiceCharge *bool  `json:"service_charge,omitempty"`
}

type checkoutResponse struct {
	Invoice    model.Invoice              `json:"invoice"`
	Summary    string                     `json:"summary"`
	Statistics checkout.InvoiceStatistics `json:"statistics"`
}

func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	var req checkoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.SessionID == "" {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "session_id is required")
		return
	}
	serviceCharge := a.Cfg.ServiceChargeDefault
	if req.ServiceCharge != nil {
		serviceCharge = *req.ServiceCharge
	}

	s := a.sessions.get(req.SessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, err := a.Checkout.Process(s.cart, serviceCharge)
	if err != nil {
		a.Metrics.Checkouts.WithLabelValues("rejected").Inc()
		writeDomainError(w, err)
		return
	}
	s.cart.Clear()
	a.Metrics.Checkouts.WithLabelValues("completed").Inc()

	stats, err := checkout.Statistics(inv)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Invoice:    inv,
		Summary:    checkout.Summarize(inv),
		Statistics: stats,
	})
}

func (a *App) eventsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteJSONError(w, http.StatusBadRequest, "validation_error", "n must be a non-negative integer")
			return
		}
		n = parsed
	}
	events := a.Events.Tail(n)
	if events == nil {
		events = []eventlog.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": time.Since(a.started).Seconds(),
	})
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
