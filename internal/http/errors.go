// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/cart"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/catalog"
	"github.com/fairyhunter13/pos-checkout-simulator/internal/checkout"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// writeDomainError maps core error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var insufficient *catalog.InsufficientStockError
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, catalog.ErrInvalidRange):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		WriteJSONError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, cart.ErrNotInCart):
		WriteJSONError(w, http.StatusNotFound, "not_in_cart", err.Error())
	case errors.As(err, &insufficient):
		WriteJSONError(w, http.StatusConflict, "insufficient_stock",
			fmt.Sprintf("product %d: %d available, %d requested",
				insufficient.ProductID, insufficient.Available, insufficient.Requested))
	case errors.Is(err, checkout.ErrEmptyCart):
		WriteJSONError(w, http.StatusConflict, "empty_cart", err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
