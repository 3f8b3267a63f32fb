package httpapi

import (
	"sync"

	"github.com/fairyhunter13/pos-checkout-simulator/internal/cart"
)

// session pairs a cart with its own mutex. Carts are single-owner state;
// the mutex keeps concurrent requests for the same session id serialized.
type session struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// sessionRegistry hands out the session for a given id, creating it on
// first use.
type sessionRegistry struct {
	mu sync.Mutex
	m  map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{m: make(map[string]*session)}
}

func (r *sessionRegistry) get(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[id]
	if !ok {
		s = &session{cart: cart.New()}
		r.m[id] = s
	}
	return s
}

// lookup returns the session without creating one; reads stay reads.
func (r *sessionRegistry) lookup(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[id]
	return s, ok
}
