// internal/application/session/store.go
package session

import (
	"sync"

	"github.com/rs/zerolog"

	cartdom "atelier/internal/domain/cart"
	sessiondom "atelier/internal/domain/session"
)

// Store holds the session state and is its only mutator.
//
// It is an explicit, constructed object: there is no package-level instance,
// so tests (and multi-tenant embeddings) can run independent stores side by
// side. Dispatch is the single entry point; each transition is atomic under
// the store's mutex, the Go rendition of the source system's single-threaded
// dispatch guarantee. Across separate dispatches there is no ordering
// guarantee beyond "last dispatch wins".
type Store struct {
	mu        sync.Mutex
	state     sessiondom.State
	listeners []func(prev, next sessiondom.State)

	log zerolog.Logger
}

// NewStore creates a store with all-empty defaults (not yet hydrated).
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		state: sessiondom.NewState(),
		log:   log.With().Str("component", "session_store").Logger(),
	}
}

// Dispatch applies one action. The reducer cannot fail; a nil action is a
// no-op. Listeners observe (prev, next) synchronously, after the transition
// is committed and outside the state lock.
func (s *Store) Dispatch(a Action) {
	if s == nil || a == nil {
		return
	}

	s.mu.Lock()
	prev := s.state
	next := reduce(prev, a)
	s.state = next
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(prev.Clone(), next.Clone())
	}
}

// Snapshot returns a read-only copy of the current state.
func (s *Store) Snapshot() sessiondom.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers a state observer. Not removable; subscriptions live as
// long as the store (session lifetime).
func (s *Store) Subscribe(fn func(prev, next sessiondom.State)) {
	if s == nil || fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// CartTotal returns the sum of unit price × quantity over the cart.
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartdom.Total(s.state.Cart)
}

// CartItemsCount returns the sum of quantities over the cart.
func (s *Store) CartItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartdom.ItemCount(s.state.Cart)
}
