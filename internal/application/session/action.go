// internal/application/session/action.go
package session

import (
	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/catalog"
	sessiondom "atelier/internal/domain/session"
)

// Action is the closed set of state transitions the store accepts.
// The unexported marker keeps the set sealed to this package, so an unknown
// action shape is a compile error for callers rather than a runtime case.
type Action interface {
	isAction()
}

// AddToCart merges (product, color, size) into the cart, incrementing
// quantity when the variant line already exists. Purely local: no remote
// call happens on this path.
type AddToCart struct {
	Product  catalog.ProductSnapshot
	Quantity int // <= 0 is treated as 1
	Color    string
	Size     string
}

// SetCartFromBackend replaces the whole cart with the supplied lines.
// This is the authoritative overwrite path used by reconciliation.
type SetCartFromBackend struct {
	Lines []cartdom.Line
}

// RemoveFromCart drops lines matching the exact variant tuple.
type RemoveFromCart struct {
	ProductID string
	Color     string
	Size      string
}

// UpdateCartQuantity sets quantity to max(0, Quantity) and prunes zero lines.
// With Color and Size both empty it applies product-wide; with either set it
// touches only the exact variant line.
type UpdateCartQuantity struct {
	ProductID string
	Color     string
	Size      string
	Quantity  int
}

// ClearCart empties the cart unconditionally (local only).
type ClearCart struct{}

// ToggleWishlist flips wishlist membership for the product.
type ToggleWishlist struct {
	ProductID string
}

// SetUser installs (or, with nil, clears) the authenticated identity.
type SetUser struct {
	User *sessiondom.User
}

// SetLoading sets the transient loading flag.
type SetLoading struct {
	Loading bool
}

// SetSearchQuery sets the transient search text.
type SetSearchQuery struct {
	Query string
}

// SetInitialized marks the first hydration attempt as complete.
type SetInitialized struct {
	Initialized bool
}

// Persisted is the recoverable subset of the state. A nil slice/pointer means
// "nothing recovered for this key" and leaves the current value untouched.
type Persisted struct {
	Cart     []cartdom.Line
	Wishlist []string
	User     *sessiondom.User
}

// LoadPersistedState merges a recovered partial state and forces
// Initialized=true regardless of what was recovered.
type LoadPersistedState struct {
	Persisted Persisted
}

func (AddToCart) isAction()          {}
func (SetCartFromBackend) isAction() {}
func (RemoveFromCart) isAction()     {}
func (UpdateCartQuantity) isAction() {}
func (ClearCart) isAction()          {}
func (ToggleWishlist) isAction()     {}
func (SetUser) isAction()            {}
func (SetLoading) isAction()         {}
func (SetSearchQuery) isAction()     {}
func (SetInitialized) isAction()     {}
func (LoadPersistedState) isAction() {}

// reduce derives the next state from the current state and one action.
// It performs no I/O and cannot fail; a nil action is a no-op.
func reduce(s sessiondom.State, a Action) sessiondom.State {
	switch a := a.(type) {
	case AddToCart:
		s.Cart = cartdom.Add(s.Cart, a.Product, a.Quantity, a.Color, a.Size)

	case SetCartFromBackend:
		s.Cart = cartdom.Normalize(a.Lines)

	case RemoveFromCart:
		s.Cart = cartdom.Remove(s.Cart, a.ProductID, a.Color, a.Size)

	case UpdateCartQuantity:
		s.Cart = cartdom.SetQuantity(s.Cart, a.ProductID, a.Color, a.Size, a.Quantity)

	case ClearCart:
		s.Cart = []cartdom.Line{}

	case ToggleWishlist:
		s.Wishlist = sessiondom.ToggleWishlist(s.Wishlist, a.ProductID)

	case SetUser:
		s.User = a.User

	case SetLoading:
		s.IsLoading = a.Loading

	case SetSearchQuery:
		s.SearchQuery = a.Query

	case SetInitialized:
		s.Initialized = a.Initialized

	case LoadPersistedState:
		if a.Persisted.Cart != nil {
			s.Cart = cartdom.Normalize(a.Persisted.Cart)
		}
		if a.Persisted.Wishlist != nil {
			s.Wishlist = a.Persisted.Wishlist
		}
		if a.Persisted.User != nil {
			s.User = a.Persisted.User
		}
		s.Initialized = true
	}

	return s
}
