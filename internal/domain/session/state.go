// internal/domain/session/state.go
package session

import (
	"strings"

	"atelier/internal/domain/cart"
)

// User is the authenticated identity attached to the session.
// At most one user is present; nil means "not logged in", and absence
// suppresses every server-bound cart call.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Valid reports whether the user carries a usable identity.
func (u *User) Valid() bool {
	return u != nil && strings.TrimSpace(u.ID) != ""
}

// State is the whole session snapshot.
//
// Lifecycle: created once with empty defaults, hydrated asynchronously from
// the persisted snapshot store, then only ever mutated through the store's
// dispatch. cart / wishlist / user are the persisted slices; the rest is
// transient UI state.
type State struct {
	Cart        []cart.Line `json:"cart"`
	User        *User       `json:"user,omitempty"`
	Wishlist    []string    `json:"wishlist"`
	IsLoading   bool        `json:"isLoading"`
	SearchQuery string      `json:"searchQuery"`
	Initialized bool        `json:"isInitialized"`
}

// NewState returns the all-empty default state.
func NewState() State {
	return State{
		Cart:     []cart.Line{},
		Wishlist: []string{},
	}
}

// Clone returns a deep-enough copy for read-only callers: slices are copied,
// the user pointer is duplicated.
func (s State) Clone() State {
	out := s
	out.Cart = cart.Clone(s.Cart)
	out.Wishlist = append([]string{}, s.Wishlist...)
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// InWishlist reports wishlist membership.
func (s State) InWishlist(productID string) bool {
	for _, id := range s.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleWishlist returns the wishlist with productID added if absent or
// removed if present (symmetric set toggle, insertion order kept).
func ToggleWishlist(wishlist []string, productID string) []string {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return wishlist
	}

	out := make([]string, 0, len(wishlist)+1)
	removed := false
	for _, id := range wishlist {
		if id == productID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, productID)
	}
	return out
}
