// internal/application/session/service.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/catalog"
	sessiondom "atelier/internal/domain/session"
)

// Service is the mutation API around the store: it decides which operations
// are purely local dispatches and which must confirm with the remote cart
// collaborator first.
//
// Write-through policy (kept from the shipped storefront, on purpose):
// - RemoveFromCart / ClearCartFully are backend-first: local state changes
//   only after the server acknowledged, so those paths cannot diverge.
// - AddToCart is optimistic-local: it never calls the server itself. Callers
//   that need server durability pair it with PushCartLine, and RefreshCart
//   reconciles eventually. Surfacing staleness is the UI layer's job.
type Service struct {
	store  *Store
	kv     SnapshotStore
	api    CartService
	notify Notifier
	log    zerolog.Logger

	hydrateOnce sync.Once
}

// NewService wires the mutation API. api may be nil for offline/guest-only
// embeddings; every server-bound call then degrades to a no-op with a log
// line. notify may be nil (defaults to NopNotifier).
func NewService(store *Store, kv SnapshotStore, api CartService, notify Notifier, log zerolog.Logger) *Service {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Service{
		store:  store,
		kv:     kv,
		api:    api,
		notify: notify,
		log:    log.With().Str("component", "session_service").Logger(),
	}
}

// Store exposes the underlying store for read access and UI subscriptions.
func (svc *Service) Store() *Store {
	return svc.store
}

// AddToCart merges the product into the local cart. Optimistic-local:
// no remote call happens here (see the type comment).
func (svc *Service) AddToCart(p catalog.ProductSnapshot, qty int, color, size string) {
	svc.store.Dispatch(AddToCart{Product: p, Quantity: qty, Color: color, Size: size})
}

// PushCartLine forwards one added line to the remote cart. It does not touch
// local state; it exists so UI flows can pair it with AddToCart when the
// user is logged in. No-op without a user.
func (svc *Service) PushCartLine(ctx context.Context, productID string, qty int, color, size string) error {
	u := svc.currentUser()
	if !u.Valid() || svc.api == nil {
		return nil
	}
	if err := svc.api.AddLine(ctx, u.ID, strings.TrimSpace(productID), qty, color, size); err != nil {
		svc.log.Warn().Err(err).Str("productId", productID).Msg("remote add failed")
		return fmt.Errorf("session: push cart line: %w", err)
	}
	return nil
}

// RemoveFromCart removes one variant line, backend-first. The remote call
// carries all four discriminators (the server keys lines by unit price too).
// Only on success is the local line dropped; on failure the user is notified
// and local state is left unchanged.
func (svc *Service) RemoveFromCart(ctx context.Context, productID, color, size string, unitPrice int64) error {
	u := svc.currentUser()
	if !u.Valid() || svc.api == nil {
		return nil
	}

	if err := svc.api.RemoveLine(ctx, u.ID, strings.TrimSpace(productID), color, size, unitPrice); err != nil {
		svc.log.Warn().Err(err).Str("productId", productID).Msg("remote remove failed")
		svc.notify.Notify("カートから削除できませんでした。もう一度お試しください。")
		return fmt.Errorf("session: remove from cart: %w", err)
	}

	svc.store.Dispatch(RemoveFromCart{ProductID: productID, Color: color, Size: size})
	return nil
}

// UpdateCartQuantity is a local dispatch (quantity edits reconcile via
// RefreshCart). Empty color+size applies product-wide.
func (svc *Service) UpdateCartQuantity(productID, color, size string, qty int) {
	svc.store.Dispatch(UpdateCartQuantity{ProductID: productID, Color: color, Size: size, Quantity: qty})
}

// ClearCart empties the local cart only.
func (svc *Service) ClearCart() {
	svc.store.Dispatch(ClearCart{})
}

// ClearCartFully clears the server cart first, then the local one.
// Symmetric with RemoveFromCart: on failure, notify and leave state alone.
func (svc *Service) ClearCartFully(ctx context.Context) error {
	u := svc.currentUser()
	if !u.Valid() || svc.api == nil {
		return nil
	}

	if err := svc.api.Clear(ctx, u.ID); err != nil {
		svc.log.Warn().Err(err).Msg("remote clear failed")
		svc.notify.Notify("カートを空にできませんでした。もう一度お試しください。")
		return fmt.Errorf("session: clear cart: %w", err)
	}

	svc.store.Dispatch(ClearCart{})
	return nil
}

// RefreshCart rebuilds the local cart from the server's view: raw lines are
// grouped by (variant, color, size, unit price), quantities summed, and the
// result replaces the local cart wholesale. No-op without a user.
//
// Fail-soft: a collaborator error leaves the local cart untouched as
// last-known-good; the error is logged and returned, never partially
// applied.
func (svc *Service) RefreshCart(ctx context.Context) error {
	u := svc.currentUser()
	if !u.Valid() || svc.api == nil {
		return nil
	}

	raw, err := svc.api.ListCart(ctx, u.ID)
	if err != nil {
		svc.log.Warn().Err(err).Str("userId", u.ID).Msg("cart refresh failed, keeping local cart")
		return fmt.Errorf("session: refresh cart: %w", err)
	}

	lines := cartdom.GroupBackendLines(raw)
	svc.store.Dispatch(SetCartFromBackend{Lines: lines})

	svc.log.Debug().Str("userId", u.ID).Int("lines", len(lines)).Msg("cart refreshed from backend")
	return nil
}

// SetUser installs or clears the authenticated identity. Installing a
// different user triggers reconciliation; clearing it makes the sink remove
// the persisted user document (absence, not a null marker).
func (svc *Service) SetUser(ctx context.Context, u *sessiondom.User) {
	prev := svc.currentUser()

	svc.store.Dispatch(SetUser{User: u})

	if u.Valid() && (prev == nil || prev.ID != u.ID) {
		if err := svc.RefreshCart(ctx); err != nil {
			// already logged; login itself must not fail on a cart hiccup
			return
		}
	}
}

// ToggleWishlist flips wishlist membership (local only).
func (svc *Service) ToggleWishlist(productID string) {
	svc.store.Dispatch(ToggleWishlist{ProductID: productID})
}

// SetSearchQuery sets the transient search text.
func (svc *Service) SetSearchQuery(q string) {
	svc.store.Dispatch(SetSearchQuery{Query: q})
}

// SetLoading sets the transient loading flag.
func (svc *Service) SetLoading(v bool) {
	svc.store.Dispatch(SetLoading{Loading: v})
}

func (svc *Service) currentUser() *sessiondom.User {
	snap := svc.store.Snapshot()
	return snap.User
}
