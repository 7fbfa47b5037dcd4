// internal/application/session/ports.go
package session

import (
	"context"

	cartdom "atelier/internal/domain/cart"
)

// Persisted snapshot keys. Three independent JSON documents; each slice owns
// exactly one key, so the observers never write-conflict with each other.
const (
	SnapshotKeyCart     = "cart"
	SnapshotKeyWishlist = "wishlist"
	SnapshotKeyUser     = "user"
)

// SnapshotStore is the durable local key-value store the session persists
// into. Get returns (nil, false, nil) for an absent key.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// CartService is the remote authoritative cart collaborator.
//
// RemoveLine carries all four discriminators: the server keys lines by
// (product, color, size, unit price), because the same variant at two price
// points must stay two lines.
type CartService interface {
	ListCart(ctx context.Context, userID string) ([]cartdom.BackendLine, error)
	AddLine(ctx context.Context, userID, productID string, qty int, color, size string) error
	RemoveLine(ctx context.Context, userID, productID, color, size string, unitPrice int64) error
	Clear(ctx context.Context, userID string) error
}

// Notifier surfaces backend-first mutation failures to the user.
// The UI layer supplies the real implementation (alert/toast).
type Notifier interface {
	Notify(message string)
}

// NopNotifier discards notifications (headless runs, tests).
type NopNotifier struct{}

func (NopNotifier) Notify(string) {}

var _ Notifier = NopNotifier{}
