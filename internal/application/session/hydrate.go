// internal/application/session/hydrate.go
package session

import (
	"context"
	"encoding/json"

	cartdom "atelier/internal/domain/cart"
	sessiondom "atelier/internal/domain/session"
)

// Hydrate populates the store from the persisted snapshot keys. It runs once
// per service (subsequent calls are no-ops).
//
// Per-key policy: a missing key contributes nothing; a key that fails to
// decode is logged and skipped, leaving the other keys unaffected (partial
// hydration is acceptable). Whatever the outcome, Initialized ends up true
// exactly once.
func (svc *Service) Hydrate(ctx context.Context) {
	if svc == nil {
		return
	}

	svc.hydrateOnce.Do(func() {
		var p Persisted
		recovered := false

		if raw, ok := svc.readKey(ctx, SnapshotKeyCart); ok {
			var lines []cartdom.Line
			if err := json.Unmarshal(raw, &lines); err != nil {
				svc.log.Warn().Err(err).Str("key", SnapshotKeyCart).Msg("persisted cart is unreadable, skipping")
			} else {
				p.Cart = lines
				recovered = true
			}
		}

		if raw, ok := svc.readKey(ctx, SnapshotKeyWishlist); ok {
			var ids []string
			if err := json.Unmarshal(raw, &ids); err != nil {
				svc.log.Warn().Err(err).Str("key", SnapshotKeyWishlist).Msg("persisted wishlist is unreadable, skipping")
			} else {
				p.Wishlist = ids
				recovered = true
			}
		}

		if raw, ok := svc.readKey(ctx, SnapshotKeyUser); ok {
			var u sessiondom.User
			if err := json.Unmarshal(raw, &u); err != nil {
				svc.log.Warn().Err(err).Str("key", SnapshotKeyUser).Msg("persisted user is unreadable, skipping")
			} else {
				p.User = &u
				recovered = true
			}
		}

		if recovered {
			svc.store.Dispatch(LoadPersistedState{Persisted: p})
		} else {
			svc.store.Dispatch(SetInitialized{Initialized: true})
		}
	})
}

// readKey reads one snapshot key; read errors are treated like absence
// (logged, hydration proceeds).
func (svc *Service) readKey(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := svc.kv.Get(ctx, key)
	if err != nil {
		svc.log.Warn().Err(err).Str("key", key).Msg("snapshot read failed, skipping")
		return nil, false
	}
	if !ok || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}
