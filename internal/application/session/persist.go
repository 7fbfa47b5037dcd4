// internal/application/session/persist.go
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	sessiondom "atelier/internal/domain/session"
)

// Sink mirrors the persisted slices (cart, wishlist, user) into the snapshot
// store. It holds three independent observers, one per slice; each rewrites
// its own key only when the serialized form actually changed, so a dispatch
// that touches the cart never rewrites the wishlist document.
//
// The user observer removes the key outright on logout instead of writing a
// null marker: "never persisted" and "logged out" are deliberately
// indistinguishable, which keeps hydration simple.
type Sink struct {
	kv  SnapshotStore
	log zerolog.Logger

	mu           sync.Mutex
	lastCart     []byte
	lastWishlist []byte
	lastUser     []byte
}

// NewSink creates a sink over the snapshot store.
func NewSink(kv SnapshotStore, log zerolog.Logger) *Sink {
	return &Sink{
		kv:  kv,
		log: log.With().Str("component", "session_sink").Logger(),
	}
}

// Bind subscribes the sink to the store. Call after Hydrate-relevant wiring;
// every subsequent dispatch is observed.
func (p *Sink) Bind(store *Store) {
	if p == nil || store == nil {
		return
	}
	store.Subscribe(func(_, next sessiondom.State) {
		p.observe(next)
	})
}

func (p *Sink) observe(next sessiondom.State) {
	ctx := context.Background()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.writeSlice(ctx, SnapshotKeyCart, next.Cart, &p.lastCart)
	p.writeSlice(ctx, SnapshotKeyWishlist, next.Wishlist, &p.lastWishlist)
	p.writeUser(ctx, next.User)
}

// writeSlice re-serializes one slice and writes it when changed.
// A marshal or store failure is logged only; the other keys are unaffected.
func (p *Sink) writeSlice(ctx context.Context, key string, v any, last *[]byte) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("snapshot marshal failed")
		return
	}
	if bytes.Equal(raw, *last) {
		return
	}
	if err := p.kv.Set(ctx, key, raw); err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("snapshot write failed")
		return
	}
	*last = raw
}

func (p *Sink) writeUser(ctx context.Context, u *sessiondom.User) {
	if u == nil {
		if p.lastUser == nil {
			return
		}
		if err := p.kv.Remove(ctx, SnapshotKeyUser); err != nil {
			p.log.Error().Err(err).Str("key", SnapshotKeyUser).Msg("snapshot remove failed")
			return
		}
		p.lastUser = nil
		return
	}
	p.writeSlice(ctx, SnapshotKeyUser, u, &p.lastUser)
}
