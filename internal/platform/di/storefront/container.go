// internal/platform/di/storefront/container.go
package storefrontDI

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	fsadapter "atelier/internal/adapters/out/firestore"
	"atelier/internal/adapters/out/localkv"
	"atelier/internal/adapters/out/mallapi"
	appsession "atelier/internal/application/session"
	"atelier/internal/infra/config"
	"atelier/internal/platform/logging"
)

// Container wires the storefront session runtime:
// config → logger → snapshot store → cart collaborator → store/sink/service.
// Construction also runs the one-shot hydration, so a built container is
// ready to serve dispatches.
type Container struct {
	Cfg *config.Config
	Log zerolog.Logger

	Snapshots appsession.SnapshotStore
	CartAPI   appsession.CartService

	Store   *appsession.Store
	Session *appsession.Service

	closers []func() error
}

// New builds and hydrates the container. notify may be nil.
func New(ctx context.Context, notify appsession.Notifier) (*Container, error) {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	c := &Container{Cfg: cfg, Log: log}

	// snapshot store: sqlite file; fall back to memory so a broken local
	// disk degrades to a guest-like session instead of failing boot
	if kv, err := localkv.Open(cfg.SnapshotDBPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.SnapshotDBPath).Msg("snapshot db unavailable, using in-memory store")
		c.Snapshots = localkv.NewMemoryStore()
	} else {
		c.Snapshots = kv
		c.closers = append(c.closers, kv.Close)
	}

	api, err := c.buildCartService(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.CartAPI = api

	c.Store = appsession.NewStore(log)

	sink := appsession.NewSink(c.Snapshots, log)
	sink.Bind(c.Store)

	c.Session = appsession.NewService(c.Store, c.Snapshots, c.CartAPI, notify, log)
	c.Session.Hydrate(ctx)

	return c, nil
}

// buildCartService picks the collaborator transport:
// mall API when a base URL is configured, Firestore direct-read when only a
// project id is, nil (offline/guest mode) otherwise.
func (c *Container) buildCartService(ctx context.Context) (appsession.CartService, error) {
	if c.Cfg.MallAPIBaseURL != "" {
		c.Log.Info().Str("baseUrl", c.Cfg.MallAPIBaseURL).Msg("cart collaborator: mall api")
		return mallapi.NewClient(c.Cfg.MallAPIBaseURL), nil
	}

	if c.Cfg.FirestoreProjectID != "" {
		var opts []option.ClientOption
		if c.Cfg.FirestoreCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(c.Cfg.FirestoreCredentialsFile))
		}
		client, err := firestore.NewClient(ctx, c.Cfg.FirestoreProjectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("storefront di: firestore client: %w", err)
		}
		c.closers = append(c.closers, client.Close)

		c.Log.Info().Str("project", c.Cfg.FirestoreProjectID).Msg("cart collaborator: firestore direct read")
		return fsadapter.NewCartServiceFS(client), nil
	}

	c.Log.Info().Msg("cart collaborator: none (offline mode)")
	return nil, nil
}

// Close releases owned resources in reverse construction order.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
