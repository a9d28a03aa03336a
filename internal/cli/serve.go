package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarlsen/argmap/internal/server"
	"github.com/mkarlsen/argmap/pkg/cache"
	"github.com/mkarlsen/argmap/pkg/pipeline"
	"github.com/mkarlsen/argmap/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redis     string
		mongoURI  string
		namespace string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the argmap HTTP API",
		Long: `Run the argmap HTTP API.

The server exposes the layout pipeline over HTTP: POST a graph, get back
positioned nodes and rendered artifacts. With --redis the result cache is
shared across instances; without it a local file cache is used. With
--mongo-uri computed layouts can be archived and listed later; without it
the archive endpoints use in-process storage that is lost on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redis, mongoURI, namespace, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongodb URI for the layout archive")
	cmd.Flags().StringVar(&namespace, "cache-namespace", "", "prefix for cache keys when sharing a redis instance")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache, archive, and runner, then serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redis, mongoURI, namespace string, noCache bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if addr == "" {
		addr = ":8080"
	}
	if redis == "" {
		redis = cfg.Server.Redis
	}
	if mongoURI == "" {
		mongoURI = cfg.Server.MongoURI
	}
	if namespace == "" {
		namespace = cfg.Server.Namespace
	}

	resultCache, err := newServeCache(ctx, redis, noCache)
	if err != nil {
		return err
	}

	archive, err := newServeArchive(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer archive.Close(context.Background())
	if mongoURI == "" {
		printWarning("Archive is in-memory; archived layouts are lost on restart")
	}

	runner := pipeline.NewRunner(resultCache, newServeKeyer(namespace), c.Logger)
	defer runner.Close()

	c.Logger.Info("starting server", "addr", addr, "redis", redis != "", "mongo", mongoURI != "")
	return server.New(runner, archive, c.Logger).Run(ctx, server.Config{Addr: addr})
}

// newServeKeyer scopes cache keys when a namespace is configured, so
// several deployments can share one redis instance without colliding.
// An empty namespace returns nil and the runner falls back to the
// default keyer.
func newServeKeyer(namespace string) cache.Keyer {
	if namespace == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, namespace+":")
}

// newServeCache picks the cache backend: redis when configured, otherwise
// the local file cache.
func newServeCache(ctx context.Context, redis string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redis != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redis})
		if err != nil {
			return nil, fmt.Errorf("initialize redis cache: %w", err)
		}
		return c, nil
	}
	return newCache(false)
}

// newServeArchive picks the archive backend: mongo when configured,
// otherwise in-process memory.
func newServeArchive(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	if err != nil {
		return nil, fmt.Errorf("initialize archive: %w", err)
	}
	return s, nil
}
