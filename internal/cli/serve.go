package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planark/planark/internal/server"
	"github.com/planark/planark/pkg/cache"
	"github.com/planark/planark/pkg/pipeline"
	"github.com/planark/planark/pkg/store"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planarity HTTP API",
		Long: `Run an HTTP server exposing the planarity pipeline.

Backends come from ~/.config/planark/config.toml: a Redis address switches
the cache from local files to Redis, and a MongoDB URI persists embeddings
across restarts. Without them the server uses the file cache and an
in-memory store.`,
		Example: `  # Listen on the configured address (default :8080)
  planark serve

  # Listen on a specific address
  planark serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if addr == "" {
				addr = c.Config.Server.Addr
			}

			cch, err := c.serveCache(ctx)
			if err != nil {
				return err
			}
			st, err := c.serveStore(ctx)
			if err != nil {
				_ = cch.Close()
				return err
			}

			runner := pipeline.NewRunner(cch, nil, c.Logger)
			srv := server.New(runner, st, c.Logger)
			defer srv.Close(context.Background())

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// serveCache builds the server cache: Redis when configured, the file cache
// otherwise.
func (c *CLI) serveCache(ctx context.Context) (cache.Cache, error) {
	if c.Config.Cache.Redis != "" {
		cch, err := cache.NewRedisCache(ctx, c.Config.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", c.Config.Cache.Redis)
		return cch, nil
	}
	return c.newCache(false)
}

// serveStore builds the embedding store: MongoDB when configured, in-memory
// otherwise.
func (c *CLI) serveStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.MongoURI != "" {
		st, err := store.NewMongoStore(ctx, c.Config.Store.MongoURI, c.Config.Store.Database)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Info("using mongodb store", "database", c.Config.Store.Database)
		return st, nil
	}
	c.Logger.Warn("no store configured, embeddings will not survive restarts")
	return store.NewMemoryStore(), nil
}
