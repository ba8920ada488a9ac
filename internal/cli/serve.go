package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/a-detiste/parse-type/internal/httpapi"
	"github.com/a-detiste/parse-type/pkg/cache"
	"github.com/a-detiste/parse-type/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the parse-type HTTP API",
		Long: `Run the parse-type HTTP API.

By default schemas live in memory and results are not cached, which is
fine for local use. Pass --mongo for durable schema storage and --redis
for a shared result cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for result caching (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for schema storage (e.g. mongodb://localhost:27017)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string) error {
	cfg := httpapi.Config{Logger: c.Logger}

	if mongoURI != "" {
		st, err := store.NewMongoStore(ctx, mongoURI)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				c.Logger.Warn("close mongo store", "error", err)
			}
		}()
		cfg.Store = st
		c.Logger.Info("using mongodb schema store")
	}

	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return err
		}
		defer func() {
			if err := rc.Close(); err != nil {
				c.Logger.Warn("close redis cache", "error", err)
			}
		}()
		cfg.Results = rc
		c.Logger.Info("using redis result cache", "addr", redisAddr)
	}

	srv := httpapi.New(cfg)
	return srv.ListenAndServe(ctx, addr)
}
