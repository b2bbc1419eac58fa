package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurotopo/trisect/internal/server"
	"github.com/neurotopo/trisect/pkg/cache"
	"github.com/neurotopo/trisect/pkg/errors"
	"github.com/neurotopo/trisect/pkg/pipeline"
	"github.com/neurotopo/trisect/pkg/store"
)

// defaultServeAddr is the default listen address for the REST service.
const defaultServeAddr = ":8632"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheURL string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis REST service",
		Long: `Run an HTTP service exposing the partition search.

POST a graph with search options to /api/v1/analyses and the service runs
the pipeline, stores the run, and returns the record. Runs live in memory
unless --mongo points at a MongoDB instance. Search results are cached in
the local file cache by default; point --cache at a Redis instance to
share the cache between replicas.

The service shuts down gracefully on SIGINT and SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !flags.Changed("mongo") && c.Config.Server.Mongo != "" {
				mongoURI = c.Config.Server.Mongo
			}
			if err := errors.ValidateServerAddr(addr); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, cacheURL, mongoURI)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringVar(&cacheURL, "cache", "", "cache backend: file (default), none, or redis://host:port[/db]")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB connection string for run storage (default in-memory)")

	return cmd
}

// runServe wires the runner, store, and HTTP server together and blocks
// until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr, cacheURL, mongoURI string) error {
	backend, err := c.serveCache(cacheURL)
	if err != nil {
		return err
	}

	// Search keys get an api: scope so a Redis instance shared with other
	// tools never collides.
	keyer := cache.NewScopedKeyer(nil, "api:")
	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	defer runner.Close()

	runs, err := c.serveStore(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer runs.Close(context.Background())

	printInfo("Listening on %s", addr)
	prog := newProgress(c.Logger)
	if err := server.New(runner, runs, c.Logger).Run(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	prog.done("Server stopped")
	return nil
}

// serveCache resolves the --cache flag, falling back to the config profile.
func (c *CLI) serveCache(raw string) (cache.Cache, error) {
	switch {
	case raw == "":
		return c.newCache(false)
	case raw == "none":
		return cache.NewNullCache(), nil
	case raw == "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case strings.HasPrefix(raw, "redis://"), strings.HasPrefix(raw, "rediss://"):
		return cache.NewRedisCacheFromURL(raw)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfiguration, "unknown cache backend %q", raw)
}

// serveStore picks the run store backend.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.RunStore, error) {
	if mongoURI == "" {
		printWarning("No MongoDB configured, runs are kept in memory")
		return store.NewMemoryStore(), nil
	}
	runs, err := store.NewMongoStore(ctx, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return runs, nil
}
