package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ankitbhatnagartech/archcost/api"
	"github.com/ankitbhatnagartech/archcost/core/catalog"
	"github.com/ankitbhatnagartech/archcost/core/engine"
	"github.com/ankitbhatnagartech/archcost/internal/cache"
	"github.com/ankitbhatnagartech/archcost/internal/config"
	"github.com/ankitbhatnagartech/archcost/internal/logging"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the estimation HTTP API",
	Long: `Serve POST /estimate with ETag based conditional caching.

Responses are cached in memory under the request fingerprint for the
configured TTL. A request whose If-None-Match matches a cached entry is
answered with 304 Not Modified.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	srv, closeFn, err := buildServer(cfg, logging.Logger)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("starting archcost",
		zap.String("version", Version),
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("cache", cfg.Cache.Enabled),
	)
	return srv.ListenAndServe(ctx, cfg.Server)
}

// buildServer wires catalog, engine and cache into an API server. The
// returned func releases the cache sweeper.
func buildServer(cfg *config.Config, logger *zap.Logger) (*api.Server, func(), error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("catalog loaded", zap.Int("providers", cat.Len()))

	eng := engine.New(cat, logger.Named("engine"))

	var store *cache.Cache[api.CachedResponse]
	closeFn := func() {}
	if cfg.Cache.Enabled {
		store = cache.New[api.CachedResponse](cache.Options{
			TTL:             cfg.Cache.TTL(),
			MaxEntries:      cfg.Cache.MaxEntries,
			CleanupInterval: cfg.Cache.CleanupInterval(),
			Logger:          logger.Named("cache"),
		})
		closeFn = store.Close
	}

	srv := api.NewServer(eng, store, api.Options{
		Version:        Version,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		CacheTTL:       cfg.Cache.TTL(),
		Logger:         logger,
	})
	return srv, closeFn, nil
}
