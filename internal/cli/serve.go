package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crossred/crossred/internal/config"
	"github.com/crossred/crossred/internal/httpapi"
	"github.com/crossred/crossred/pkg/cache"
	"github.com/crossred/crossred/pkg/store"
)

// newServeCmd creates the HTTP API server command.
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the crossred HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			c, err := buildCache(cfg.Cache)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := buildStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			srv := httpapi.New(c, st)
			srv.TTL = cfg.Cache.TTLDuration()

			httpServer := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Router()}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("listening on %s", cfg.Server.Addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	return cmd
}

func buildCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedisCache(cfg.RedisAddr)
	case "none":
		return cache.NewNullCache(), nil
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

func buildStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	if cfg.Backend == "mongo" {
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database)
	}
	return store.NewMemoryStore(), nil
}
