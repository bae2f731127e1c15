package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/placemat/pkg/cache"
	"github.com/matzehuels/placemat/pkg/pipeline"
	"github.com/matzehuels/placemat/pkg/service"
	"github.com/matzehuels/placemat/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after an interrupt.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redis    string
		mongo    string
		dataPath string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

Exposes the pipeline over HTTP: POST /v1/layout resolves a scene and
archives the run, GET /v1/runs lists archived runs, and GET /v1/runs/{id}
fetches one. Runs archive to the local data directory by default; pass
--mongo to archive to MongoDB instead. Layout caching uses the local
file cache unless --redis points at a Redis server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redis, mongo, dataPath, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redis, "redis", "", "Redis address for the layout cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongo, "mongo", "", "MongoDB URI for the run archive (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&dataPath, "data-dir", "", "directory for the file run archive (default: XDG data dir)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redis, mongo, dataPath string, noCache bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cc, err := c.serveCache(ctx, redis, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	runs, err := c.serveStore(ctx, mongo, dataPath)
	if err != nil {
		return err
	}
	defer runs.Close(context.Background())

	srv, err := service.New(service.Config{
		Runner: runner,
		Store:  runs,
		Logger: c.Logger,
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache selects the layout cache backend for the service.
func (c *CLI) serveCache(ctx context.Context, redis string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redis != "" {
		cc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redis})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("layout cache", "backend", "redis", "addr", redis)
		return cc, nil
	}
	return newCache(false)
}

// serveStore selects the run archive backend for the service.
func (c *CLI) serveStore(ctx context.Context, mongo, dataPath string) (store.RunStore, error) {
	if mongo != "" {
		rs, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongo})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("run archive", "backend", "mongo")
		return rs, nil
	}
	if dataPath == "" {
		var err error
		dataPath, err = dataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
	}
	return store.NewFileStore(dataPath)
}
