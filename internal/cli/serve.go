package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabviz/tabviz/internal/server"
	"github.com/tabviz/tabviz/pkg/cache"
	"github.com/tabviz/tabviz/pkg/observability"
	"github.com/tabviz/tabviz/pkg/pipeline"
	"github.com/tabviz/tabviz/pkg/store"
)

// Environment variables configuring the serve backends.
const (
	envRedisAddr = "TABVIZ_REDIS_ADDR"
	envMongoURI  = "TABVIZ_MONGO_URI"
)

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion pipeline as an HTTP API",
		Long: `Run the conversion pipeline as an HTTP API.

The server exposes POST /v1/convert for conversions, GET /v1/graphs/{id}
for persisted results, GET /healthz for liveness, and GET /metrics for
Prometheus metrics.

Backends are configured through the environment:

  TABVIZ_REDIS_ADDR   Redis address for the artifact cache
                      (default: local file cache)
  TABVIZ_MONGO_URI    MongoDB URI for graph persistence
                      (default: in-memory store)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe wires the backends, starts the server, and blocks until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	hooks := observability.NewPrometheusHooks(nil)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	artifactCache := serveCache()
	defer artifactCache.Close()

	st, err := serveStore(ctx)
	if err != nil {
		return err
	}
	if ms, ok := st.(*store.MongoStore); ok {
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = ms.Close(closeCtx)
		}()
	}

	runner := pipeline.NewRunner(artifactCache, c.Logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, st, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveCache picks the artifact cache backend: Redis when configured,
// otherwise the local file cache.
func serveCache() cache.Cache {
	if addr := os.Getenv(envRedisAddr); addr != "" {
		return cache.NewRedisCache(addr)
	}
	return newCache(false)
}

// serveStore picks the persistence backend: MongoDB when configured,
// otherwise an in-memory store.
func serveStore(ctx context.Context) (store.Store, error) {
	if uri := os.Getenv(envMongoURI); uri != "" {
		return store.NewMongoStore(ctx, uri)
	}
	return store.NewMemoryStore(), nil
}
