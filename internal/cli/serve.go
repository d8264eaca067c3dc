package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/AutumnsGrove/Pixelsorting/internal/api"
	"github.com/AutumnsGrove/Pixelsorting/pkg/cache"
	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
	"github.com/AutumnsGrove/Pixelsorting/pkg/session"
)

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd() *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisDB   int
		mongoURI  string
		mongoDB   string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pixel sorting HTTP API",
		Long: `Serve starts an HTTP server exposing sorting, preset and run endpoints.

Without external backends the server keeps runs in memory, reads presets from
the local preset directory and caches results on disk. Point it at Redis for a
shared result cache and at MongoDB for a shared preset catalog.

Examples:
  pixelsort serve --addr :8080
  pixelsort serve --redis-addr localhost:6379 --mongo-uri mongodb://localhost:27017 --mongo-db pixelsort`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			opts := []api.Option{api.WithLogger(logger)}

			results, err := serveResultCache(ctx, redisAddr, redisDB, noCache)
			if err != nil {
				return err
			}
			defer results.Close()
			opts = append(opts, api.WithResultCache(results))

			presets, err := servePresetStore(ctx, mongoURI, mongoDB)
			if err != nil {
				return err
			}
			if presets != nil {
				opts = append(opts, api.WithPresetStore(presets))
			}

			server := api.NewServer(session.NewMemoryStore(), opts...)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for the shared result cache")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the shared preset store")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "pixelsort", "MongoDB database name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// serveResultCache selects the server's result cache backend.
func serveResultCache(ctx context.Context, redisAddr string, redisDB int, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr, "", redisDB)
		if err != nil {
			return nil, err
		}
		return cache.NewInstrumented(rc, "result"), nil
	}
	fc, err := cache.NewFileCache(cache.DefaultDir())
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(fc, "result"), nil
}

// servePresetStore selects the server's preset backend; nil means the server
// falls back to builtins only.
func servePresetStore(ctx context.Context, mongoURI, mongoDB string) (preset.Store, error) {
	if mongoURI != "" {
		return preset.NewMongoStore(ctx, mongoURI, mongoDB)
	}
	store, err := preset.NewDirStore(preset.DefaultDir())
	if err != nil {
		return nil, nil
	}
	return store, nil
}
