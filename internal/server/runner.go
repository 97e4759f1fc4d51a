// Package server wires the cache engine, TMDB client, and HTTP API into a
// runnable daemon.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cinefeed/cinefeed/internal/api"
	"github.com/cinefeed/cinefeed/internal/cache"
	"github.com/cinefeed/cinefeed/internal/config"
	"github.com/cinefeed/cinefeed/internal/movies"
	"github.com/cinefeed/cinefeed/internal/tmdb"
)

const shutdownTimeout = 10 * time.Second

// Runner owns the daemon's components and their lifecycle: the cache
// engine is constructed at startup and destroyed at shutdown.
type Runner struct {
	cfg     *config.Config
	version string
	logger  *slog.Logger

	middleware func(http.Handler) http.Handler
}

// NewRunner creates a new runner.
func NewRunner(cfg *config.Config, version string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, version: version, logger: logger}
}

// SetMiddleware wraps the HTTP handler stack (request logging lives in the
// daemon main).
func (r *Runner) SetMiddleware(mw func(http.Handler) http.Handler) {
	r.middleware = mw
}

// Run starts the daemon and blocks until the context is canceled or the
// HTTP server fails.
func (r *Runner) Run(ctx context.Context) error {
	engine := cache.New(cache.Config{
		MaxEntries:      r.cfg.Cache.MaxEntries,
		DefaultTTL:      r.cfg.Cache.DefaultTTL.Duration,
		CleanupInterval: r.cfg.Cache.CleanupInterval.Duration,
	})
	defer engine.Destroy()

	var opts []tmdb.Option
	if r.cfg.TMDB.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(r.cfg.TMDB.BaseURL))
	}
	if r.cfg.TMDB.Language != "" {
		opts = append(opts, tmdb.WithLanguage(r.cfg.TMDB.Language))
	}
	client := tmdb.NewClient(r.cfg.TMDB.APIKey, opts...)

	svc := movies.NewService(client, engine, r.logger.With("component", "movies"))
	svc.UpdateCacheTTL(policyFromConfig(r.cfg.Cache.TTL))

	mux := http.NewServeMux()
	api.New(svc, r.version).RegisterRoutes(mux)

	var handler http.Handler = mux
	if r.middleware != nil {
		handler = r.middleware(mux)
	}

	addr := net.JoinHostPort(r.cfg.Server.Host, strconv.Itoa(r.cfg.Server.Port))
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		r.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// policyFromConfig maps configured TTLs onto a merge-ready policy; unset
// fields stay zero so the service keeps its built-in defaults.
func policyFromConfig(ttl config.TTLConfig) movies.TTLPolicy {
	return movies.TTLPolicy{
		PopularMovies:   ttl.PopularMovies.Duration,
		MovieDetails:    ttl.MovieDetails.Duration,
		MovieCredits:    ttl.MovieCredits.Duration,
		Search:          ttl.Search.Duration,
		Genres:          ttl.Genres.Duration,
		MoviesByGenre:   ttl.MoviesByGenre.Duration,
		SimilarMovies:   ttl.SimilarMovies.Duration,
		Recommendations: ttl.Recommendations.Duration,
	}
}
