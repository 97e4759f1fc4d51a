package movies

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// preloadConcurrency bounds how many warm-up fetches run at once.
const preloadConcurrency = 4

// PreloadPopularMovies warms the cache for the given listing pages by
// issuing normal fetch-through calls. Failures are collected, not fatal:
// every page is attempted, and the joined errors are returned at the end.
func (s *Service) PreloadPopularMovies(ctx context.Context, pages ...int) error {
	return s.preload(ctx, len(pages), func(ctx context.Context, i int) error {
		if _, err := s.GetPopularMovies(ctx, pages[i]); err != nil {
			return fmt.Errorf("popular movies page %d: %w", pages[i], err)
		}
		return nil
	})
}

// PreloadMovieDetails warms the cache with detail records for the given
// movie IDs. Same settle-all semantics as PreloadPopularMovies.
func (s *Service) PreloadMovieDetails(ctx context.Context, movieIDs ...int64) error {
	return s.preload(ctx, len(movieIDs), func(ctx context.Context, i int) error {
		if _, err := s.GetMovieDetails(ctx, movieIDs[i]); err != nil {
			return fmt.Errorf("movie details %d: %w", movieIDs[i], err)
		}
		return nil
	})
}

// preload fans out n fetches with bounded concurrency. Each task's error is
// recorded instead of returned to the group, so one failure never cancels
// the remaining fetches.
func (s *Service) preload(ctx context.Context, n int, fetch func(ctx context.Context, i int) error) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := fetch(ctx, i); err != nil {
				s.logger.Warn("preload fetch failed", "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait() // tasks never return errors; Wait only synchronizes
	return errors.Join(errs...)
}
