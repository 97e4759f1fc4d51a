// Package movies layers the response cache between callers and the remote
// movie-data API. Every read derives a deterministic key, consults the
// cache engine, and falls through to the fetcher on a miss, applying a
// per-resource TTL policy.
package movies

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cinefeed/cinefeed/internal/cache"
	"github.com/cinefeed/cinefeed/internal/tmdb"
)

//go:generate mockgen -destination=mocks/fetcher.go -package=mocks github.com/cinefeed/cinefeed/internal/movies Fetcher

// Fetcher is the remote movie-data capability the service wraps. It is
// implemented by tmdb.Client; the cache layer places no constraints on its
// transport, retries, or timeouts.
type Fetcher interface {
	PopularMovies(ctx context.Context, page int) (*tmdb.MoviePage, error)
	MovieDetails(ctx context.Context, movieID int64) (*tmdb.Movie, error)
	MovieCredits(ctx context.Context, movieID int64) (*tmdb.Credits, error)
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	MoviesByGenre(ctx context.Context, genreID, page int) (*tmdb.MoviePage, error)
	SimilarMovies(ctx context.Context, movieID int64, page int) (*tmdb.MoviePage, error)
	MovieRecommendations(ctx context.Context, movieID int64, page int) (*tmdb.MoviePage, error)
}

// Resource identifies a cacheable request kind.
type Resource string

// Resource kinds, one per Fetcher method.
const (
	ResourcePopularMovies   Resource = "popular_movies"
	ResourceMovieDetails    Resource = "movie_details"
	ResourceMovieCredits    Resource = "movie_credits"
	ResourceSearch          Resource = "search"
	ResourceGenres          Resource = "genres"
	ResourceMoviesByGenre   Resource = "movies_by_genre"
	ResourceSimilarMovies   Resource = "similar_movies"
	ResourceRecommendations Resource = "recommendations"
)

// TTLPolicy holds the cache lifetime for each resource kind. Zero fields in
// an UpdateCacheTTL call leave the current value in place.
type TTLPolicy struct {
	PopularMovies   time.Duration `json:"popular_movies"`
	MovieDetails    time.Duration `json:"movie_details"`
	MovieCredits    time.Duration `json:"movie_credits"`
	Search          time.Duration `json:"search"`
	Genres          time.Duration `json:"genres"`
	MoviesByGenre   time.Duration `json:"movies_by_genre"`
	SimilarMovies   time.Duration `json:"similar_movies"`
	Recommendations time.Duration `json:"recommendations"`
}

// DefaultTTLPolicy returns the stock policy: volatile listings expire
// quickly, per-movie records last longer, and the genre taxonomy barely
// changes at all.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		PopularMovies:   10 * time.Minute,
		MovieDetails:    30 * time.Minute,
		MovieCredits:    30 * time.Minute,
		Search:          5 * time.Minute,
		Genres:          24 * time.Hour,
		MoviesByGenre:   10 * time.Minute,
		SimilarMovies:   30 * time.Minute,
		Recommendations: 30 * time.Minute,
	}
}

// Service is the fetch-through wrapper. Fetch errors propagate to the
// caller unchanged and never populate the cache; a previously cached value
// for the same key survives a failed refresh attempt.
type Service struct {
	fetcher Fetcher
	cache   *cache.Cache
	logger  *slog.Logger

	mu     sync.RWMutex
	policy TTLPolicy
}

// NewService creates a new movie service on top of the given fetcher and
// cache engine, with the default TTL policy.
func NewService(fetcher Fetcher, c *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher: fetcher,
		cache:   c,
		logger:  logger,
		policy:  DefaultTTLPolicy(),
	}
}

// GetPopularMovies returns one page of the popular movies listing.
func (s *Service) GetPopularMovies(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	v, err := s.cache.GetOrSet(ctx, PopularMoviesKey(page), func(ctx context.Context) (any, error) {
		return s.fetcher.PopularMovies(ctx, page)
	}, s.ttlFor(ResourcePopularMovies))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.MoviePage), nil
}

// GetMovieDetails returns full metadata for one movie.
func (s *Service) GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.Movie, error) {
	v, err := s.cache.GetOrSet(ctx, MovieDetailsKey(movieID), func(ctx context.Context) (any, error) {
		return s.fetcher.MovieDetails(ctx, movieID)
	}, s.ttlFor(ResourceMovieDetails))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.Movie), nil
}

// GetMovieCredits returns the cast and crew of one movie.
func (s *Service) GetMovieCredits(ctx context.Context, movieID int64) (*tmdb.Credits, error) {
	v, err := s.cache.GetOrSet(ctx, MovieCreditsKey(movieID), func(ctx context.Context) (any, error) {
		return s.fetcher.MovieCredits(ctx, movieID)
	}, s.ttlFor(ResourceMovieCredits))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.Credits), nil
}

// SearchMovies returns one page of search results. Logically identical
// queries (case- and whitespace-insensitive) share a cache entry.
func (s *Service) SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	v, err := s.cache.GetOrSet(ctx, SearchKey(query, page), func(ctx context.Context) (any, error) {
		return s.fetcher.SearchMovies(ctx, query, page)
	}, s.ttlFor(ResourceSearch))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.MoviePage), nil
}

// GetGenres returns the global genre list.
func (s *Service) GetGenres(ctx context.Context) ([]tmdb.Genre, error) {
	v, err := s.cache.GetOrSet(ctx, GenresKey, func(ctx context.Context) (any, error) {
		return s.fetcher.Genres(ctx)
	}, s.ttlFor(ResourceGenres))
	if err != nil {
		return nil, err
	}
	return v.([]tmdb.Genre), nil
}

// GetMoviesByGenre returns one page of movies in a genre.
func (s *Service) GetMoviesByGenre(ctx context.Context, genreID, page int) (*tmdb.MoviePage, error) {
	v, err := s.cache.GetOrSet(ctx, MoviesByGenreKey(genreID, page), func(ctx context.Context) (any, error) {
		return s.fetcher.MoviesByGenre(ctx, genreID, page)
	}, s.ttlFor(ResourceMoviesByGenre))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.MoviePage), nil
}

// GetSimilarMovies returns one page of movies similar to the given one.
func (s *Service) GetSimilarMovies(ctx context.Context, movieID int64, page int) (*tmdb.MoviePage, error) {
	v, err := s.cache.GetOrSet(ctx, SimilarMoviesKey(movieID, page), func(ctx context.Context) (any, error) {
		return s.fetcher.SimilarMovies(ctx, movieID, page)
	}, s.ttlFor(ResourceSimilarMovies))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.MoviePage), nil
}

// GetMovieRecommendations returns one page of recommendations for a movie.
func (s *Service) GetMovieRecommendations(ctx context.Context, movieID int64, page int) (*tmdb.MoviePage, error) {
	v, err := s.cache.GetOrSet(ctx, RecommendationsKey(movieID, page), func(ctx context.Context) (any, error) {
		return s.fetcher.MovieRecommendations(ctx, movieID, page)
	}, s.ttlFor(ResourceRecommendations))
	if err != nil {
		return nil, err
	}
	return v.(*tmdb.MoviePage), nil
}

// ClearCache empties the whole response cache.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// ClearMovieCache removes every cached record tied to one movie: details,
// credits, and all pages of similar movies and recommendations.
func (s *Service) ClearMovieCache(movieID int64) {
	s.cache.Delete(MovieDetailsKey(movieID))
	s.cache.Delete(MovieCreditsKey(movieID))
	s.cache.DeleteByPrefix(similarMoviesPrefix(movieID))
	s.cache.DeleteByPrefix(recommendationsPrefix(movieID))
}

// ClearSearchCache removes all cached search result pages and returns the
// number of entries dropped.
func (s *Service) ClearSearchCache() int {
	return s.cache.DeleteByPrefix(searchPrefix())
}

// ClearPopularMoviesCache removes all cached popular listing pages.
func (s *Service) ClearPopularMoviesCache() int {
	return s.cache.DeleteByPrefix(popularMoviesPrefix())
}

// ClearGenreCache removes the genre list and all per-genre listing pages.
func (s *Service) ClearGenreCache() int {
	removed := s.cache.DeleteByPrefix(genreMoviesPrefix())
	if s.cache.Has(GenresKey) {
		s.cache.Delete(GenresKey)
		removed++
	}
	return removed
}

// CacheStats returns a snapshot of the engine's counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ResetCacheStats zeroes the engine's lifetime counters. Cached entries
// are untouched.
func (s *Service) ResetCacheStats() {
	s.cache.ResetStats()
}

// IsCached reports whether the exact entry a real call for the resource
// would read is currently cached. Args mirror the corresponding method's
// parameters; a malformed argument list reports false.
func (s *Service) IsCached(res Resource, args ...any) bool {
	key, ok := keyFor(res, args)
	if !ok {
		return false
	}
	return s.cache.Has(key)
}

// UpdateCacheTTL merges the non-zero fields of p into the live policy.
func (s *Service) UpdateCacheTTL(p TTLPolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.PopularMovies > 0 {
		s.policy.PopularMovies = p.PopularMovies
	}
	if p.MovieDetails > 0 {
		s.policy.MovieDetails = p.MovieDetails
	}
	if p.MovieCredits > 0 {
		s.policy.MovieCredits = p.MovieCredits
	}
	if p.Search > 0 {
		s.policy.Search = p.Search
	}
	if p.Genres > 0 {
		s.policy.Genres = p.Genres
	}
	if p.MoviesByGenre > 0 {
		s.policy.MoviesByGenre = p.MoviesByGenre
	}
	if p.SimilarMovies > 0 {
		s.policy.SimilarMovies = p.SimilarMovies
	}
	if p.Recommendations > 0 {
		s.policy.Recommendations = p.Recommendations
	}
}

// CacheTTLPolicy returns a snapshot of the live TTL policy.
func (s *Service) CacheTTLPolicy() TTLPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

func (s *Service) ttlFor(res Resource) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch res {
	case ResourcePopularMovies:
		return s.policy.PopularMovies
	case ResourceMovieDetails:
		return s.policy.MovieDetails
	case ResourceMovieCredits:
		return s.policy.MovieCredits
	case ResourceSearch:
		return s.policy.Search
	case ResourceGenres:
		return s.policy.Genres
	case ResourceMoviesByGenre:
		return s.policy.MoviesByGenre
	case ResourceSimilarMovies:
		return s.policy.SimilarMovies
	case ResourceRecommendations:
		return s.policy.Recommendations
	}
	return 0 // engine falls back to its default TTL
}

// keyFor rebuilds the cache key a real call would use for the given
// resource and argument list.
func keyFor(res Resource, args []any) (string, bool) {
	switch res {
	case ResourcePopularMovies:
		if page, ok := oneInt(args); ok {
			return PopularMoviesKey(page), true
		}
	case ResourceMovieDetails:
		if id, ok := oneID(args); ok {
			return MovieDetailsKey(id), true
		}
	case ResourceMovieCredits:
		if id, ok := oneID(args); ok {
			return MovieCreditsKey(id), true
		}
	case ResourceSearch:
		if len(args) == 2 {
			query, qok := args[0].(string)
			page, pok := asInt(args[1])
			if qok && pok {
				return SearchKey(query, page), true
			}
		}
	case ResourceGenres:
		if len(args) == 0 {
			return GenresKey, true
		}
	case ResourceMoviesByGenre:
		if len(args) == 2 {
			genreID, gok := asInt(args[0])
			page, pok := asInt(args[1])
			if gok && pok {
				return MoviesByGenreKey(genreID, page), true
			}
		}
	case ResourceSimilarMovies:
		if id, page, ok := idAndPage(args); ok {
			return SimilarMoviesKey(id, page), true
		}
	case ResourceRecommendations:
		if id, page, ok := idAndPage(args); ok {
			return RecommendationsKey(id, page), true
		}
	}
	return "", false
}

func oneInt(args []any) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	return asInt(args[0])
}

func oneID(args []any) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	return asID(args[0])
}

func idAndPage(args []any) (int64, int, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	id, iok := asID(args[0])
	page, pok := asInt(args[1])
	if !iok || !pok {
		return 0, 0, false
	}
	return id, page, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func asID(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
