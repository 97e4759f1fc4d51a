// internal/config/validate.go
package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// TMDB validation
	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}

	// Cache validation
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, fmt.Sprintf("cache.max_entries: must not be negative, got %d", c.Cache.MaxEntries))
	}
	if c.Cache.DefaultTTL.Duration < 0 {
		errs = append(errs, "cache.default_ttl: must not be negative")
	}
	if c.Cache.CleanupInterval.Duration < 0 {
		errs = append(errs, "cache.cleanup_interval: must not be negative")
	}
	for name, d := range map[string]Duration{
		"popular_movies":  c.Cache.TTL.PopularMovies,
		"movie_details":   c.Cache.TTL.MovieDetails,
		"movie_credits":   c.Cache.TTL.MovieCredits,
		"search":          c.Cache.TTL.Search,
		"genres":          c.Cache.TTL.Genres,
		"movies_by_genre": c.Cache.TTL.MoviesByGenre,
		"similar_movies":  c.Cache.TTL.SimilarMovies,
		"recommendations": c.Cache.TTL.Recommendations,
	} {
		if d.Duration < 0 {
			errs = append(errs, fmt.Sprintf("cache.ttl.%s: must not be negative", name))
		}
	}

	return errs
}
