// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	TMDB   TMDBConfig   `toml:"tmdb"`
	Cache  CacheConfig  `toml:"cache"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`  // override for testing/proxies
	Language string `toml:"language"`  // e.g. "en-US"
}

type CacheConfig struct {
	MaxEntries      int       `toml:"max_entries"`
	DefaultTTL      Duration  `toml:"default_ttl"`
	CleanupInterval Duration  `toml:"cleanup_interval"`
	TTL             TTLConfig `toml:"ttl"`
}

// TTLConfig holds per-resource cache lifetimes. Unset fields fall back to
// the service's built-in policy.
type TTLConfig struct {
	PopularMovies   Duration `toml:"popular_movies"`
	MovieDetails    Duration `toml:"movie_details"`
	MovieCredits    Duration `toml:"movie_credits"`
	Search          Duration `toml:"search"`
	Genres          Duration `toml:"genres"`
	MoviesByGenre   Duration `toml:"movies_by_genre"`
	SimilarMovies   Duration `toml:"similar_movies"`
	Recommendations Duration `toml:"recommendations"`
}

// Duration wraps time.Duration so TOML values can be written as "10m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for TOML encoding.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8590
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 500
	}
	if cfg.Cache.DefaultTTL.Duration == 0 {
		cfg.Cache.DefaultTTL.Duration = 5 * time.Minute
	}
	if cfg.Cache.CleanupInterval.Duration == 0 {
		cfg.Cache.CleanupInterval.Duration = 2 * time.Minute
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR} with environment variable values and
// ${VAR:-default} with the default when VAR is unset or empty. It returns
// the substituted content and the names of plain ${VAR} references that
// could not be resolved.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		name, fallback, hasFallback := strings.Cut(expr, ":-")
		if value := os.Getenv(name); value != "" {
			return value
		}
		if hasFallback {
			return fallback
		}
		missing = append(missing, name)
		return match // Leave unchanged so the error points at the reference
	})

	return result, missing
}
