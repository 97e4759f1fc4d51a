package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8590, LogLevel: "info"},
		TMDB:   TMDBConfig{APIKey: "k"},
		Cache: CacheConfig{
			MaxEntries:      500,
			DefaultTTL:      Duration{5 * time.Minute},
			CleanupInterval: Duration{2 * time.Minute},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.port")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Server.LogLevel = "loud"

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.log_level")
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.TMDB.APIKey = ""

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "tmdb.api_key")
}

func TestValidate_NegativeTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.TTL.Search = Duration{-time.Second}

	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "cache.ttl.search")
}

func TestValidate_Aggregates(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = -1
	cfg.TMDB.APIKey = ""
	cfg.Cache.MaxEntries = -5

	assert.Len(t, cfg.Validate(), 3, "all problems reported at once")
}
