package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinefeed/cinefeed/internal/config"
)

func TestPolicyFromConfig(t *testing.T) {
	ttl := config.TTLConfig{
		Search: config.Duration{Duration: time.Minute},
		Genres: config.Duration{Duration: 48 * time.Hour},
	}

	policy := policyFromConfig(ttl)

	assert.Equal(t, time.Minute, policy.Search)
	assert.Equal(t, 48*time.Hour, policy.Genres)
	assert.Zero(t, policy.PopularMovies, "unset config TTLs must stay zero so defaults survive the merge")
}
