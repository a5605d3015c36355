package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresORSKey(t *testing.T) {
	t.Setenv("ORS_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("ORS_API_KEY", "key")
	t.Setenv("ROUTES_CACHE_TTL", "1m")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8083", cfg.HTTPAddress())
	assert.Equal(t, "https://api.openrouteservice.org", cfg.ORS.BaseURL)
	assert.InDelta(t, 1.0, cfg.Nominatim.RPS, 1e-9)
	assert.Equal(t, time.Minute, cfg.Redis.RoutesTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 25, cfg.MaxWaypoints)
}
