package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "test-token", cfg.TMDBAccessToken)
	require.Equal(t, "0.0.0.0", cfg.BindAddr)
	require.Equal(t, 7000, cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "IN", cfg.WatchRegion)
	require.Equal(t, 100*time.Millisecond, cfg.UpstreamPacing)
	require.Equal(t, []string{"discover"}, cfg.Strategies)
	require.Equal(t, 25, cfg.MaxDiscoverPages)
	require.False(t, cfg.FallbackEnabled)
	require.Equal(t, time.Hour, cfg.CacheTTL)
	require.True(t, cfg.RefreshEnabled)
	require.Equal(t, 5, cfg.RefreshPages)
	require.Equal(t, 6*time.Hour, cfg.RefreshInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "test-token")
	t.Setenv("PORT", "8080")
	t.Setenv("WATCH_REGION", "US")
	t.Setenv("CATALOG_STRATEGIES", "discover, titles ,keywords")
	t.Setenv("CACHE_DURATION", "600")
	t.Setenv("FALLBACK_ENABLED", "true")
	t.Setenv("REFRESH_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "US", cfg.WatchRegion)
	require.Equal(t, []string{"discover", "titles", "keywords"}, cfg.Strategies)
	require.Equal(t, 10*time.Minute, cfg.CacheTTL)
	require.True(t, cfg.FallbackEnabled)
	require.Equal(t, 30*time.Minute, cfg.RefreshInterval)
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "test-token")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("REFRESH_ENABLED", "maybe")
	t.Setenv("UPSTREAM_PACING", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 7000, cfg.Port)
	require.True(t, cfg.RefreshEnabled)
	require.Equal(t, 100*time.Millisecond, cfg.UpstreamPacing)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadValidatesPageCounts(t *testing.T) {
	t.Setenv("TMDB_ACCESS_TOKEN", "test-token")
	t.Setenv("MAX_DISCOVER_PAGES", "0")

	_, err := Load()
	require.Error(t, err)
}
