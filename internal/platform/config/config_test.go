package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://restcountries.com/v3.1", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 15, cfg.Browse.PageSize)
	assert.Zero(t, cfg.Browse.RefreshInterval)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WORLDRANKS_ADDR", ":9090")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("BROWSE_PAGE_SIZE", "25")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 25, cfg.Browse.PageSize)
	assert.Equal(t, 15*time.Minute, cfg.Browse.RefreshInterval)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestFromEnvReportsEveryMalformedValue(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	t.Setenv("REDIS_POOL_SIZE", "many")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_TIMEOUT")
	assert.Contains(t, err.Error(), "REDIS_POOL_SIZE")
}

func TestFromEnvRejectsZeroPageSize(t *testing.T) {
	t.Setenv("BROWSE_PAGE_SIZE", "0")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("COUNTRY_CACHE_TTL=90s\n"), 0o600))
	t.Setenv("COUNTRY_CACHE_TTL", "")
	os.Unsetenv("COUNTRY_CACHE_TTL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
