package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY", "STORE_BACKEND", "SERVER_ADDRESS", "GEMINI_MODEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com/", cfg.Gemini.BaseURL)
	assert.Zero(t, cfg.Gemini.Timeout)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, "default", cfg.Store.Namespace)
	assert.Equal(t, "vitality/", cfg.S3.Prefix)
	assert.True(t, cfg.S3.UseSSL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 2500*time.Millisecond, cfg.Status.Interval)
	assert.Equal(t, "UTC", cfg.Tracker.Timezone)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":9090"
store:
  backend: SQLite
tracker:
  timezone: Europe/Berlin
jwt:
  expiration: 90m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "gemini-test", cfg.Gemini.Model)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)

	loc, err := cfg.Tracker.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadConfigAPIKeyAliases(t *testing.T) {
	t.Run("API_KEY", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "from-api-key")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "from-api-key", cfg.Gemini.APIKey)
	})

	t.Run("GEMINI_API_KEY wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "from-gemini")
		t.Setenv("API_KEY", "from-api-key")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "from-gemini", cfg.Gemini.APIKey)
	})
}

func TestTrackerLocation(t *testing.T) {
	loc, err := TrackerConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = TrackerConfig{Timezone: "Not/AZone"}.Location()
	assert.Error(t, err)
}
