package platform_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/deckhand/internal/platform"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data_file: /srv/cards.json\nrate_ttl: 30m\nfallback_rate: 1350\ndev_safety: false\n"), 0644))

		cfg, err := platform.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/cards.json", cfg.DataFile)
		assert.Equal(t, 1350.0, cfg.FallbackRate)
		require.NotNil(t, cfg.DevSafety)
		assert.False(t, *cfg.DevSafety)
		ttl, err := cfg.TTL()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, ttl)
		assert.Len(t, cfg.Options(), 2)
	})

	t.Run("TOML", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("rate_url = \"http://localhost:9/latest\"\nread_only = true\n"), 0644))

		cfg, err := platform.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9/latest", cfg.RateURL)
		assert.True(t, cfg.ReadOnly)
		assert.Nil(t, cfg.DevSafety)
	})

	t.Run("Missing File", func(t *testing.T) {
		cfg, err := platform.LoadConfig(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, platform.FileConfig{}, cfg)
	})

	t.Run("Bad TTL", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rate_ttl: soon\n"), 0644))
		_, err := platform.LoadConfig(path)
		assert.ErrorContains(t, err, "rate_ttl")
	})

	t.Run("Unknown Format", func(t *testing.T) {
		path := filepath.Join(dir, "config.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))
		_, err := platform.LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestXDGPaths(t *testing.T) {
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)

	assert.Equal(t, filepath.Join(dataHome, "deckhand", "collection.json"), platform.DefaultDataFile())
	assert.Equal(t, filepath.Join(configHome, "deckhand", "config.yaml"), platform.DefaultConfigPath())

	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "deckhand"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configHome, "deckhand", "config.toml"), nil, 0644))
	assert.Equal(t, filepath.Join(configHome, "deckhand", "config.toml"), platform.DefaultConfigPath())
}
