package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, uint(5), cfg.FreeThresholdPercent())
	assert.Equal(t, uint64(1<<30), cfg.FreeThresholdBytes())
	assert.Equal(t, 30*time.Second, cfg.PollInterval())
	assert.Equal(t, time.Hour, cfg.DespamInterval())
	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diskwarden.yaml")
	content := `
data_dirs:
  - /srv/data
  - /srv/wal
storage_space_alert_free_threshold_percent: 10
storage_space_alert_free_threshold_bytes: 107374182400
poll_interval: 10s
despam_interval: 30m
listen_addr: 0.0.0.0:9090
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/data", "/srv/wal"}, cfg.DataDirs())
	assert.Equal(t, uint(10), cfg.FreeThresholdPercent())
	assert.Equal(t, uint64(100<<30), cfg.FreeThresholdBytes())
	assert.Equal(t, 10*time.Second, cfg.PollInterval())
	assert.Equal(t, 30*time.Minute, cfg.DespamInterval())
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPercentThresholdClamped(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Set("storage_space_alert_free_threshold_percent", 150)
	assert.Equal(t, uint(100), cfg.FreeThresholdPercent())
}

func TestSetOverridesValue(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Set("storage_space_alert_free_threshold_bytes", uint64(42))
	assert.Equal(t, uint64(42), cfg.FreeThresholdBytes())
}
