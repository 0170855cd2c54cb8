package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  rate_limit_per_sec: 20
database:
  dsn: "host=localhost user=portaria dbname=portaria"
code:
  length: 6
notify:
  attempt_timeout_seconds: 5
  channels:
    - name: primary
      url: https://gateway.example.com/webhook
    - name: n8n
      url: https://n8n.example.com/webhook/encomendas
worker_pool:
  size: 4
reminder:
  enabled: true
  interval_seconds: 1800
  pending_after_days: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 6, cfg.Code.Length)
	assert.Equal(t, 5*time.Second, cfg.Notify.AttemptTimeout)
	require.Len(t, cfg.Notify.Channels, 2)
	assert.Equal(t, "primary", cfg.Notify.Channels[0].Name)
	assert.Equal(t, 4, cfg.WorkerPool.Size)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, 3, cfg.Reminder.PendingAfterDays)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Code.Length)
	assert.Equal(t, 10*time.Second, cfg.Notify.AttemptTimeout)
	assert.Equal(t, time.Hour, cfg.Reminder.Interval)
	assert.Equal(t, 2, cfg.Reminder.PendingAfterDays)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, "./deliveries-cache.db", cfg.Cache.Path)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
