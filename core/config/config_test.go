package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, 4, cfg.Reconcile.Concurrency)
	assert.Equal(t, 1000, cfg.Reconcile.RecomputeUnitMS)
	assert.Equal(t, []string{"Result", "Locked", "AdditionalProperties"}, cfg.Reconcile.IgnoreFields)
	assert.Equal(t, "trolley.recompute", cfg.Notify.Channel)
	assert.Empty(t, cfg.Notify.RedisURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECONCILE_CONCURRENCY", "8")
	t.Setenv("NOTIFY_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Reconcile.Concurrency)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Notify.RedisURL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_DRIVER=mysql\nRECONCILE_RECOMPUTE_UNIT_MS=5\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("RECONCILE_RECOMPUTE_UNIT_MS")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Reconcile.RecomputeUnitMS)
}
