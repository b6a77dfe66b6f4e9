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
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "meus-medicamentos", cfg.App.Name)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "mock", cfg.Database.Type)
	assert.Equal(t, 5, cfg.Estoque.QuantidadeMinimaPadrao)
	assert.Equal(t, 2*time.Second, cfg.Worker.OutboxPollInterval)
	assert.Equal(t, 30, cfg.Worker.AlertWindowDays)
	assert.Equal(t, 100*time.Millisecond, cfg.Database.Retry.InitialDelay)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEDS_DATABASE_TYPE", "postgres")
	t.Setenv("MEDS_ESTOQUE_QUANTIDADE_MINIMA_PADRAO", "8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 8, cfg.Estoque.QuantidadeMinimaPadrao)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MEDS_APP_ENV=production\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MEDS_APP_ENV") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\nworker:\n  alert_window_days: 15\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Worker.AlertWindowDays)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
