package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(orig)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1200, cfg.Sim.QuarterSeconds)
	assert.Equal(t, 5, cfg.Sim.TickSeconds)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadReadsExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.toml")
	contents := `
[server]
port = 9090
debug_mode = true

[sim]
quarter_seconds = 600
tick_seconds = 10

[tuning]
progress_base = 0.6
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.DebugMode)
	assert.Equal(t, 600, cfg.Sim.QuarterSeconds)
	assert.Equal(t, 10, cfg.Sim.TickSeconds)
	require.Contains(t, cfg.Tuning, "progress_base")
	assert.Equal(t, 0.6, cfg.Tuning["progress_base"])
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(orig)

	t.Setenv("DATABASE_URL", "postgres://example/test")
	t.Setenv("PORT", "7777")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://example/test", cfg.Database.URL)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestGetPanicsBeforeLoad(t *testing.T) {
	globalConfig = nil
	assert.Panics(t, func() { Get() })
}

func TestGetReturnsLastLoadedConfig(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(orig)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Same(t, cfg, Get())
}

func TestMustLoadPanicsOnUnreadableFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing-dir", "conf.toml")) })
}
