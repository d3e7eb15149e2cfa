package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDealsFile, EnvTrackingFile, EnvTheme, EnvAddr} {
		t.Setenv(k, "")
	}
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, DefaultDealsFile, cfg.Files.Deals)
	assert.Equal(t, DefaultTrackingFile, cfg.Files.FileTracking)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	want := DefaultConfig()
	want.Files.Deals = "/data/deals.xlsx"
	want.Files.DealsSheet = "Deals"
	want.Appearance.Theme = "flexoki-light"
	want.Server.Addr = ":9000"

	require.NoError(t, SaveFile(path, want))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \":1234\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":1234", cfg.Server.Addr)
	assert.Equal(t, DefaultDealsFile, cfg.Files.Deals)
	assert.Equal(t, DefaultTheme, cfg.Appearance.Theme)
}

func TestLoadFile_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[files\n"), 0o600))

	cfg, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDealsFile, "d.csv")
	t.Setenv(EnvAddr, ":7000")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	assert.Equal(t, "d.csv", cfg.Files.Deals)
	assert.Equal(t, DefaultTrackingFile, cfg.Files.FileTracking)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, DefaultTheme, cfg.Appearance.Theme)
}

func TestLoad_UsesXDGConfigHome(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	chdir(t, t.TempDir()) // keep any .env in the repo out of the test

	assert.Equal(t, filepath.Join(dir, "fcidash", "config.toml"), ConfigPath())
	assert.False(t, Exists())

	cfg := DefaultConfig()
	cfg.Appearance.Theme = "terminal"
	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	t.Setenv(EnvTheme, "terminal")
	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "terminal", got.Appearance.Theme)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
