package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("ENV")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestDefaultProjectConfig(t *testing.T) {
	cfg := DefaultProjectConfig()
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "./rust_out", cfg.OutputDir)
	assert.Contains(t, cfg.Include, "**/*.cpp")
	assert.False(t, cfg.Stubs)
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	cfg, err := LoadProjectConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectConfig(), cfg)
}

func TestLoadProjectConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := DefaultProjectConfig()
	want.OutputDir = "./generated"
	want.Stubs = true
	want.Exclude = []string{"**/vendor/**"}

	require.NoError(t, SaveProjectConfig(dir, want))

	got, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, want.OutputDir, got.OutputDir)
	assert.True(t, got.Stubs)
	assert.Equal(t, []string{"**/vendor/**"}, got.Exclude)
}

func TestLoadProjectConfig_YmlExtension(t *testing.T) {
	dir := t.TempDir()
	data := []byte("version: \"1.0\"\noutput_dir: ./alt\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cxx2rs.yml"), data, 0o644))

	got, err := LoadProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "./alt", got.OutputDir)
}

func TestLoadProjectConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cxx2rs.yaml"), []byte("{not yaml"), 0o644))

	_, err := LoadProjectConfig(dir)
	assert.Error(t, err)
}

func TestProjectConfigMerge(t *testing.T) {
	base := DefaultProjectConfig()
	base.Merge(&ProjectConfig{OutputDir: "./override", Stubs: true})

	assert.Equal(t, "./override", base.OutputDir)
	assert.True(t, base.Stubs)
	// Untouched fields keep defaults.
	assert.Contains(t, base.Include, "**/*.cpp")

	base.Merge(nil)
	assert.Equal(t, "./override", base.OutputDir)
}
