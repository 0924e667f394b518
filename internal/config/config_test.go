package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/osmtags/internal/dataset"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// clearEnv unsets the overrides for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvDataDir, EnvLocale, EnvLogDir, EnvDebug} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_NoFiles(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithHome(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, dataset.Name, cfg.Source().Name)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	clearEnv(t)
	home, dir := t.TempDir(), t.TempDir()
	writeFile(t, home, KDLFileName, `
search {
    default_limit 10
    max_limit 50
}
dataset {
    locale "fr"
}
`)
	writeFile(t, dir, KDLFileName, `
search {
    max_limit 80
}
`)

	cfg, err := LoadWithHome(dir, home)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 80, cfg.Search.MaxLimit)
	assert.Equal(t, "fr", cfg.Dataset.Locale)
}

func TestLoad_TOMLWhenNoKDL(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, TOMLFileName, `
[dataset]
dir = "schema/dist"

[fuzzy]
threshold = 0.7
`)

	cfg, err := LoadWithHome(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schema", "dist"), cfg.Dataset.Dir)
	assert.Equal(t, 0.7, cfg.Fuzzy.Threshold)
	assert.True(t, cfg.Fuzzy.Enabled, "absent keys keep defaults")
	assert.Equal(t, filepath.Join(dir, "schema", "dist"), cfg.Source().Name)
}

func TestLoad_KDLWinsOverTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, KDLFileName, "suggest {\n    max_presets 2\n}\n")
	writeFile(t, dir, TOMLFileName, "[suggest]\nmax_presets = 4\n")

	cfg, err := LoadWithHome(dir, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Suggest.MaxPresets)
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, EnvFileName, "OSMTAGS_LOCALE=de\nOSMTAGS_DEBUG=true\nOSMTAGS_LOG_DIR=/from/dotenv\n")
	t.Setenv(EnvLogDir, "/from/env")

	cfg, err := LoadWithHome(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Dataset.Locale)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "/from/env", cfg.Logging.Dir)
}

func TestLoad_BadDebugValue(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDebug, "sometimes")

	_, err := LoadWithHome(t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDebug)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, KDLFileName, "fuzzy {\n    threshold 2.5\n}\n")

	_, err := LoadWithHome(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy.threshold")
}

func TestLoad_MalformedTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, TOMLFileName, "[search\n")

	_, err := LoadWithHome(dir, "")
	require.Error(t, err)
}

func TestQueryOptions(t *testing.T) {
	cfg := Default()
	cfg.Suggest.MaxPresets = 2
	cfg.Fuzzy.Enabled = false

	opts := cfg.QueryOptions()
	assert.Equal(t, 2, opts.MaxPresets)
	assert.False(t, opts.FuzzyEnabled)
	assert.Equal(t, cfg.Search.MaxLimit, opts.MaxLimit)
	assert.Equal(t, cfg.Fuzzy.Threshold, opts.FuzzyThreshold)
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Dir = "/data"

	var buf bytes.Buffer
	require.NoError(t, WriteTOML(&buf, cfg))

	decoded := &Config{}
	require.NoError(t, toml.Unmarshal(buf.Bytes(), decoded))
	assert.Equal(t, cfg, decoded)
}
