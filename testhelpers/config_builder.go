// Package testhelpers provides shared utilities for testing the osmtags packages
package testhelpers

import (
	"github.com/standardbeagle/osmtags/internal/config"
)

// TestConfigBuilder provides a fluent API for building test configs with safe defaults
// Usage:
//
//	cfg := testhelpers.NewTestConfigBuilder().
//		WithDatasetDir(dir).
//		WithLimits(10, 20).
//		Build()
type TestConfigBuilder struct {
	cfg *config.Config
}

// NewTestConfigBuilder starts from the defaults with logging kept out of
// the shared temp dir.
func NewTestConfigBuilder() *TestConfigBuilder {
	cfg := config.Default()
	cfg.Search.CacheSize = 16
	return &TestConfigBuilder{cfg: cfg}
}

// WithDatasetDir points the config at a dataset directory, e.g. one written by DatasetBuilder.
func (b *TestConfigBuilder) WithDatasetDir(dir string) *TestConfigBuilder {
	b.cfg.Dataset.Dir = dir
	return b
}

// WithLocale sets the dataset locale.
func (b *TestConfigBuilder) WithLocale(locale string) *TestConfigBuilder {
	b.cfg.Dataset.Locale = locale
	return b
}

// WithLimits sets the default and maximum result limits.
func (b *TestConfigBuilder) WithLimits(defaultLimit, maxLimit int) *TestConfigBuilder {
	b.cfg.Search.DefaultLimit = defaultLimit
	b.cfg.Search.MaxLimit = maxLimit
	return b
}

// WithoutFuzzy disables did-you-mean suggestions.
func (b *TestConfigBuilder) WithoutFuzzy() *TestConfigBuilder {
	b.cfg.Fuzzy.Enabled = false
	return b
}

// WithLogDir sets the diagnostics directory.
func (b *TestConfigBuilder) WithLogDir(dir string) *TestConfigBuilder {
	b.cfg.Logging.Dir = dir
	return b
}

// Build returns the config. The builder must not be reused afterwards.
func (b *TestConfigBuilder) Build() *config.Config {
	return b.cfg
}
