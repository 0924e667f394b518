package config

import (
	"errors"
	"testing"

	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Locale = ""
	cfg.Logging.Dir = ""

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		t.Fatalf("ValidateAndSetDefaults failed: %v", err)
	}
	if cfg.Dataset.Locale != "en" {
		t.Errorf("Locale should default to en, got %q", cfg.Dataset.Locale)
	}
	if cfg.Logging.Dir != DefaultLogDir() {
		t.Errorf("Logging.Dir should default to %q, got %q", DefaultLogDir(), cfg.Logging.Dir)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero default limit", func(c *Config) { c.Search.DefaultLimit = 0 }, "search.default_limit"},
		{"negative max limit", func(c *Config) { c.Search.MaxLimit = -1 }, "search.max_limit"},
		{"max below default", func(c *Config) { c.Search.DefaultLimit = 50; c.Search.MaxLimit = 10 }, "search.max_limit"},
		{"zero cache", func(c *Config) { c.Search.CacheSize = 0 }, "search.cache_size"},
		{"zero presets", func(c *Config) { c.Suggest.MaxPresets = 0 }, "suggest.max_presets"},
		{"zero optional fields", func(c *Config) { c.Suggest.MaxOptionalFields = 0 }, "suggest.max_optional_fields"},
		{"zero threshold", func(c *Config) { c.Fuzzy.Threshold = 0 }, "fuzzy.threshold"},
		{"threshold above one", func(c *Config) { c.Fuzzy.Threshold = 1.5 }, "fuzzy.threshold"},
		{"zero suggestions", func(c *Config) { c.Fuzzy.MaxSuggestions = 0 }, "fuzzy.max_suggestions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := NewValidator().ValidateAndSetDefaults(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var cfgErr *osmerrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestValidateAcceptsThresholdOne(t *testing.T) {
	cfg := Default()
	cfg.Fuzzy.Threshold = 1
	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		t.Fatalf("threshold 1 should be accepted: %v", err)
	}
}
