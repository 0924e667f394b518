package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/schema"
)

// Config file names looked up in the project directory and the home directory.
const (
	KDLFileName  = ".osmtags.kdl"
	TOMLFileName = ".osmtags.toml"
	EnvFileName  = ".env"
)

type Config struct {
	Dataset Dataset `toml:"dataset" json:"dataset" yaml:"dataset"`
	Search  Search  `toml:"search" json:"search" yaml:"search"`
	Suggest Suggest `toml:"suggest" json:"suggest" yaml:"suggest"`
	Fuzzy   Fuzzy   `toml:"fuzzy" json:"fuzzy" yaml:"fuzzy"`
	Logging Logging `toml:"logging" json:"logging" yaml:"logging"`
}

// Dataset selects the tagging schema. An empty Dir means the embedded dataset.
type Dataset struct {
	Dir    string `toml:"dir" json:"dir" yaml:"dir"`
	Locale string `toml:"locale" json:"locale" yaml:"locale"`
}

type Search struct {
	DefaultLimit int `toml:"default_limit" json:"default_limit" yaml:"default_limit"`
	MaxLimit     int `toml:"max_limit" json:"max_limit" yaml:"max_limit"`
	CacheSize    int `toml:"cache_size" json:"cache_size" yaml:"cache_size"` // MCP search result LRU entries
}

type Suggest struct {
	MaxPresets        int `toml:"max_presets" json:"max_presets" yaml:"max_presets"`
	MaxOptionalFields int `toml:"max_optional_fields" json:"max_optional_fields" yaml:"max_optional_fields"`
}

type Fuzzy struct {
	Enabled        bool    `toml:"enabled" json:"enabled" yaml:"enabled"`
	Threshold      float64 `toml:"threshold" json:"threshold" yaml:"threshold"`
	MaxSuggestions int     `toml:"max_suggestions" json:"max_suggestions" yaml:"max_suggestions"`
}

type Logging struct {
	Dir   string `toml:"dir" json:"dir" yaml:"dir"`
	Debug bool   `toml:"debug" json:"debug" yaml:"debug"`
}

// DefaultCacheSize is the default number of cached search results.
const DefaultCacheSize = 256

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dataset: Dataset{Locale: schema.DefaultLocale},
		Search: Search{
			DefaultLimit: query.DefaultLimit,
			MaxLimit:     query.DefaultMaxLimit,
			CacheSize:    DefaultCacheSize,
		},
		Suggest: Suggest{
			MaxPresets:        query.DefaultMaxPresets,
			MaxOptionalFields: query.DefaultMaxOptionalFields,
		},
		Fuzzy: Fuzzy{
			Enabled:        true,
			Threshold:      query.DefaultFuzzyThreshold,
			MaxSuggestions: query.DefaultMaxSuggestions,
		},
		Logging: Logging{Dir: DefaultLogDir()},
	}
}

// DefaultLogDir is where MCP diagnostics go unless configured otherwise.
func DefaultLogDir() string {
	return filepath.Join(os.TempDir(), "osmtags-mcp-logs")
}

// Load builds the configuration for a project directory.
func Load(dir string) (*Config, error) {
	home, _ := os.UserHomeDir()
	return LoadWithHome(dir, home)
}

// LoadWithHome layers, in order: defaults, the global config in home, the
// project config in dir (KDL, or TOML when no KDL file exists), the .env
// file in dir and the OSMTAGS_* environment. The result is validated.
func LoadWithHome(dir, home string) (*Config, error) {
	if dir == "" {
		dir = "."
	}
	cfg := Default()

	if home != "" {
		if err := applyKDLFile(cfg, filepath.Join(home, KDLFileName)); err != nil {
			return nil, err
		}
	}

	found, err := applyKDLFileFound(cfg, filepath.Join(dir, KDLFileName))
	if err != nil {
		return nil, err
	}
	if !found {
		if err := applyTOMLFile(cfg, filepath.Join(dir, TOMLFileName)); err != nil {
			return nil, err
		}
	}

	env, err := readEnv(filepath.Join(dir, EnvFileName))
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	// relative dataset dirs are relative to the project
	if cfg.Dataset.Dir != "" && !filepath.IsAbs(cfg.Dataset.Dir) {
		cfg.Dataset.Dir = filepath.Clean(filepath.Join(dir, cfg.Dataset.Dir))
	}

	if err := NewValidator().ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Source is the dataset source the configuration selects.
func (c *Config) Source() schema.Source {
	return schema.SourceFor(c.Dataset.Dir, c.Dataset.Locale)
}

// QueryOptions maps the configuration onto query engine options.
func (c *Config) QueryOptions() query.Options {
	return query.Options{
		DefaultLimit:      c.Search.DefaultLimit,
		MaxLimit:          c.Search.MaxLimit,
		MaxPresets:        c.Suggest.MaxPresets,
		MaxOptionalFields: c.Suggest.MaxOptionalFields,
		MaxSuggestions:    c.Fuzzy.MaxSuggestions,
		FuzzyEnabled:      c.Fuzzy.Enabled,
		FuzzyThreshold:    c.Fuzzy.Threshold,
	}
}
