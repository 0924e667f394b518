package config

import (
	"errors"
	"fmt"
	"strconv"

	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
	"github.com/standardbeagle/osmtags/internal/schema"
)

// Validator validates configuration and sets defaults for unset values
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults fills empty strings with defaults, then rejects
// out-of-range limits and thresholds.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	v.setDefaults(cfg)

	if err := v.validateSearchConfig(&cfg.Search); err != nil {
		return err
	}
	if err := v.validateSuggestConfig(&cfg.Suggest); err != nil {
		return err
	}
	return v.validateFuzzyConfig(&cfg.Fuzzy)
}

func (v *Validator) setDefaults(cfg *Config) {
	if cfg.Dataset.Locale == "" {
		cfg.Dataset.Locale = schema.DefaultLocale
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = DefaultLogDir()
	}
}

func (v *Validator) validateSearchConfig(s *Search) error {
	if s.DefaultLimit <= 0 {
		return positiveError("search.default_limit", s.DefaultLimit)
	}
	if s.MaxLimit <= 0 {
		return positiveError("search.max_limit", s.MaxLimit)
	}
	if s.MaxLimit < s.DefaultLimit {
		return osmerrors.NewConfigError("search.max_limit", strconv.Itoa(s.MaxLimit),
			fmt.Errorf("must not be below default_limit %d", s.DefaultLimit))
	}
	if s.CacheSize <= 0 {
		return positiveError("search.cache_size", s.CacheSize)
	}
	return nil
}

func (v *Validator) validateSuggestConfig(s *Suggest) error {
	if s.MaxPresets <= 0 {
		return positiveError("suggest.max_presets", s.MaxPresets)
	}
	if s.MaxOptionalFields <= 0 {
		return positiveError("suggest.max_optional_fields", s.MaxOptionalFields)
	}
	return nil
}

func (v *Validator) validateFuzzyConfig(f *Fuzzy) error {
	if f.Threshold <= 0 || f.Threshold > 1 {
		return osmerrors.NewConfigError("fuzzy.threshold", strconv.FormatFloat(f.Threshold, 'g', -1, 64),
			errors.New("must be in (0, 1]"))
	}
	if f.MaxSuggestions <= 0 {
		return positiveError("fuzzy.max_suggestions", f.MaxSuggestions)
	}
	return nil
}

func positiveError(field string, value int) error {
	return osmerrors.NewConfigError(field, strconv.Itoa(value), errors.New("must be positive"))
}
