// Package query implements the lookup, search and validation operations
// over a loaded schema index.
//
// Every operation is read-only; an Engine may be shared by concurrent callers.
// Unknown keys, presets and categories produce empty or negative results,
// never errors.
package query

import (
	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/semantic"
)

// Limits and defaults for query operations.
const (
	DefaultLimit             = 100
	DefaultMaxLimit          = 1000
	DefaultMaxPresets        = 5
	DefaultMaxOptionalFields = 3
	DefaultMaxSuggestions    = 5
	DefaultFuzzyThreshold    = 0.85
)

// Options tunes the query engine.
type Options struct {
	DefaultLimit      int
	MaxLimit          int
	MaxPresets        int // matched presets consulted by SuggestImprovements
	MaxOptionalFields int // moreFields entries consulted per preset
	MaxSuggestions    int // did-you-mean candidates
	FuzzyEnabled      bool
	FuzzyThreshold    float64
}

// DefaultOptions returns the standard limits.
func DefaultOptions() Options {
	return Options{
		DefaultLimit:      DefaultLimit,
		MaxLimit:          DefaultMaxLimit,
		MaxPresets:        DefaultMaxPresets,
		MaxOptionalFields: DefaultMaxOptionalFields,
		MaxSuggestions:    DefaultMaxSuggestions,
		FuzzyEnabled:      true,
		FuzzyThreshold:    DefaultFuzzyThreshold,
	}
}

// Engine answers queries against one schema index.
type Engine struct {
	ix      *schema.Index
	opts    Options
	fuzzy   *semantic.FuzzyMatcher
	stemmer *semantic.Stemmer
}

// NewEngine creates an engine over ix. Zero-valued limits take defaults.
func NewEngine(ix *schema.Index, opts Options) *Engine {
	d := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = d.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = d.MaxLimit
	}
	if opts.MaxPresets <= 0 {
		opts.MaxPresets = d.MaxPresets
	}
	if opts.MaxOptionalFields <= 0 {
		opts.MaxOptionalFields = d.MaxOptionalFields
	}
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = d.MaxSuggestions
	}
	return &Engine{
		ix:      ix,
		opts:    opts,
		fuzzy:   semantic.NewFuzzyMatcher(opts.FuzzyEnabled, opts.FuzzyThreshold, "jaro-winkler"),
		stemmer: semantic.DefaultStemmer(),
	}
}

// Index returns the underlying schema index.
func (e *Engine) Index() *schema.Index {
	return e.ix
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// limit applies the default for non-positive values and caps at MaxLimit.
func (e *Engine) limit(n int) int {
	if n <= 0 {
		n = e.opts.DefaultLimit
	}
	if n > e.opts.MaxLimit {
		n = e.opts.MaxLimit
	}
	return n
}

func (e *Engine) suggestKeys(key string) []string {
	return e.fuzzy.Suggest(key, e.ix.Keys(), e.opts.MaxSuggestions)
}
