package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// FuzzyMatcher provides fuzzy string matching for typo-tolerant lookups.
type FuzzyMatcher struct {
	enabled   bool
	threshold float64
	algorithm string // "jaro-winkler" or "levenshtein"
}

// NewFuzzyMatcher creates a new fuzzy matcher
func NewFuzzyMatcher(enabled bool, threshold float64, algorithm string) *FuzzyMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.85
	}
	if algorithm == "" {
		algorithm = "jaro-winkler"
	}
	return &FuzzyMatcher{
		enabled:   enabled,
		threshold: threshold,
		algorithm: algorithm,
	}
}

// IsEnabled checks if fuzzy matching is enabled
func (fm *FuzzyMatcher) IsEnabled() bool {
	return fm.enabled
}

// GetThreshold returns the configured similarity threshold
func (fm *FuzzyMatcher) GetThreshold() float64 {
	return fm.threshold
}

// Match checks if two strings are similar within the configured threshold
func (fm *FuzzyMatcher) Match(a, b string) bool {
	return fm.Similarity(a, b) >= fm.threshold
}

// Similarity returns the similarity score between two strings (0.0-1.0)
func (fm *FuzzyMatcher) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if !fm.enabled || a == "" || b == "" {
		return 0.0
	}

	algo := edlib.JaroWinkler
	if fm.algorithm == "levenshtein" {
		algo = edlib.Levenshtein
	}
	score, err := edlib.StringsSimilarity(a, b, algo)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// FuzzyMatch represents a fuzzy match result
type FuzzyMatch struct {
	Term       string
	Similarity float64
}

// FindMatches finds all candidates similar to target, best first.
// Ties keep candidate order.
func (fm *FuzzyMatcher) FindMatches(target string, candidates []string) []FuzzyMatch {
	var matches []FuzzyMatch
	for _, candidate := range candidates {
		similarity := fm.Similarity(target, candidate)
		if similarity >= fm.threshold {
			matches = append(matches, FuzzyMatch{Term: candidate, Similarity: similarity})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// Suggest returns up to limit candidates that look like target, compared
// case-insensitively. An exact match is not a suggestion.
func (fm *FuzzyMatcher) Suggest(target string, candidates []string, limit int) []string {
	if !fm.enabled || limit <= 0 || target == "" {
		return nil
	}
	lowered := strings.ToLower(target)

	var matches []FuzzyMatch
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		similarity := fm.Similarity(lowered, strings.ToLower(candidate))
		if similarity >= fm.threshold {
			matches = append(matches, FuzzyMatch{Term: candidate, Similarity: similarity})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Term)
	}
	return out
}

// ValidateConfig validates fuzzy matcher configuration
func (fm *FuzzyMatcher) ValidateConfig() error {
	if fm.threshold <= 0 || fm.threshold > 1 {
		return fmt.Errorf("invalid threshold: %.2f (must be in (0,1])", fm.threshold)
	}
	if fm.algorithm != "jaro-winkler" && fm.algorithm != "levenshtein" {
		return fmt.Errorf("invalid algorithm: %s (must be jaro-winkler or levenshtein)", fm.algorithm)
	}
	return nil
}
