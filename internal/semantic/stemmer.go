package semantic

import (
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
)

// Stemmer provides word normalization through Porter2 stemming.
// Enables finding similar words in different forms (park, parking, parks).
type Stemmer struct {
	enabled    bool
	minLength  int
	exclusions map[string]bool // Words to never stem
}

// NewStemmer creates a new stemmer with configuration
func NewStemmer(enabled bool, minLength int, exclusions map[string]bool) *Stemmer {
	if minLength < 0 {
		minLength = 3
	}
	if exclusions == nil {
		exclusions = make(map[string]bool)
	}
	return &Stemmer{
		enabled:    enabled,
		minLength:  minLength,
		exclusions: exclusions,
	}
}

// DefaultStemmer returns an enabled stemmer that leaves short words and
// common OSM abbreviations alone.
func DefaultStemmer() *Stemmer {
	return NewStemmer(true, 3, map[string]bool{
		"aed": true, "atm": true, "bbq": true, "ev": true, "rv": true, "wc": true,
	})
}

// IsEnabled checks if stemming is enabled
func (s *Stemmer) IsEnabled() bool {
	return s.enabled
}

// Stem returns the lower-cased stem of a word, or the lower-cased word if
// stemming is disabled or the word is excluded.
func (s *Stemmer) Stem(word string) string {
	word = strings.ToLower(word)
	if !s.enabled || s.exclusions[word] || len(word) < s.minLength {
		return word
	}
	return porter2.Stem(word)
}

// Words splits text into lower-case words on anything that is not a letter
// or digit.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Stems returns the set of stems of the words in text.
func (s *Stemmer) Stems(text string) map[string]struct{} {
	words := Words(text)
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[s.Stem(w)] = struct{}{}
	}
	return out
}

// MatchWords reports whether every word of query has a stem that also
// occurs in text. An empty query matches nothing.
func (s *Stemmer) MatchWords(query, text string) bool {
	words := Words(query)
	if len(words) == 0 {
		return false
	}
	stems := s.Stems(text)
	for _, w := range words {
		if _, ok := stems[s.Stem(w)]; !ok {
			return false
		}
	}
	return true
}
