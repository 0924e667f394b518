package semantic

import (
	"testing"
)

func TestNewFuzzyMatcher(t *testing.T) {
	matcher := NewFuzzyMatcher(true, 0.85, "jaro-winkler")

	if !matcher.IsEnabled() {
		t.Error("Fuzzy matcher should be enabled")
	}
	if matcher.GetThreshold() != 0.85 {
		t.Errorf("Expected threshold 0.85, got %.2f", matcher.GetThreshold())
	}

	// Out-of-range thresholds fall back to the default
	if got := NewFuzzyMatcher(true, 1.5, "").GetThreshold(); got != 0.85 {
		t.Errorf("Expected default threshold 0.85, got %.2f", got)
	}
}

func TestFuzzyMatcherDisabled(t *testing.T) {
	matcher := NewFuzzyMatcher(false, 0.80, "jaro-winkler")

	if !matcher.Match("amenity", "amenity") {
		t.Error("Exact match should succeed when disabled")
	}
	if matcher.Match("amenty", "amenity") {
		t.Error("Fuzzy match should fail when disabled")
	}
	if got := matcher.Suggest("amenty", []string{"amenity"}, 5); got != nil {
		t.Errorf("Expected no suggestions when disabled, got %v", got)
	}
}

func TestJaroWinklerSimilarity(t *testing.T) {
	matcher := NewFuzzyMatcher(true, 0.85, "jaro-winkler")

	tests := []struct {
		a, b    string
		minSim  float64
		maxSim  float64
		message string
	}{
		{"amenity", "amenity", 1.0, 1.0, "exact match"},
		{"amenty", "amenity", 0.9, 1.0, "missing letter"},
		{"cuisine", "cusine", 0.9, 1.0, "common typo"},
		{"amenity", "", 0.0, 0.0, "empty string"},
		{"shop", "highway", 0.0, 0.6, "unrelated"},
	}

	for _, tt := range tests {
		sim := matcher.Similarity(tt.a, tt.b)
		if sim < tt.minSim || sim > tt.maxSim {
			t.Errorf("%s: Similarity(%q, %q) = %.3f, want [%.2f, %.2f]",
				tt.message, tt.a, tt.b, sim, tt.minSim, tt.maxSim)
		}
	}
}

func TestFindMatchesOrdering(t *testing.T) {
	matcher := NewFuzzyMatcher(true, 0.8, "jaro-winkler")

	matches := matcher.FindMatches("parkin", []string{"park_ride", "parking", "shop"})
	if len(matches) == 0 {
		t.Fatal("Expected matches")
	}
	if matches[0].Term != "parking" {
		t.Errorf("Expected best match parking, got %s", matches[0].Term)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Similarity > matches[i-1].Similarity {
			t.Errorf("Matches not sorted by similarity: %v", matches)
		}
	}
}

func TestSuggest(t *testing.T) {
	matcher := NewFuzzyMatcher(true, 0.85, "jaro-winkler")
	keys := []string{"amenity", "highway", "shop", "cuisine"}

	got := matcher.Suggest("amenty", keys, 5)
	if len(got) != 1 || got[0] != "amenity" {
		t.Errorf("Suggest(amenty) = %v, want [amenity]", got)
	}

	got = matcher.Suggest("AMENITY", keys, 5)
	if len(got) != 1 || got[0] != "amenity" {
		t.Errorf("Suggest is case-insensitive, got %v", got)
	}

	if got := matcher.Suggest("amenity", keys, 5); len(got) != 0 {
		t.Errorf("Exact key should not suggest itself, got %v", got)
	}

	if got := matcher.Suggest("amenty", keys, 0); got != nil {
		t.Errorf("Zero limit should return nil, got %v", got)
	}
}

func TestFuzzyValidateConfig(t *testing.T) {
	if err := NewFuzzyMatcher(true, 0.85, "levenshtein").ValidateConfig(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := NewFuzzyMatcher(true, 0.85, "cosine").ValidateConfig(); err == nil {
		t.Error("Expected error for unsupported algorithm")
	}
}
