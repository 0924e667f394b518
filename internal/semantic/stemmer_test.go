package semantic

import (
	"reflect"
	"testing"
)

func TestStemDisabled(t *testing.T) {
	stemmer := NewStemmer(false, 3, nil)

	if stemmer.Stem("Parking") != "parking" {
		t.Error("Disabled stemmer should only lower-case")
	}
}

func TestStemExcludedAndShort(t *testing.T) {
	stemmer := DefaultStemmer()

	if got := stemmer.Stem("AED"); got != "aed" {
		t.Errorf("Excluded word should not be stemmed, got %s", got)
	}
	if got := stemmer.Stem("ab"); got != "ab" {
		t.Errorf("Short word should not be stemmed, got %s", got)
	}
}

func TestStemForms(t *testing.T) {
	stemmer := DefaultStemmer()

	groups := [][]string{
		{"park", "parking", "parks"},
		{"restaurant", "restaurants"},
		{"garage", "garages"},
	}
	for _, group := range groups {
		want := stemmer.Stem(group[0])
		for _, word := range group[1:] {
			if got := stemmer.Stem(word); got != want {
				t.Errorf("Stem(%q) = %q, want %q", word, got, want)
			}
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("Park & Ride Lot, multi-storey")
	want := []string{"park", "ride", "lot", "multi", "storey"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestMatchWords(t *testing.T) {
	stemmer := DefaultStemmer()

	if !stemmer.MatchWords("parking garages", "Multilevel Parking Garage") {
		t.Error("Expected stem match across plural forms")
	}
	if stemmer.MatchWords("parking bicycle", "Multilevel Parking Garage") {
		t.Error("Every query word must match")
	}
	if stemmer.MatchWords("  ", "anything") {
		t.Error("Empty query should not match")
	}
}
