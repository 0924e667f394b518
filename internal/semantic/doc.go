// Package semantic provides the approximate matching used by schema queries.
//
// FuzzyMatcher scores string similarity with go-edlib and backs the
// "did you mean" suggestions returned for unknown keys and preset ids.
//
// Stemmer reduces words to their Porter2 stems so that preset search
// matches "parking" against "park" and "restaurants" against "restaurant".
//
//	fuzzer := semantic.NewFuzzyMatcher(true, 0.85, "jaro-winkler")
//	fuzzer.Suggest("amenty", index.Keys(), 5) // ["amenity"]
//
//	stemmer := semantic.DefaultStemmer()
//	stemmer.MatchWords("parking garages", "Multilevel Parking Garage") // true
package semantic
