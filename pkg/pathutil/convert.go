// Package pathutil converts between OSM tag keys and schema storage paths.
//
// The tagging schema stores fields under slash-separated paths
// ("toilets/wheelchair") while OSM keys are colon-separated
// ("toilets:wheelchair"). User-facing output always uses the colon form.
package pathutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToFieldPath converts an OSM key to the slash-separated field path form.
//
// Examples:
//   - ToFieldPath("parking:both") → "parking/both"
//   - ToFieldPath("amenity") → "amenity"
func ToFieldPath(key string) string {
	return strings.ReplaceAll(key, ":", "/")
}

// ToOSMKey converts a field path (or an already colon-form key) to the OSM key form.
//
// Examples:
//   - ToOSMKey("toilets/wheelchair") → "toilets:wheelchair"
//   - ToOSMKey("toilets:wheelchair") → "toilets:wheelchair"
func ToOSMKey(path string) string {
	return strings.ReplaceAll(path, "/", ":")
}

// LastSegment returns the final slash-separated segment of an identifier.
func LastSegment(id string) string {
	if idx := strings.LastIndexByte(id, '/'); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// DisplayName formats a raw identifier for display when no translation exists:
// the last path segment, underscores replaced by spaces, first letter upper-cased.
//
// Examples:
//   - DisplayName("amenity/fast_food") → "Fast food"
//   - DisplayName("category-building") → "Category-building"
func DisplayName(id string) string {
	return Ucfirst(strings.ReplaceAll(LastSegment(id), "_", " "))
}

// Ucfirst upper-cases the first rune of s.
func Ucfirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
