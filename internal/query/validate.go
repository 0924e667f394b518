package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/standardbeagle/osmtags/internal/tags"
)

// TagValidation is the result of validating one tag.
type TagValidation struct {
	Key         string     `json:"key" yaml:"key"`
	Value       string     `json:"value" yaml:"value"`
	Valid       bool       `json:"valid" yaml:"valid"`
	Deprecated  bool       `json:"deprecated" yaml:"deprecated"`
	Message     string     `json:"message" yaml:"message"`
	Replacement *tags.Tags `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	FieldType   string     `json:"fieldType,omitempty" yaml:"fieldType,omitempty"`
	// NonStandard marks a value outside the field's declared options.
	NonStandard bool     `json:"nonStandard,omitempty" yaml:"nonStandard,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// ValidateTag checks one tag against the schema. Only empty keys or values
// are invalid; unknown keys and values outside a field's options are valid
// with an advisory message, since OSM tagging is open.
func (e *Engine) ValidateTag(key, value string) TagValidation {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	res := TagValidation{Key: key, Value: value}

	switch {
	case key == "" && value == "":
		res.Message = "Tag key and value must not be empty"
		return res
	case key == "":
		res.Message = "Tag key must not be empty"
		return res
	case value == "":
		res.Message = fmt.Sprintf("Tag value for %q must not be empty", key)
		return res
	}
	res.Valid = true

	if c, ok := e.exactDeprecation(key, value); ok {
		res.Deprecated = true
		res.Replacement = c.ReplacementTags
		res.Message = deprecationMessage(key, value, []DeprecationCase{c})
		return res
	}

	field, ok := e.ix.FieldForKey(key)
	if !ok {
		res.Message = fmt.Sprintf("Key %q not found in schema; custom keys are allowed", key)
		if _, known := slices.BinarySearch(e.ix.Keys(), key); !known {
			res.Suggestions = e.suggestKeys(key)
		}
		return res
	}

	res.FieldType = field.Type
	if field.HasOptions() && !field.HasOption(value) {
		res.NonStandard = true
		res.Message = fmt.Sprintf("Value %q is not a standard value for %q", value, field.Key)
		res.Suggestions = e.fuzzy.Suggest(value, field.Options, e.opts.MaxSuggestions)
		return res
	}

	res.Message = fmt.Sprintf("Tag %q is valid", key+"="+value)
	return res
}

// CollectionValidation aggregates ValidateTag over a set of tags.
type CollectionValidation struct {
	Valid           bool            `json:"valid" yaml:"valid"`
	TagCount        int             `json:"tagCount" yaml:"tagCount"`
	ValidCount      int             `json:"validCount" yaml:"validCount"`
	DeprecatedCount int             `json:"deprecatedCount" yaml:"deprecatedCount"`
	ErrorCount      int             `json:"errorCount" yaml:"errorCount"`
	Results         []TagValidation `json:"results" yaml:"results"`
}

// ValidateTagCollection validates every tag independently. The collection
// is valid when every tag is.
func (e *Engine) ValidateTagCollection(t tags.Tags) CollectionValidation {
	res := CollectionValidation{
		Valid:    true,
		TagCount: t.Len(),
		Results:  make([]TagValidation, 0, t.Len()),
	}
	for k, v := range t.All() {
		r := e.ValidateTag(k, v)
		res.Results = append(res.Results, r)
		if r.Valid {
			res.ValidCount++
		} else {
			res.Valid = false
			res.ErrorCount++
		}
		if r.Deprecated {
			res.DeprecatedCount++
		}
	}
	return res
}
