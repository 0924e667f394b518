package query

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/tags"
)

// Deprecation types.
const (
	DeprecationKey   = "key"
	DeprecationValue = "value"
)

// DeprecationCase is one deprecation record that applies to a lookup.
type DeprecationCase struct {
	OldTags         tags.Tags  `json:"oldTags" yaml:"oldTags"`
	ReplacementTags *tags.Tags `json:"replacementTags,omitempty" yaml:"replacementTags,omitempty"`
	DeprecationType string     `json:"deprecationType" yaml:"deprecationType"`
}

// DeprecationResult is the answer to CheckDeprecated.
type DeprecationResult struct {
	Key        string            `json:"key" yaml:"key"`
	Value      string            `json:"value,omitempty" yaml:"value,omitempty"`
	Deprecated bool              `json:"deprecated" yaml:"deprecated"`
	Cases      []DeprecationCase `json:"cases,omitempty" yaml:"cases,omitempty"`
	Message    string            `json:"message" yaml:"message"`
}

// CheckDeprecated finds the deprecation records for a key, or for one
// key=value pair when value is given.
//
// Without a value every record whose old tags mention key is returned,
// multi-key records included. With a value only single-key records for key
// whose old value is value or "*" apply.
func (e *Engine) CheckDeprecated(key, value string) DeprecationResult {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	res := DeprecationResult{Key: key, Value: value}
	if key == "" {
		res.Message = "No key given"
		return res
	}

	for _, d := range e.ix.DeprecationsForKey(key) {
		oldValue, _ := d.Old.Get(key)
		if value != "" {
			if d.Old.Len() != 1 || (oldValue != value && oldValue != schema.Wildcard) {
				continue
			}
		}
		res.Cases = append(res.Cases, newCase(d, key, value))
	}

	res.Deprecated = len(res.Cases) > 0
	res.Message = deprecationMessage(key, value, res.Cases)
	return res
}

// exactDeprecation returns the single-key record for exactly key=value.
func (e *Engine) exactDeprecation(key, value string) (DeprecationCase, bool) {
	for _, d := range e.ix.DeprecationsForKey(key) {
		if d.Old.Len() != 1 {
			continue
		}
		if v, _ := d.Old.Get(key); v == value {
			return newCase(d, key, value), true
		}
	}
	return DeprecationCase{}, false
}

func newCase(d schema.Deprecation, key, value string) DeprecationCase {
	c := DeprecationCase{OldTags: d.Old, DeprecationType: DeprecationValue}
	if v, _ := d.Old.Get(key); v == schema.Wildcard {
		c.DeprecationType = DeprecationKey
	}
	if d.Replace.Len() > 0 {
		replace := substituteValue(d.Replace, value)
		c.ReplacementTags = &replace
	}
	return c
}

// substituteValue fills the "$1" placeholder key deprecations use for
// carrying the old value over to the replacement key.
func substituteValue(replace tags.Tags, value string) tags.Tags {
	if value == "" {
		return replace
	}
	var out tags.Tags
	for k, v := range replace.All() {
		out.Set(k, strings.ReplaceAll(v, "$1", value))
	}
	return out
}

func describeTag(key, value string) string {
	if value == "" {
		return fmt.Sprintf("Key %q", key)
	}
	return fmt.Sprintf("Tag %q", key+"="+value)
}

func deprecationMessage(key, value string, cases []DeprecationCase) string {
	subject := describeTag(key, value)
	switch len(cases) {
	case 0:
		return subject + " is not deprecated"
	case 1:
		c := cases[0]
		if c.ReplacementTags == nil {
			return fmt.Sprintf("%s is deprecated (%s) with no replacement", subject, tags.Join(c.OldTags, " + "))
		}
		return fmt.Sprintf("%s is deprecated (%s); use %s instead",
			subject, tags.Join(c.OldTags, " + "), tags.Join(*c.ReplacementTags, " + "))
	default:
		return fmt.Sprintf("%s has %d deprecation cases", subject, len(cases))
	}
}
