package query

import (
	"fmt"

	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/tags"
)

// Suggestion kinds.
const (
	SuggestionRequired = "required"
	SuggestionOptional = "optional"
)

// FieldSuggestion proposes a key the input is missing.
type FieldSuggestion struct {
	Key     string `json:"key" yaml:"key"`
	FieldID string `json:"fieldId" yaml:"fieldId"`
	Label   string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind    string `json:"type" yaml:"type"`
	Preset  string `json:"preset" yaml:"preset"`
	Message string `json:"message" yaml:"message"`
}

// DeprecationWarning flags a deprecated tag in the input.
type DeprecationWarning struct {
	Tag         tags.Tag   `json:"tag" yaml:"tag"`
	Replacement *tags.Tags `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	Message     string     `json:"message" yaml:"message"`
}

// MatchedPreset names a preset whose tag pattern the input satisfies.
type MatchedPreset struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Improvements is the result of SuggestImprovements.
type Improvements struct {
	Suggestions    []FieldSuggestion    `json:"suggestions" yaml:"suggestions"`
	Warnings       []DeprecationWarning `json:"warnings" yaml:"warnings"`
	MatchedPresets []MatchedPreset      `json:"matchedPresets" yaml:"matchedPresets"`
}

// SuggestImprovements reports deprecated tags in t, the presets t matches,
// and the fields of the first matched presets that t does not fill in yet.
func (e *Engine) SuggestImprovements(t tags.Tags) Improvements {
	res := Improvements{
		Suggestions:    []FieldSuggestion{},
		Warnings:       []DeprecationWarning{},
		MatchedPresets: []MatchedPreset{},
	}

	for k, v := range t.All() {
		if v == "" {
			continue
		}
		if c, ok := e.exactDeprecation(k, v); ok {
			res.Warnings = append(res.Warnings, DeprecationWarning{
				Tag:         tags.Tag{Key: k, Value: v},
				Replacement: c.ReplacementTags,
				Message:     deprecationMessage(k, v, []DeprecationCase{c}),
			})
		}
	}

	var matched []*schema.Preset
	for _, p := range e.ix.Presets() {
		if p.Matches(t) {
			matched = append(matched, p)
			res.MatchedPresets = append(res.MatchedPresets, MatchedPreset{ID: p.ID, Name: e.ix.PresetName(p)})
		}
	}
	if len(matched) > e.opts.MaxPresets {
		matched = matched[:e.opts.MaxPresets]
	}

	seen := make(map[string]struct{})
	for _, p := range matched {
		optional := p.MoreFields
		if len(optional) > e.opts.MaxOptionalFields {
			optional = optional[:e.opts.MaxOptionalFields]
		}
		for _, group := range []struct {
			refs []string
			kind string
		}{
			{p.Fields, SuggestionRequired},
			{optional, SuggestionOptional},
		} {
			for _, ref := range group.refs {
				if schema.IsTemplateRef(ref) {
					continue
				}
				s, ok := e.fieldSuggestion(t, p, ref, group.kind)
				if !ok {
					continue
				}
				if _, dup := seen[s.Key]; dup {
					continue
				}
				seen[s.Key] = struct{}{}
				res.Suggestions = append(res.Suggestions, s)
			}
		}
	}
	return res
}

// fieldSuggestion resolves a field reference and reports whether t lacks it.
func (e *Engine) fieldSuggestion(t tags.Tags, p *schema.Preset, ref, kind string) (FieldSuggestion, bool) {
	s := FieldSuggestion{Key: ref, FieldID: ref, Kind: kind, Preset: p.ID}
	if f, ok := e.ix.Field(ref); ok {
		s.Key = f.Key
		s.Label = e.ix.FieldLabel(f)
		for _, k := range f.Keys {
			if t.Has(k) {
				return s, false
			}
		}
	}
	if t.Has(s.Key) {
		return s, false
	}

	presetName := e.ix.PresetName(p)
	if kind == SuggestionRequired {
		s.Message = fmt.Sprintf("Consider adding %q, a standard field for %s", s.Key, presetName)
	} else {
		s.Message = fmt.Sprintf("Optionally add %q, commonly used with %s", s.Key, presetName)
	}
	return s, true
}
