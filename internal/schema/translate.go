package schema

import (
	"strings"

	"github.com/standardbeagle/osmtags/pkg/pathutil"
)

// Kind selects which section of a translation bundle to read.
type Kind string

const (
	KindPreset   Kind = "preset"
	KindField    Kind = "field"
	KindCategory Kind = "category"
)

// TranslationEntry is the typed result of a translation lookup.
type TranslationEntry struct {
	Name    string // preset or category name, field label
	Terms   []string
	Options map[string]OptionStrings
}

// ResolveTranslation looks up the localized strings for id. ok is false
// when the locale, section or id is missing or the entry has no name.
func (ix *Index) ResolveTranslation(locale string, kind Kind, id string) (TranslationEntry, bool) {
	t, ok := ix.translations[locale]
	if !ok {
		return TranslationEntry{}, false
	}

	switch kind {
	case KindPreset:
		s, ok := t.Presets[id]
		if !ok || s.Name == "" {
			return TranslationEntry{}, false
		}
		return TranslationEntry{Name: s.Name, Terms: splitTerms(s.Terms)}, true
	case KindField:
		s, ok := t.Fields[id]
		if !ok || (s.Label == "" && len(s.Options) == 0) {
			return TranslationEntry{}, false
		}
		return TranslationEntry{Name: s.Label, Options: s.Options}, true
	case KindCategory:
		s, ok := t.Categories[id]
		if !ok || s.Name == "" {
			return TranslationEntry{}, false
		}
		return TranslationEntry{Name: s.Name}, true
	}
	return TranslationEntry{}, false
}

func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PresetName returns the localized preset name, the dataset's own name, or
// a name formatted from the id.
func (ix *Index) PresetName(p *Preset) string {
	if e, ok := ix.ResolveTranslation(ix.locale, KindPreset, p.ID); ok {
		return e.Name
	}
	if p.Name != "" {
		return p.Name
	}
	return pathutil.DisplayName(p.ID)
}

// PresetTerms returns the localized search terms merged with the dataset's
// own terms, without duplicates.
func (ix *Index) PresetTerms(p *Preset) []string {
	e, _ := ix.ResolveTranslation(ix.locale, KindPreset, p.ID)
	seen := make(map[string]struct{}, len(e.Terms)+len(p.Terms))
	var out []string
	for _, list := range [][]string{e.Terms, p.Terms} {
		for _, term := range list {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

// FieldLabel returns the localized label of a field.
func (ix *Index) FieldLabel(f *Field) string {
	if e, ok := ix.ResolveTranslation(ix.locale, KindField, f.Path); ok && e.Name != "" {
		return e.Name
	}
	if f.Label != "" {
		return f.Label
	}
	return pathutil.DisplayName(f.Path)
}

// CategoryName returns the localized category name.
func (ix *Index) CategoryName(c *Category) string {
	if e, ok := ix.ResolveTranslation(ix.locale, KindCategory, c.ID); ok {
		return e.Name
	}
	if c.Name != "" {
		return c.Name
	}
	return pathutil.DisplayName(c.ID)
}

// OptionStrings returns the title and description of one field option.
// Untranslated options use the raw value as title.
func (ix *Index) OptionStrings(f *Field, value string) OptionStrings {
	if e, ok := ix.ResolveTranslation(ix.locale, KindField, f.Path); ok {
		if o, ok := e.Options[value]; ok && o.Title != "" {
			return o
		}
	}
	return OptionStrings{Title: value}
}
