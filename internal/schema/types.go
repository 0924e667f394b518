package schema

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/standardbeagle/osmtags/internal/tags"
)

// Field is a tag-key definition, stored in the dataset under a slash path.
type Field struct {
	Path      string   `json:"-"`
	Key       string   `json:"key"`
	Keys      []string `json:"keys,omitempty"`
	Type      string   `json:"type"`
	Options   []string `json:"options,omitempty"`
	Label     string   `json:"label,omitempty"`
	Default   string   `json:"default,omitempty"`
	Geometry  []string `json:"geometry,omitempty"`
	Universal bool     `json:"universal,omitempty"`
}

// HasOptions reports whether the field restricts values to a fixed set.
func (f *Field) HasOptions() bool {
	return len(f.Options) > 0
}

// HasOption reports whether value is one of the declared options.
func (f *Field) HasOption(value string) bool {
	for _, o := range f.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Preset is a feature template identified by its tag pattern.
type Preset struct {
	ID         string    `json:"-"`
	Name       string    `json:"name,omitempty"`
	Icon       string    `json:"icon,omitempty"`
	Geometry   []string  `json:"geometry"`
	Tags       tags.Tags `json:"tags"`
	AddTags    tags.Tags `json:"addTags"`
	RemoveTags tags.Tags `json:"removeTags"`
	Fields     []string  `json:"fields,omitempty"`
	MoreFields []string  `json:"moreFields,omitempty"`
	Terms      []string  `json:"terms,omitempty"`
	Searchable *bool     `json:"searchable,omitempty"`
	MatchScore *float64  `json:"matchScore,omitempty"`
}

// IsSearchable reports whether the preset should appear in search results.
// Presets are searchable unless they say otherwise.
func (p *Preset) IsSearchable() bool {
	return p.Searchable == nil || *p.Searchable
}

// HasGeometry reports whether the preset applies to geometry g.
func (p *Preset) HasGeometry(g string) bool {
	for _, pg := range p.Geometry {
		if pg == g {
			return true
		}
	}
	return false
}

// Matches reports whether t satisfies every entry of the preset's tag
// pattern. A "*" pattern value only requires the key to be present.
// Presets with an empty pattern never match.
func (p *Preset) Matches(t tags.Tags) bool {
	if p.Tags.Len() == 0 {
		return false
	}
	for k, want := range p.Tags.All() {
		got, ok := t.Get(k)
		if !ok {
			return false
		}
		if want != Wildcard && got != want {
			return false
		}
	}
	return true
}

// Wildcard is the pattern value meaning "any value of this key".
const Wildcard = "*"

// IsLiteralValue reports whether a pattern value names one concrete value,
// as opposed to the wildcard or an a|b|c alternation.
func IsLiteralValue(v string) bool {
	return v != Wildcard && !strings.Contains(v, "|")
}

// IsTemplateRef reports whether a field reference is a {preset} template
// placeholder rather than a field path.
func IsTemplateRef(ref string) bool {
	return strings.HasPrefix(ref, "{")
}

// Deprecation maps obsolete tags to their replacement.
type Deprecation struct {
	Old     tags.Tags `json:"old"`
	Replace tags.Tags `json:"replace"`
}

// Category groups presets for display.
type Category struct {
	ID      string   `json:"-"`
	Name    string   `json:"name,omitempty"`
	Icon    string   `json:"icon,omitempty"`
	Members []string `json:"members"`
}

// Translations holds one locale's strings.
type Translations struct {
	Presets    map[string]PresetStrings   `json:"presets"`
	Fields     map[string]FieldStrings    `json:"fields"`
	Categories map[string]CategoryStrings `json:"categories"`
}

// PresetStrings are the localized strings for one preset.
type PresetStrings struct {
	Name  string `json:"name"`
	Terms string `json:"terms,omitempty"`
}

// FieldStrings are the localized strings for one field.
type FieldStrings struct {
	Label       string                   `json:"label"`
	Placeholder string                   `json:"placeholder,omitempty"`
	Options     map[string]OptionStrings `json:"options,omitempty"`
}

// CategoryStrings are the localized strings for one category.
type CategoryStrings struct {
	Name string `json:"name"`
}

// OptionStrings describe one field option. In the dataset an option is
// either a bare title string or an object with title and description.
type OptionStrings struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form.
func (o *OptionStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return err
		}
		*o = OptionStrings{Title: title}
		return nil
	}
	type plain OptionStrings
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = OptionStrings(p)
	return nil
}

// localeFile is the translations/<locale>.json envelope.
type localeFile map[string]struct {
	Presets Translations `json:"presets"`
}
