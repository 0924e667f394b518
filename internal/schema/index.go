// Package schema loads the OSM tagging-schema dataset and serves the derived
// lookup structures used by the query layer.
//
// An Index is built once and never mutated afterwards, so it is safe for
// concurrent readers without locking.
package schema

import (
	"sort"

	"github.com/standardbeagle/osmtags/pkg/pathutil"
)

// Index is the immutable, derived view of one dataset.
type Index struct {
	source      string
	locale      string
	fingerprint string

	fields      map[string]*Field // by slash path
	fieldByKey  map[string]*Field // by declared OSM key
	fieldOrder  []*Field
	presets     map[string]*Preset
	presetOrder []*Preset

	deprecations      []Deprecation
	deprecationsByKey map[string][]int // key -> positions in deprecations

	categories    map[string]*Category
	categoryOrder []*Category

	translations map[string]*Translations

	// literal values per key gathered from preset tags and addTags, sorted
	presetValues map[string][]string
	// every key known from fields and preset patterns, sorted
	keys []string
}

func newIndex(fields []*Field, presets []*Preset, deprecations []Deprecation, categories []*Category) *Index {
	ix := &Index{
		fields:            make(map[string]*Field, len(fields)),
		fieldByKey:        make(map[string]*Field, len(fields)),
		presets:           make(map[string]*Preset, len(presets)),
		deprecations:      deprecations,
		deprecationsByKey: make(map[string][]int),
		categories:        make(map[string]*Category, len(categories)),
		translations:      make(map[string]*Translations),
		presetValues:      make(map[string][]string),
	}

	for _, f := range fields {
		ix.fields[f.Path] = f
		ix.fieldOrder = append(ix.fieldOrder, f)
	}
	// A field stored under the key's own path owns that key; otherwise the
	// first field declaring it does.
	for _, f := range fields {
		if _, ok := ix.fieldByKey[f.Key]; !ok || f.Path == pathutil.ToFieldPath(f.Key) {
			ix.fieldByKey[f.Key] = f
		}
	}

	for _, p := range presets {
		if _, dup := ix.presets[p.ID]; dup {
			for i, existing := range ix.presetOrder {
				if existing.ID == p.ID {
					ix.presetOrder[i] = p
				}
			}
		} else {
			ix.presetOrder = append(ix.presetOrder, p)
		}
		ix.presets[p.ID] = p
	}

	for i, d := range deprecations {
		for _, k := range d.Old.Keys() {
			ix.deprecationsByKey[k] = append(ix.deprecationsByKey[k], i)
		}
	}

	for _, c := range categories {
		ix.categories[c.ID] = c
		ix.categoryOrder = append(ix.categoryOrder, c)
	}

	ix.buildValueIndex()
	return ix
}

func (ix *Index) buildValueIndex() {
	seen := make(map[string]map[string]struct{})
	allKeys := make(map[string]struct{})

	add := func(k, v string) {
		allKeys[k] = struct{}{}
		if !IsLiteralValue(v) {
			return
		}
		set, ok := seen[k]
		if !ok {
			set = make(map[string]struct{})
			seen[k] = set
		}
		set[v] = struct{}{}
	}
	for _, p := range ix.presetOrder {
		for k, v := range p.Tags.All() {
			add(k, v)
		}
		for k, v := range p.AddTags.All() {
			add(k, v)
		}
	}
	for _, f := range ix.fieldOrder {
		allKeys[f.Key] = struct{}{}
	}

	for k, set := range seen {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		ix.presetValues[k] = values
	}
	ix.keys = make([]string, 0, len(allKeys))
	for k := range allKeys {
		ix.keys = append(ix.keys, k)
	}
	sort.Strings(ix.keys)
}

// Source names where the dataset came from.
func (ix *Index) Source() string { return ix.source }

// Locale is the locale used for display strings.
func (ix *Index) Locale() string { return ix.locale }

// Fingerprint is a hash of the raw dataset files.
func (ix *Index) Fingerprint() string { return ix.fingerprint }

// Field returns the field stored under a slash path.
func (ix *Index) Field(path string) (*Field, bool) {
	f, ok := ix.fields[path]
	return f, ok
}

// FieldForKey resolves an OSM key (or slash path) to its field definition.
// The slash-path form is tried first, then the declared keys.
func (ix *Index) FieldForKey(key string) (*Field, bool) {
	if f, ok := ix.fields[pathutil.ToFieldPath(key)]; ok {
		return f, true
	}
	f, ok := ix.fieldByKey[pathutil.ToOSMKey(key)]
	return f, ok
}

// Fields returns all fields in dataset order.
func (ix *Index) Fields() []*Field { return ix.fieldOrder }

// Preset returns the preset with the given id.
func (ix *Index) Preset(id string) (*Preset, bool) {
	p, ok := ix.presets[id]
	return p, ok
}

// Presets returns all presets in definition order.
func (ix *Index) Presets() []*Preset { return ix.presetOrder }

// Deprecations returns every deprecation record in dataset order.
func (ix *Index) Deprecations() []Deprecation { return ix.deprecations }

// DeprecationsForKey returns the records whose old tags mention key,
// in dataset order.
func (ix *Index) DeprecationsForKey(key string) []Deprecation {
	positions := ix.deprecationsByKey[key]
	out := make([]Deprecation, 0, len(positions))
	for _, i := range positions {
		out = append(out, ix.deprecations[i])
	}
	return out
}

// Category returns the category with the given id.
func (ix *Index) Category(id string) (*Category, bool) {
	c, ok := ix.categories[id]
	return c, ok
}

// Categories returns all categories in dataset order.
func (ix *Index) Categories() []*Category { return ix.categoryOrder }

// PresetValues returns the sorted literal values preset patterns use for key.
func (ix *Index) PresetValues(key string) []string { return ix.presetValues[key] }

// Keys returns every key known to the dataset, sorted.
func (ix *Index) Keys() []string { return ix.keys }

// Locales returns the locales with loaded translations, sorted.
func (ix *Index) Locales() []string {
	out := make([]string, 0, len(ix.translations))
	for loc := range ix.translations {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}
