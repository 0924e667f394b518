package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// DatasetBuilder writes a small tagging-schema dataset to a temp directory.
// Entries are raw JSON so tests control key order exactly.
//
// Usage:
//
//	dir := testhelpers.NewDatasetBuilder(t).
//		Field("parking/both", `{"key":"parking:both","type":"combo","options":["lane"]}`).
//		Preset("amenity/parking", `{"tags":{"amenity":"parking"},"geometry":["area"]}`).
//		Deprecation(`{"old":{"parking":"covered"},"replace":{"parking":"multi-storey"}}`).
//		Build()
type DatasetBuilder struct {
	t            testing.TB
	fields       []rawEntry
	presets      []rawEntry
	categories   []rawEntry
	deprecations []string
	translations map[string]string
	extra        map[string]string
	omit         map[string]bool
}

type rawEntry struct {
	id   string
	body string
}

// NewDatasetBuilder creates an empty dataset builder.
func NewDatasetBuilder(t testing.TB) *DatasetBuilder {
	return &DatasetBuilder{
		t:            t,
		translations: make(map[string]string),
		extra:        make(map[string]string),
		omit:         make(map[string]bool),
	}
}

// Field adds a field definition under a slash path.
func (b *DatasetBuilder) Field(path, body string) *DatasetBuilder {
	b.fields = append(b.fields, rawEntry{path, body})
	return b
}

// Preset adds a preset; presets keep the order they are added in.
func (b *DatasetBuilder) Preset(id, body string) *DatasetBuilder {
	b.presets = append(b.presets, rawEntry{id, body})
	return b
}

// Deprecation adds one raw deprecation record.
func (b *DatasetBuilder) Deprecation(body string) *DatasetBuilder {
	b.deprecations = append(b.deprecations, body)
	return b
}

// Category adds a category with the given members.
func (b *DatasetBuilder) Category(id, name string, members ...string) *DatasetBuilder {
	body, err := json.Marshal(map[string]any{"name": name, "members": members})
	require.NoError(b.t, err)
	b.categories = append(b.categories, rawEntry{id, string(body)})
	return b
}

// Translation sets the raw body of translations/<locale>.json.
func (b *DatasetBuilder) Translation(locale, body string) *DatasetBuilder {
	b.translations[locale] = body
	return b
}

// RawFile overrides a dataset file with arbitrary content.
func (b *DatasetBuilder) RawFile(name, content string) *DatasetBuilder {
	b.extra[name] = content
	return b
}

// Omit skips writing the named file.
func (b *DatasetBuilder) Omit(name string) *DatasetBuilder {
	b.omit[name] = true
	return b
}

// Build writes the dataset and returns its root directory.
func (b *DatasetBuilder) Build() string {
	b.t.Helper()
	dir := b.t.TempDir()

	files := map[string]string{
		"fields.json":            objectJSON(b.fields),
		"presets.json":           objectJSON(b.presets),
		"preset_categories.json": objectJSON(b.categories),
		"deprecated.json":        "[" + strings.Join(b.deprecations, ",") + "]",
	}
	for locale, body := range b.translations {
		files[filepath.Join("translations", locale+".json")] = body
	}
	for name, content := range b.extra {
		files[name] = content
	}

	for name, content := range files {
		if b.omit[name] {
			continue
		}
		path := filepath.Join(dir, name)
		require.NoError(b.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(b.t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func objectJSON(entries []rawEntry) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, _ := json.Marshal(e.id)
		sb.Write(key)
		sb.WriteByte(':')
		sb.WriteString(e.body)
	}
	sb.WriteByte('}')
	return sb.String()
}
