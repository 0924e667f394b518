package schema_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/osmtags/internal/errors"
	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/testhelpers"
)

func newDatasetDir(t *testing.T) *testhelpers.DatasetBuilder {
	return testhelpers.NewDatasetBuilder(t)
}

func requireDatasetError(t *testing.T, err error, file string) *errors.DatasetError {
	t.Helper()
	var de *errors.DatasetError
	require.True(t, stderrors.As(err, &de), "expected DatasetError, got %T: %v", err, err)
	assert.Equal(t, file, de.File)
	return de
}

func TestLoad_Directory(t *testing.T) {
	dir := newDatasetDir(t).
		Field("cuisine", `{"key":"cuisine","type":"semiCombo","options":["pizza"]}`).
		Preset("amenity/restaurant", `{"tags":{"amenity":"restaurant"},"geometry":["point"]}`).
		Preset("amenity/cafe", `{"tags":{"amenity":"cafe"},"geometry":["point"]}`).
		Deprecation(`{"old":{"amenity":"toilet"},"replace":{"amenity":"toilets"}}`).
		Category("category-food", "Food", "amenity/restaurant", "amenity/cafe").
		Build()

	ix, err := schema.Load(context.Background(), schema.DirSource(dir, ""))
	require.NoError(t, err)

	assert.Equal(t, dir, ix.Source())
	require.Len(t, ix.Presets(), 2)
	assert.Equal(t, "amenity/restaurant", ix.Presets()[0].ID)
	assert.Len(t, ix.Deprecations(), 1)
	c, ok := ix.Category("category-food")
	require.True(t, ok)
	assert.Equal(t, []string{"amenity/restaurant", "amenity/cafe"}, c.Members)
}

func TestLoad_WrapperObjects(t *testing.T) {
	dir := newDatasetDir(t).
		RawFile("fields.json", `{"fields":{"name":{"key":"name","type":"localized"}}}`).
		RawFile("presets.json", `{"presets":{"shop/bakery":{"tags":{"shop":"bakery"}},"shop/art":{"tags":{"shop":"art"}}}}`).
		RawFile("preset_categories.json", `{"categories":{"category-shop":{"members":["shop/bakery"]}}}`).
		Build()

	ix, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	require.NoError(t, err)

	_, ok := ix.Field("name")
	assert.True(t, ok)
	require.Len(t, ix.Presets(), 2)
	assert.Equal(t, "shop/bakery", ix.Presets()[0].ID)
	assert.Len(t, ix.Categories(), 1)
}

func TestLoad_OptionalFiles(t *testing.T) {
	dir := newDatasetDir(t).
		Preset("amenity/bicycle_parking", `{"tags":{"amenity":"bicycle_parking"}}`).
		Omit("preset_categories.json").
		Build()

	ix, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	require.NoError(t, err)
	assert.Empty(t, ix.Categories())
	assert.Empty(t, ix.Locales())

	p, _ := ix.Preset("amenity/bicycle_parking")
	assert.Equal(t, "Bicycle parking", ix.PresetName(p))
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	dir := newDatasetDir(t).Omit("presets.json").Build()

	_, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	require.Error(t, err)
	requireDatasetError(t, err, schema.PresetsFile)
}

func TestLoad_NonStringTagValue(t *testing.T) {
	dir := newDatasetDir(t).
		Preset("highway/residential", `{"tags":{"highway":"residential"}}`).
		Preset("bad", `{"tags":{"lanes":2}}`).
		Build()

	_, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	require.Error(t, err)
	de := requireDatasetError(t, err, schema.PresetsFile)
	assert.Equal(t, "bad", de.Entry)
}

func TestLoad_CollectsAllEntryErrors(t *testing.T) {
	dir := newDatasetDir(t).
		Field("a", `{"key":1}`).
		Preset("b", `{"tags":"x"}`).
		Build()

	_, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	var multi *errors.MultiError
	require.True(t, stderrors.As(err, &multi))
	assert.Len(t, multi.Errors, 2)
}

func TestLoad_DeprecationWithoutOld(t *testing.T) {
	dir := newDatasetDir(t).
		Deprecation(`{"replace":{"a":"b"}}`).
		Build()

	_, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	de := requireDatasetError(t, err, schema.DeprecatedFile)
	assert.Equal(t, "0", de.Entry)
}

func TestLoad_TranslationWithoutLocaleSection(t *testing.T) {
	dir := newDatasetDir(t).
		Translation("de", `{"fr":{"presets":{}}}`).
		Build()

	_, err := schema.Load(context.Background(), schema.DirSource(dir, "de"))
	requireDatasetError(t, err, "translations/de.json")
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := newDatasetDir(t).RawFile("fields.json", `{"name":`).Build()

	_, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	requireDatasetError(t, err, schema.FieldsFile)
}

func TestLoad_NoFilesystem(t *testing.T) {
	_, err := schema.Load(context.Background(), schema.Source{Name: "nowhere"})
	requireDatasetError(t, err, "nowhere")
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := schema.Load(ctx, schema.EmbeddedSource("en"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFingerprintStable(t *testing.T) {
	a, err := schema.Load(context.Background(), schema.EmbeddedSource("en"))
	require.NoError(t, err)
	b, err := schema.Load(context.Background(), schema.EmbeddedSource("en"))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	dir := newDatasetDir(t).Preset("x", `{"tags":{"x":"y"}}`).Build()
	c, err := schema.Load(context.Background(), schema.DirSource(dir, "en"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestSourceFor(t *testing.T) {
	assert.Equal(t, "embedded", schema.SourceFor("", "en").Name)
	assert.Equal(t, "/data/dist", schema.SourceFor("/data/dist", "en").Name)
	assert.Equal(t, "en", schema.SourceFor("", "").LocaleOrDefault())
}
