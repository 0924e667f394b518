package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/tags"
)

func TestNewResultFormatter(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{})
	assert.Equal(t, "  ", formatter.options.Indent)
	assert.Equal(t, FormatText, formatter.options.Format)

	options := FormatterOptions{Format: FormatJSON, Indent: "\t"}
	formatter = NewResultFormatter(options)
	assert.Equal(t, options, formatter.options)
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("text"))
	assert.True(t, ValidFormat("json"))
	assert.True(t, ValidFormat("yaml"))
	assert.False(t, ValidFormat("xml"))
}

func TestFormat_UnknownFormat(t *testing.T) {
	_, err := NewResultFormatter(FormatterOptions{Format: "xml"}).Format([]string{})
	assert.Error(t, err)
}

func TestFormat_JSONKeepsTagOrder(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{Format: FormatJSON})

	out, err := formatter.Format(tags.New("name", "Roma", "amenity", "restaurant"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Roma\",\n  \"amenity\": \"restaurant\"\n}\n", out)
}

func TestFormat_YAML(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{Format: FormatYAML})

	out, err := formatter.Format(query.RelatedTag{Key: "layer", Value: "-1", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, "key: layer\nvalue: \"-1\"\ncount: 1\n", out)

	out, err = formatter.Format(tags.New("amenity", "parking"))
	require.NoError(t, err)
	assert.Equal(t, "- key: amenity\n  value: parking\n", out)
}

func TestFormat_TextValues(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{})

	out, err := formatter.Format([]string{"lane", "surface"})
	require.NoError(t, err)
	assert.Equal(t, "lane\nsurface\n", out)

	out, err = formatter.Format([]string{})
	require.NoError(t, err)
	assert.Equal(t, "No values found\n", out)
}

func TestFormat_TextTagInfo(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{})

	out, err := formatter.Format(query.TagInfo{
		Key:                "parking",
		Name:               "Type",
		Type:               "combo",
		HasFieldDefinition: true,
		Values: []query.ValueInfo{
			{Value: "lane", Title: "Roadside Lane"},
			{Value: "multi-storey", Title: "Multilevel", Description: "A building with several levels of parking"},
			{Value: "x", Title: "x"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Key: parking\n"+
		"Field: Type (combo)\n"+
		"  lane - Roadside Lane\n"+
		"  multi-storey - Multilevel: A building with several levels of parking\n"+
		"  x\n", out)
}

func TestFormat_TextValidation(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{})

	out, err := formatter.Format(query.CollectionValidation{
		Valid:    false,
		TagCount: 2, ValidCount: 1, ErrorCount: 1, DeprecatedCount: 1,
		Results: []query.TagValidation{
			{Key: "amenity", Value: "toilet", Valid: true, Deprecated: true, Message: "deprecated"},
			{Key: "name", Message: "empty"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Valid: false (2 tags, 1 valid, 1 deprecated, 1 errors)\n"+
		"  [deprecated] deprecated\n"+
		"  [error] empty\n", out)

	out, err = formatter.Format(query.TagValidation{Valid: true, NonStandard: true, Message: "odd", Suggestions: []string{"pizza"}})
	require.NoError(t, err)
	assert.Equal(t, "[warning] odd\nDid you mean: pizza\n", out)
}

func TestFormat_TextDeprecation(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{})
	replacement := tags.New("parking", "multi-storey")

	out, err := formatter.Format(query.DeprecationResult{
		Key: "parking", Value: "covered", Deprecated: true,
		Message: "deprecated",
		Cases: []query.DeprecationCase{{
			OldTags:         tags.New("parking", "covered"),
			ReplacementTags: &replacement,
			DeprecationType: query.DeprecationValue,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "deprecated\n  parking=covered -> parking=multi-storey (value)\n", out)
}

func TestFormat_TextFallsBackToYAML(t *testing.T) {
	formatter := NewResultFormatter(FormatterOptions{})

	out, err := formatter.Format(query.SchemaStats{PresetCount: 3, Locale: "en"})
	require.NoError(t, err)
	assert.Contains(t, out, "presetCount: 3\n")
	assert.Contains(t, out, "locale: en\n")
}
