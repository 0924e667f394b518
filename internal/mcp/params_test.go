package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
)

func TestDecodeArgs(t *testing.T) {
	var p SearchPresetsParams
	err := decodeArgs(ToolSearchPresets, []byte(`{"keyword": "park", "limit": 5, "unknown": true}`), &p, "keyword")
	require.NoError(t, err)
	assert.Equal(t, "park", p.Keyword)
	assert.Equal(t, 5, p.Limit)
}

func TestDecodeArgs_EmptyArguments(t *testing.T) {
	var p InfoParams
	require.NoError(t, decodeArgs(ToolInfo, nil, &p))
	require.NoError(t, decodeArgs(ToolInfo, []byte("null"), &p))
	assert.Empty(t, p.Tool)
}

func TestDecodeArgs_Missing(t *testing.T) {
	var p TagParams
	err := decodeArgs(ToolValidateTag, []byte(`{"key": "amenity", "value": null}`), &p, "key", "value")

	var missing *osmerrors.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "value", missing.Parameter)
	assert.Equal(t, ToolValidateTag, missing.Tool)
}

func TestDecodeArgs_Malformed(t *testing.T) {
	var p KeyParams
	err := decodeArgs(ToolGetTagValues, []byte(`{"key":`), &p, "key")
	assert.ErrorIs(t, err, errInvalidParameters)
}

func TestTagsParams_Parse(t *testing.T) {
	var p TagsParams
	require.NoError(t, decodeArgs(ToolTagsToJSON, []byte(`{"tags": {"b": "2", "a": "1"}}`), &p, "tags"))
	parsed, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, parsed.Keys())

	require.NoError(t, decodeArgs(ToolTagsToJSON, []byte(`{"tags": "a=1\nb=2"}`), &p, "tags"))
	parsed, err = p.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, parsed.Keys())
}
