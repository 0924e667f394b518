package mcp

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
	"github.com/standardbeagle/osmtags/internal/tags"
)

// InfoParams selects the tool described by info.
type InfoParams struct {
	Tool string `json:"tool,omitempty"`
}

// KeyParams is the argument of single-key lookups.
type KeyParams struct {
	Key string `json:"key"`
}

// TagParams names one tag. Value is optional for some tools.
type TagParams struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// RelatedTagsParams is the argument of get_related_tags.
type RelatedTagsParams struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// SearchTagsParams is the argument of search_tags.
type SearchTagsParams struct {
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit,omitempty"`
}

// SearchPresetsParams is the argument of search_presets.
type SearchPresetsParams struct {
	Keyword   string `json:"keyword"`
	Geometry  string `json:"geometry,omitempty"`
	IDPattern string `json:"id_pattern,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// PresetParams names a preset.
type PresetParams struct {
	PresetID string `json:"preset_id"`
}

// CategoryParams names a category by id or display name.
type CategoryParams struct {
	Category string `json:"category"`
}

// TagsParams carries a tag collection: key=value text, a JSON string or a JSON object.
type TagsParams struct {
	Tags json.RawMessage `json:"tags"`
}

// Parse normalizes the tag collection. Object key order is preserved.
func (p TagsParams) Parse() (tags.Tags, error) {
	return tags.ParseRaw(p.Tags)
}

// decodeArgs checks that every required argument is present and non-null,
// then decodes raw into dst. Unknown fields are ignored.
func decodeArgs(tool string, raw []byte, dst any, required ...string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	if len(required) > 0 {
		var present map[string]json.RawMessage
		if err := json.Unmarshal(raw, &present); err != nil {
			return fmt.Errorf("%w: %v", errInvalidParameters, err)
		}
		for _, name := range required {
			v, ok := present[name]
			if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return osmerrors.NewMissingParameterError(tool, name)
			}
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParameters, err)
	}
	return nil
}
