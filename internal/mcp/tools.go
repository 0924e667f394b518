package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func stringProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

func limitProp() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: "Maximum number of results (default 100)"}
}

// tagsProp accepts key=value text, a JSON object encoded as a string, or a JSON object.
func tagsProp() *jsonschema.Schema {
	return &jsonschema.Schema{
		Types:       []string{"string", "object"},
		Description: "Tags as key=value lines (\"amenity=cafe\\nname=Central\") or a JSON object ({\"amenity\": \"cafe\"})",
	}
}

func objectSchema(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func (s *Server) registerTools() {
	// Meta tool first
	s.addTool(&mcp.Tool{
		Name:        ToolInfo,
		Description: "Get help and examples for any tool. Use 'info' for an overview, 'info <tool>' for specifics or 'info version' for server and dataset version.",
		InputSchema: objectSchema(nil, map[string]*jsonschema.Schema{
			"tool": stringProp("Tool name to describe (e.g. 'validate_tag', 'version')"),
		}),
	}, s.handleInfo)

	// Key/value lookups
	s.addTool(&mcp.Tool{
		Name:        ToolGetTagValues,
		Description: "List every known value for an OSM key, sorted. Combines field options with values used by presets.",
		InputSchema: objectSchema([]string{"key"}, map[string]*jsonschema.Schema{
			"key": stringProp("OSM key, e.g. 'amenity' or 'parking:both'"),
		}),
	}, s.handleGetTagValues)

	s.addTool(&mcp.Tool{
		Name:        ToolGetTagInfo,
		Description: "Describe an OSM key: field type, label and each value with its translated title and description.",
		InputSchema: objectSchema([]string{"key"}, map[string]*jsonschema.Schema{
			"key": stringProp("OSM key, e.g. 'parking'"),
		}),
	}, s.handleGetTagInfo)

	// Search
	s.addTool(&mcp.Tool{
		Name:        ToolSearchTags,
		Description: "Find key=value tags by keyword. Matches preset names, tag keys and tag values; a matching preset contributes all of its tags.",
		InputSchema: objectSchema([]string{"keyword"}, map[string]*jsonschema.Schema{
			"keyword": stringProp("Case-insensitive keyword, e.g. 'parking'"),
			"limit":   limitProp(),
		}),
	}, s.handleSearchTags)

	s.addTool(&mcp.Tool{
		Name:        ToolSearchPresets,
		Description: "Find presets by name, id or search term, ranked by how well the name matches. Optional geometry and id glob filters.",
		InputSchema: objectSchema([]string{"keyword"}, map[string]*jsonschema.Schema{
			"keyword": stringProp("Case-insensitive keyword; empty matches every preset that passes the filters"),
			"geometry": {
				Type:        "string",
				Description: "Only presets drawable as this geometry",
				Enum:        []any{"point", "vertex", "line", "area", "relation"},
			},
			"id_pattern": stringProp("Glob over preset ids, e.g. 'amenity/parking*' or 'amenity/**'"),
			"limit":      limitProp(),
		}),
	}, s.handleSearchPresets)

	s.addTool(&mcp.Tool{
		Name:        ToolGetRelatedTags,
		Description: "List tags that appear together with a key (or key=value) in presets, most frequent first.",
		InputSchema: objectSchema([]string{"key"}, map[string]*jsonschema.Schema{
			"key":   stringProp("OSM key"),
			"value": stringProp("Optional value; presets using '*' for the key also match"),
			"limit": limitProp(),
		}),
	}, s.handleGetRelatedTags)

	// Validation
	s.addTool(&mcp.Tool{
		Name:        ToolCheckDeprecated,
		Description: "Check whether a key or key=value tag is deprecated and what replaces it.",
		InputSchema: objectSchema([]string{"key"}, map[string]*jsonschema.Schema{
			"key":   stringProp("OSM key"),
			"value": stringProp("Optional value; without it every deprecation mentioning the key is returned"),
		}),
	}, s.handleCheckDeprecated)

	s.addTool(&mcp.Tool{
		Name:        ToolValidateTag,
		Description: "Validate one tag: empty parts, deprecation, field options and unknown keys.",
		InputSchema: objectSchema([]string{"key", "value"}, map[string]*jsonschema.Schema{
			"key":   stringProp("OSM key"),
			"value": stringProp("Tag value"),
		}),
	}, s.handleValidateTag)

	s.addTool(&mcp.Tool{
		Name:        ToolValidateTagCollection,
		Description: "Validate every tag of a feature and report counts of valid, deprecated and invalid tags.",
		InputSchema: objectSchema([]string{"tags"}, map[string]*jsonschema.Schema{
			"tags": tagsProp(),
		}),
	}, s.handleValidateTagCollection)

	s.addTool(&mcp.Tool{
		Name:        ToolSuggestImprovements,
		Description: "Suggest missing fields for a feature's tags, flag deprecated tags and list the presets it matches.",
		InputSchema: objectSchema([]string{"tags"}, map[string]*jsonschema.Schema{
			"tags": tagsProp(),
		}),
	}, s.handleSuggestImprovements)

	// Presets and categories
	s.addTool(&mcp.Tool{
		Name:        ToolGetPresetDetails,
		Description: "Get a preset with its tags, geometry, terms and resolved fields. Unknown ids return similar ids.",
		InputSchema: objectSchema([]string{"preset_id"}, map[string]*jsonschema.Schema{
			"preset_id": stringProp("Preset id, e.g. 'amenity/parking'"),
		}),
	}, s.handleGetPresetDetails)

	s.addTool(&mcp.Tool{
		Name:        ToolGetPresetTags,
		Description: "Get the identifying tags and addTags of a preset.",
		InputSchema: objectSchema([]string{"preset_id"}, map[string]*jsonschema.Schema{
			"preset_id": stringProp("Preset id, e.g. 'amenity/parking'"),
		}),
	}, s.handleGetPresetTags)

	s.addTool(&mcp.Tool{
		Name:        ToolGetCategories,
		Description: "List preset categories with their member counts.",
		InputSchema: objectSchema(nil, nil),
	}, s.handleGetCategories)

	s.addTool(&mcp.Tool{
		Name:        ToolGetCategoryTags,
		Description: "List the presets of a category and the tags they use.",
		InputSchema: objectSchema([]string{"category"}, map[string]*jsonschema.Schema{
			"category": stringProp("Category id ('category-parking') or name ('Parking Features')"),
		}),
	}, s.handleGetCategoryTags)

	s.addTool(&mcp.Tool{
		Name:        ToolGetSchemaStats,
		Description: "Summarize the loaded tagging schema: counts, locales, source and fingerprint.",
		InputSchema: objectSchema(nil, nil),
	}, s.handleGetSchemaStats)

	// Conversion helpers
	s.addTool(&mcp.Tool{
		Name:        ToolTagsToJSON,
		Description: "Convert tags to a JSON object, keeping their order.",
		InputSchema: objectSchema([]string{"tags"}, map[string]*jsonschema.Schema{
			"tags": tagsProp(),
		}),
	}, s.handleTagsToJSON)

	s.addTool(&mcp.Tool{
		Name:        ToolJSONToTags,
		Description: "Convert tags to key=value lines, keeping their order.",
		InputSchema: objectSchema([]string{"tags"}, map[string]*jsonschema.Schema{
			"tags": tagsProp(),
		}),
	}, s.handleJSONToTags)
}
