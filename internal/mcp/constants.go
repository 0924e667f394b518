package mcp

// Tool names
const (
	ToolInfo                  = "info"
	ToolGetTagValues          = "get_tag_values"
	ToolGetTagInfo            = "get_tag_info"
	ToolSearchTags            = "search_tags"
	ToolSearchPresets         = "search_presets"
	ToolGetRelatedTags        = "get_related_tags"
	ToolCheckDeprecated       = "check_deprecated"
	ToolValidateTag           = "validate_tag"
	ToolValidateTagCollection = "validate_tag_collection"
	ToolSuggestImprovements   = "suggest_improvements"
	ToolGetPresetDetails      = "get_preset_details"
	ToolGetPresetTags         = "get_preset_tags"
	ToolGetCategories         = "get_categories"
	ToolGetCategoryTags       = "get_category_tags"
	ToolGetSchemaStats        = "get_schema_stats"
	ToolTagsToJSON            = "tags_to_json"
	ToolJSONToTags            = "json_to_tags"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "osmtags"

// Error types reported in the error_type field of failed tool calls.
// Typed errors from internal/errors report their own ErrorType instead.
const (
	ErrorTypeInvalidParameters = "invalid_parameters"
	ErrorTypePanic             = "panic"
)

// toolOrder is the order tools are registered and listed by info.
var toolOrder = []string{
	ToolInfo,
	ToolGetTagValues,
	ToolGetTagInfo,
	ToolSearchTags,
	ToolSearchPresets,
	ToolGetRelatedTags,
	ToolCheckDeprecated,
	ToolValidateTag,
	ToolValidateTagCollection,
	ToolSuggestImprovements,
	ToolGetPresetDetails,
	ToolGetPresetTags,
	ToolGetCategories,
	ToolGetCategoryTags,
	ToolGetSchemaStats,
	ToolTagsToJSON,
	ToolJSONToTags,
}
