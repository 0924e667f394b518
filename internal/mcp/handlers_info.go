package mcp

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/osmtags/internal/version"
)

// toolExamples holds sample arguments shown by info <tool>.
var toolExamples = map[string][]map[string]any{
	ToolGetTagValues:          {{"key": "amenity"}, {"key": "parking:both"}},
	ToolGetTagInfo:            {{"key": "parking"}},
	ToolSearchTags:            {{"keyword": "parking", "limit": 10}},
	ToolSearchPresets:         {{"keyword": "garage"}, {"keyword": "", "id_pattern": "amenity/parking*", "geometry": "area"}},
	ToolGetRelatedTags:        {{"key": "amenity", "value": "parking"}},
	ToolCheckDeprecated:       {{"key": "amenity", "value": "toilet"}, {"key": "shop"}},
	ToolValidateTag:           {{"key": "parking", "value": "underground"}},
	ToolValidateTagCollection: {{"tags": "amenity=parking\nparking=covered"}, {"tags": map[string]any{"amenity": "cafe"}}},
	ToolSuggestImprovements:   {{"tags": map[string]any{"amenity": "restaurant", "name": "Roma"}}},
	ToolGetPresetDetails:      {{"preset_id": "amenity/parking/multi-storey"}},
	ToolGetPresetTags:         {{"preset_id": "amenity/parking"}},
	ToolGetCategories:         {{}},
	ToolGetCategoryTags:       {{"category": "category-parking"}, {"category": "Parking Features"}},
	ToolGetSchemaStats:        {{}},
	ToolTagsToJSON:            {{"tags": "amenity=cafe\nname=Central"}},
	ToolJSONToTags:            {{"tags": map[string]any{"amenity": "cafe", "name": "Central"}}},
}

// ToolSummary is one entry of the info overview.
type ToolSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolInfoResponse describes one tool.
type ToolInfoResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
	Required    []string          `json:"required,omitempty"`
	Examples    []map[string]any  `json:"examples,omitempty"`
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p InfoParams
	if err := decodeArgs(ToolInfo, req.Params.Arguments, &p); err != nil {
		return createErrorResponse(ToolInfo, err)
	}

	name := strings.ToLower(strings.TrimSpace(p.Tool))
	switch name {
	case "":
		return s.infoOverview()
	case "version":
		return s.infoVersion()
	}

	tool, ok := s.tools[name]
	if !ok {
		return createErrorResponse(ToolInfo, fmt.Errorf("%w: unknown tool %q; available: %s",
			errInvalidParameters, name, strings.Join(toolOrder, ", ")))
	}
	return createJSONResponse(describeTool(tool))
}

func (s *Server) infoOverview() (*mcp.CallToolResult, error) {
	tools := make([]ToolSummary, 0, len(toolOrder))
	for _, name := range toolOrder {
		if t, ok := s.tools[name]; ok {
			tools = append(tools, ToolSummary{Name: t.Name, Description: t.Description})
		}
	}
	return createJSONResponse(map[string]interface{}{
		"server":      ServerName,
		"description": "OpenStreetMap tagging schema: look up keys and values, search presets, validate tags and find deprecations",
		"tools":       tools,
		"tag_formats": []string{
			"key=value lines: \"amenity=cafe\\nname=Central\"",
			"JSON object: {\"amenity\": \"cafe\", \"name\": \"Central\"}",
		},
		"help": "Use {\"tool\": \"<name>\"} for parameters and examples, {\"tool\": \"version\"} for version info",
	})
}

func (s *Server) infoVersion() (*mcp.CallToolResult, error) {
	stats := s.engine.GetSchemaStats()
	return createJSONResponse(map[string]interface{}{
		"name":           "version",
		"description":    "Server version, build and dataset information",
		"server_name":    ServerName,
		"server_version": version.FullInfo(),
		"build_id":       version.BuildID(),
		"go_version":     runtime.Version(),
		"platform":       runtime.GOOS + "/" + runtime.GOARCH,
		"dataset": map[string]interface{}{
			"source":      stats.Source,
			"locale":      stats.Locale,
			"locales":     stats.Locales,
			"fingerprint": stats.Fingerprint,
			"presets":     stats.PresetCount,
		},
		"capabilities": []string{
			"stdio_transport",
			"tag_lookup",
			"preset_search",
			"tag_validation",
			"deprecation_check",
			"fuzzy_suggestions",
		},
	})
}

func describeTool(tool *mcp.Tool) ToolInfoResponse {
	res := ToolInfoResponse{
		Name:        tool.Name,
		Description: tool.Description,
		Parameters:  map[string]string{},
		Examples:    toolExamples[tool.Name],
	}
	schema, ok := asSchema(tool.InputSchema)
	if !ok {
		return res
	}
	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}
	for name, prop := range schema.Properties {
		desc := prop.Description
		if required[name] {
			desc = "REQUIRED: " + desc
		}
		res.Parameters[name] = desc
	}
	res.Required = append(res.Required, schema.Required...)
	sort.Strings(res.Required)
	return res
}

func asSchema(v any) (*jsonschema.Schema, bool) {
	s, ok := v.(*jsonschema.Schema)
	return s, ok && s != nil
}
