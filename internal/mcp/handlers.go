package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/tags"
)

// GetTagValuesResponse is the result of get_tag_values.
type GetTagValuesResponse struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
	Count  int      `json:"count"`
}

func (s *Server) handleGetTagValues(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p KeyParams
	if err := decodeArgs(ToolGetTagValues, req.Params.Arguments, &p, "key"); err != nil {
		return createErrorResponse(ToolGetTagValues, err)
	}
	values := s.engine.GetTagValues(p.Key)
	return createJSONResponse(GetTagValuesResponse{Key: p.Key, Values: values, Count: len(values)})
}

func (s *Server) handleGetTagInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p KeyParams
	if err := decodeArgs(ToolGetTagInfo, req.Params.Arguments, &p, "key"); err != nil {
		return createErrorResponse(ToolGetTagInfo, err)
	}
	return createJSONResponse(s.engine.GetTagInfo(p.Key))
}

// SearchTagsResponse is the result of search_tags.
type SearchTagsResponse struct {
	Keyword string           `json:"keyword"`
	Results []query.TagMatch `json:"results"`
	Count   int              `json:"count"`
	Cached  bool             `json:"cached,omitempty"`
}

func (s *Server) handleSearchTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p SearchTagsParams
	if err := decodeArgs(ToolSearchTags, req.Params.Arguments, &p, "keyword"); err != nil {
		return createErrorResponse(ToolSearchTags, err)
	}

	key := cacheKey(ToolSearchTags, foldKeyword(p.Keyword), p.Limit)
	results, cached := cachedSearch(s, key, func() ([]query.TagMatch, error) {
		return s.engine.SearchTags(p.Keyword, p.Limit), nil
	})
	return createJSONResponse(SearchTagsResponse{
		Keyword: p.Keyword,
		Results: results,
		Count:   len(results),
		Cached:  cached,
	})
}

// SearchPresetsResponse is the result of search_presets.
type SearchPresetsResponse struct {
	Keyword string                `json:"keyword"`
	Results []query.PresetSummary `json:"results"`
	Count   int                   `json:"count"`
	Cached  bool                  `json:"cached,omitempty"`
}

func (s *Server) handleSearchPresets(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p SearchPresetsParams
	if err := decodeArgs(ToolSearchPresets, req.Params.Arguments, &p, "keyword"); err != nil {
		return createErrorResponse(ToolSearchPresets, err)
	}

	key := cacheKey(ToolSearchPresets, foldKeyword(p.Keyword), p.Geometry, p.IDPattern, p.Limit)
	var searchErr error
	results, cached := cachedSearch(s, key, func() ([]query.PresetSummary, error) {
		res, err := s.engine.SearchPresets(query.PresetSearch{
			Keyword:   p.Keyword,
			Geometry:  p.Geometry,
			IDPattern: p.IDPattern,
			Limit:     p.Limit,
		})
		searchErr = err
		return res, err
	})
	if searchErr != nil {
		return createErrorResponse(ToolSearchPresets, searchErr)
	}
	return createJSONResponse(SearchPresetsResponse{
		Keyword: p.Keyword,
		Results: results,
		Count:   len(results),
		Cached:  cached,
	})
}

// RelatedTagsResponse is the result of get_related_tags.
type RelatedTagsResponse struct {
	Key     string             `json:"key"`
	Value   string             `json:"value,omitempty"`
	Related []query.RelatedTag `json:"related"`
	Count   int                `json:"count"`
}

func (s *Server) handleGetRelatedTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p RelatedTagsParams
	if err := decodeArgs(ToolGetRelatedTags, req.Params.Arguments, &p, "key"); err != nil {
		return createErrorResponse(ToolGetRelatedTags, err)
	}
	related := s.engine.GetRelatedTags(p.Key, p.Value, p.Limit)
	return createJSONResponse(RelatedTagsResponse{Key: p.Key, Value: p.Value, Related: related, Count: len(related)})
}

func (s *Server) handleCheckDeprecated(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p TagParams
	if err := decodeArgs(ToolCheckDeprecated, req.Params.Arguments, &p, "key"); err != nil {
		return createErrorResponse(ToolCheckDeprecated, err)
	}
	return createJSONResponse(s.engine.CheckDeprecated(p.Key, p.Value))
}

func (s *Server) handleValidateTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p TagParams
	if err := decodeArgs(ToolValidateTag, req.Params.Arguments, &p, "key", "value"); err != nil {
		return createErrorResponse(ToolValidateTag, err)
	}
	return createJSONResponse(s.engine.ValidateTag(p.Key, p.Value))
}

// parseTagsArg decodes and normalizes the tags argument shared by the collection tools.
func parseTagsArg(tool string, req *mcp.CallToolRequest) (tags.Tags, error) {
	var p TagsParams
	if err := decodeArgs(tool, req.Params.Arguments, &p, "tags"); err != nil {
		return tags.Tags{}, err
	}
	return p.Parse()
}

func (s *Server) handleValidateTagCollection(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := parseTagsArg(ToolValidateTagCollection, req)
	if err != nil {
		return createErrorResponse(ToolValidateTagCollection, err)
	}
	return createJSONResponse(s.engine.ValidateTagCollection(t))
}

func (s *Server) handleSuggestImprovements(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := parseTagsArg(ToolSuggestImprovements, req)
	if err != nil {
		return createErrorResponse(ToolSuggestImprovements, err)
	}
	return createJSONResponse(s.engine.SuggestImprovements(t))
}

func (s *Server) handleGetPresetDetails(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p PresetParams
	if err := decodeArgs(ToolGetPresetDetails, req.Params.Arguments, &p, "preset_id"); err != nil {
		return createErrorResponse(ToolGetPresetDetails, err)
	}
	return createJSONResponse(s.engine.GetPresetDetails(p.PresetID))
}

func (s *Server) handleGetPresetTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p PresetParams
	if err := decodeArgs(ToolGetPresetTags, req.Params.Arguments, &p, "preset_id"); err != nil {
		return createErrorResponse(ToolGetPresetTags, err)
	}
	return createJSONResponse(s.engine.GetPresetTags(p.PresetID))
}

// CategoriesResponse is the result of get_categories.
type CategoriesResponse struct {
	Categories []query.CategorySummary `json:"categories"`
	Count      int                     `json:"count"`
}

func (s *Server) handleGetCategories(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories := s.engine.GetCategories()
	return createJSONResponse(CategoriesResponse{Categories: categories, Count: len(categories)})
}

func (s *Server) handleGetCategoryTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p CategoryParams
	if err := decodeArgs(ToolGetCategoryTags, req.Params.Arguments, &p, "category"); err != nil {
		return createErrorResponse(ToolGetCategoryTags, err)
	}
	return createJSONResponse(s.engine.GetCategoryTags(p.Category))
}

func (s *Server) handleGetSchemaStats(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return createJSONResponse(s.engine.GetSchemaStats())
}

// Conversion tools return the converted text itself, not a JSON envelope.
// Empty values are kept so the conversion is lossless.

func (s *Server) handleTagsToJSON(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := parseTagsArg(ToolTagsToJSON, req)
	if err != nil {
		return createErrorResponse(ToolTagsToJSON, err)
	}
	out, err := tags.ToJSON(t)
	if err != nil {
		return createErrorResponse(ToolTagsToJSON, fmt.Errorf("failed to encode tags: %w", err))
	}
	return createTextResponse(out), nil
}

func (s *Server) handleJSONToTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := parseTagsArg(ToolJSONToTags, req)
	if err != nil {
		return createErrorResponse(ToolJSONToTags, err)
	}
	return createTextResponse(tags.Format(t)), nil
}
