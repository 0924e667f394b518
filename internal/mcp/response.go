package mcp

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	osmerrors "github.com/standardbeagle/osmtags/internal/errors"
)

// errInvalidParameters marks arguments that could not be decoded into a tool's parameters.
var errInvalidParameters = errors.New("invalid parameters")

// createJSONResponse creates a standardized JSON response for MCP tools
func createJSONResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %v", err)
	}
	return createTextResponse(string(content)), nil
}

// createTextResponse wraps already formatted text.
func createTextResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResponse is the body of a failed tool call.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Operation string `json:"operation"`
	ErrorType string `json:"error_type"`
	Line      int    `json:"line,omitempty"`
	Key       string `json:"key,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Help      string `json:"help,omitempty"`
}

// createErrorResponse creates a standardized error response for MCP tools.
// Tool failures are reported inside the result with IsError set, never as
// protocol-level errors, so the client can see them and self-correct.
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	body := ErrorResponse{
		Success:   false,
		Error:     err.Error(),
		Operation: operation,
		ErrorType: string(osmerrors.ErrorTypeInternal),
	}

	var formatErr *osmerrors.FormatError
	var typeErr *osmerrors.TypeError
	var missingErr *osmerrors.MissingParameterError
	var datasetErr *osmerrors.DatasetError
	switch {
	case errors.As(err, &missingErr):
		body.ErrorType = string(missingErr.Type)
		body.Parameter = missingErr.Parameter
		body.Help = fmt.Sprintf("Use the info tool with {\"tool\": %q} for parameters and examples", operation)
	case errors.As(err, &formatErr):
		body.ErrorType = string(formatErr.Type)
		body.Line = formatErr.Line
		body.Help = "Tags are key=value lines or a JSON object of string values"
	case errors.As(err, &typeErr):
		body.ErrorType = string(typeErr.Type)
		body.Key = typeErr.Key
		body.Help = "Tag values must be strings, e.g. {\"building\": \"yes\"}"
	case errors.As(err, &datasetErr):
		body.ErrorType = string(datasetErr.Type)
	case errors.Is(err, errInvalidParameters):
		body.ErrorType = ErrorTypeInvalidParameters
		body.Help = fmt.Sprintf("Use the info tool with {\"tool\": %q} for parameters and examples", operation)
	}

	return createErrorResult(body)
}

// createPanicResponse reports a recovered handler panic.
func createPanicResponse(operation string, r any) (*mcp.CallToolResult, error) {
	return createErrorResult(ErrorResponse{
		Success:   false,
		Error:     fmt.Sprintf("internal error: %v", r),
		Operation: operation,
		ErrorType: ErrorTypePanic,
	})
}

func createErrorResult(body ErrorResponse) (*mcp.CallToolResult, error) {
	response, err := createJSONResponse(body)
	if err != nil {
		return nil, err
	}
	response.IsError = true
	return response, nil
}
