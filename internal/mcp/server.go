// Package mcp exposes the tag schema queries as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/osmtags/internal/config"
	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/internal/version"
)

// Server dispatches MCP tool calls to a query engine.
type Server struct {
	server           *mcp.Server
	engine           *query.Engine
	cfg              *config.Config
	diagnosticLogger *DiagnosticLogger
	searchCache      *lru.Cache[string, any] // nil when caching is disabled
	handlers         map[string]mcp.ToolHandler
	tools            map[string]*mcp.Tool
}

// NewServer loads the configured dataset through the shared schema cache
// and creates a server over it.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// File-based logging keeps stdio clean for the protocol
	diagnosticLogger := NewDiagnosticLogger(true, cfg.Logging.Dir)

	start := time.Now()
	ix, err := schema.DefaultCache().Get(ctx, cfg.Source())
	if err != nil {
		diagnosticLogger.Errorf("Failed to load tagging schema: %v", err)
		diagnosticLogger.Close()
		return nil, fmt.Errorf("failed to load tagging schema: %w", err)
	}
	diagnosticLogger.Printf("Loaded tagging schema from %s (locale %s, %d presets) in %v",
		ix.Source(), ix.Locale(), len(ix.Presets()), time.Since(start))

	return NewServerWithEngine(query.NewEngine(ix, cfg.QueryOptions()), cfg, diagnosticLogger)
}

// NewServerWithEngine creates a server over an existing engine. A nil
// logger discards diagnostics.
func NewServerWithEngine(engine *query.Engine, cfg *config.Config, logger *DiagnosticLogger) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("query engine is required")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = NoOpLogger
	}

	s := &Server{
		engine:           engine,
		cfg:              cfg,
		diagnosticLogger: logger,
		handlers:         make(map[string]mcp.ToolHandler, len(toolOrder)),
		tools:            make(map[string]*mcp.Tool, len(toolOrder)),
	}

	if cfg.Search.CacheSize > 0 {
		cache, err := lru.New[string, any](cfg.Search.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create search cache: %w", err)
		}
		s.searchCache = cache
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version.Info(),
	}, nil)
	s.registerTools()

	logger.Printf("MCP server initialized with %d tools", len(s.handlers))
	return s, nil
}

// addTool registers a tool with call logging and panic recovery.
func (s *Server) addTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	wrapped := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		start := time.Now()

		result, err := s.recoverFromPanic(tool.Name, func() (*mcp.CallToolResult, error) {
			return handler(ctx, req)
		})

		var callErr error
		if err != nil {
			callErr = err
		} else if result != nil && result.IsError {
			callErr = fmt.Errorf("tool returned an error result")
		}
		s.diagnosticLogger.ToolCall(tool.Name, callID, time.Since(start), callErr)
		return result, err
	}
	s.handlers[tool.Name] = wrapped
	s.tools[tool.Name] = tool
	s.server.AddTool(tool, wrapped)
}

// recoverFromPanic runs handler and turns a panic into an error result.
func (s *Server) recoverFromPanic(operation string, handler func() (*mcp.CallToolResult, error)) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.diagnosticLogger.Errorf("PANIC RECOVERED in %s: %v", operation, r)
			s.diagnosticLogger.Errorf("Stack trace: %s", debug.Stack())

			result, err = createPanicResponse(operation, r)
		}
	}()

	result, err = handler()
	if err != nil {
		s.diagnosticLogger.Errorf("Error in %s: %v", operation, err)
		return createErrorResponse(operation, err)
	}
	return result, nil
}

// Engine returns the query engine behind the tools.
func (s *Server) Engine() *query.Engine {
	return s.engine
}

// Start serves MCP over stdio until ctx is done or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.diagnosticLogger.Printf("Starting MCP server with stdio transport")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves one session over an arbitrary transport.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// Shutdown releases the search cache and flushes the diagnostic log.
func (s *Server) Shutdown(ctx context.Context) error {
	s.diagnosticLogger.Printf("Shutting down MCP server...")
	if s.searchCache != nil {
		s.searchCache.Purge()
	}
	s.diagnosticLogger.Printf("MCP server shutdown complete")
	return s.diagnosticLogger.Close()
}

// GetHandlerForTesting returns a handler function for testing purposes
func (s *Server) GetHandlerForTesting(toolName string) mcp.ToolHandler {
	if h, ok := s.handlers[toolName]; ok {
		return h
	}
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return createErrorResponse("GetHandlerForTesting", fmt.Errorf("unknown tool: %s", toolName))
	}
}

// Close releases resources held by the Server
func (s *Server) Close() error {
	return s.diagnosticLogger.Close()
}
