package mcp

// In-process testing helpers.
//
// CallTool invokes a registered handler directly, bypassing any transport.
// connectClient runs a real SDK client against the server over in-memory
// transports for tests that exercise the protocol surface.

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/osmtags/internal/query"
	"github.com/standardbeagle/osmtags/internal/schema"
	"github.com/standardbeagle/osmtags/testhelpers"
)

var testClientImpl = &mcp.Implementation{Name: "osmtags-test-client", Version: "1.0.0"}

// newTestServer builds a server over the embedded dataset.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	ix, err := schema.DefaultCache().Get(context.Background(), schema.EmbeddedSource("en"))
	require.NoError(t, err)

	cfg := testhelpers.NewTestConfigBuilder().WithLogDir(t.TempDir()).Build()
	s, err := NewServerWithEngine(query.NewEngine(ix, cfg.QueryOptions()), cfg, NoOpLogger)
	require.NoError(t, err)
	return s
}

// CallTool invokes toolName with args. args may be a map, a struct or raw
// JSON text. It returns the text content and the IsError flag.
func (s *Server) CallTool(t *testing.T, toolName string, args any) (string, bool) {
	t.Helper()

	var raw []byte
	switch v := args.(type) {
	case nil:
	case string:
		raw = []byte(v)
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		raw = data
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      toolName,
			Arguments: raw,
		},
	}
	result, err := s.GetHandlerForTesting(toolName)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return resultText(t, result), result.IsError
}

// decodeResult unmarshals a tool's JSON text into dst.
func decodeResult(t *testing.T, text string, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(text), dst), "response: %s", text)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

// connectClient serves s over in-memory transports and returns a connected client session.
func connectClient(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := mcp.NewClient(testClientImpl, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}
