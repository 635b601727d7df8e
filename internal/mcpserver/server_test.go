package mcpserver

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qaengine/internal/config"
	"qaengine/internal/engine"
	"qaengine/internal/knowledge"
)

func newTestHandler(t *testing.T) *ToolHandler {
	t.Helper()
	e := engine.New(config.Default(), nil, zap.NewNop())
	_, err := e.Store().Insert(knowledge.ComputerScience, "javascript closures",
		"JavaScript closures capture variables from their enclosing lexical scope.", nil)
	require.NoError(t, err)
	return NewToolHandler(e)
}

func newTestServer() *mcp.Server {
	impl := &mcp.Implementation{Name: "test-qaengine-mcp", Version: "1.0.0"}
	return mcp.NewServer(impl, &mcp.ServerOptions{HasTools: true})
}

func TestRegisterToolHandlersSucceeds(t *testing.T) {
	h := newTestHandler(t)
	server := newTestServer()
	require.NoError(t, h.RegisterToolHandlers(server))
}

func TestExtractArgumentsFromMap(t *testing.T) {
	h := newTestHandler(t)
	req := &mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"query": "hello"}

	args, err := h.extractArguments(req)
	require.NoError(t, err)
	assert.Equal(t, "hello", args["query"])
}

func TestExtractArgumentsNilReturnsEmptyMap(t *testing.T) {
	h := newTestHandler(t)
	req := &mcp.CallToolRequest{}

	args, err := h.extractArguments(req)
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestCreateErrorResultMarksIsError(t *testing.T) {
	result := createErrorResult("boom")
	assert.True(t, result.IsError)
}
