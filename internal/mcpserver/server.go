// Package mcpserver exposes the engine's external operations — submit_query,
// submit_background, get_task, get_stats, run_benchmarks, and
// start_training — as MCP tools so an assistant can drive the engine
// directly over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"qaengine/internal/engine"
)

// ToolHandler registers the engine's operations as MCP tools.
type ToolHandler struct {
	engine *engine.Engine
}

// NewToolHandler builds a ToolHandler over the given engine.
func NewToolHandler(e *engine.Engine) *ToolHandler {
	return &ToolHandler{engine: e}
}

// RegisterToolHandlers registers every tool with server.
func (h *ToolHandler) RegisterToolHandlers(server *mcp.Server) error {
	if err := h.registerSubmitQuery(server); err != nil {
		return fmt.Errorf("failed to register submit_query tool: %w", err)
	}
	if err := h.registerSubmitBackground(server); err != nil {
		return fmt.Errorf("failed to register submit_background tool: %w", err)
	}
	if err := h.registerGetTask(server); err != nil {
		return fmt.Errorf("failed to register get_task tool: %w", err)
	}
	if err := h.registerGetStats(server); err != nil {
		return fmt.Errorf("failed to register get_stats tool: %w", err)
	}
	if err := h.registerRunBenchmarks(server); err != nil {
		return fmt.Errorf("failed to register run_benchmarks tool: %w", err)
	}
	if err := h.registerStartTraining(server); err != nil {
		return fmt.Errorf("failed to register start_training tool: %w", err)
	}
	return nil
}

// registerSubmitQuery registers the submit_query tool, which answers a
// question synchronously.
func (h *ToolHandler) registerSubmitQuery(server *mcp.Server) error {
	tool := &mcp.Tool{
		Name:        "submit_query",
		Description: "Answer a question synchronously using the knowledge base and candidate selector.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "The question to answer",
				},
			},
			Required: []string{"query"},
		},
	}

	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := h.extractArguments(req)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to extract arguments: %s", err.Error())), nil
		}
		query, ok := args["query"].(string)
		if !ok || query == "" {
			return createErrorResult("query parameter is required and must be a non-empty string"), nil
		}

		answer, err := h.engine.SubmitQuery(ctx, query)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to answer query: %s", err.Error())), nil
		}
		return createTextResult(answer), nil
	})

	return nil
}

// registerSubmitBackground registers the submit_background tool, which
// enqueues a query as a background task and returns immediately.
func (h *ToolHandler) registerSubmitBackground(server *mcp.Server) error {
	tool := &mcp.Tool{
		Name:        "submit_background",
		Description: "Enqueue a question as a background task and return its task ID immediately.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "The question to answer in the background",
				},
				"sessionId": {
					Type:        "string",
					Description: "Caller-supplied session identifier for correlating results",
				},
			},
			Required: []string{"query"},
		},
	}

	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := h.extractArguments(req)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to extract arguments: %s", err.Error())), nil
		}
		query, ok := args["query"].(string)
		if !ok || query == "" {
			return createErrorResult("query parameter is required and must be a non-empty string"), nil
		}
		sessionID, _ := args["sessionId"].(string)

		id := h.engine.SubmitBackground(query, sessionID)
		return createTextResult(fmt.Sprintf(`{"taskId":%q}`, id)), nil
	})

	return nil
}

// registerGetTask registers the get_task tool, which reports a previously
// submitted task's current state.
func (h *ToolHandler) registerGetTask(server *mcp.Server) error {
	tool := &mcp.Tool{
		Name:        "get_task",
		Description: "Look up a previously submitted task by ID and report its status and result.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"taskId": {
					Type:        "string",
					Description: "The task ID returned by submit_background",
				},
			},
			Required: []string{"taskId"},
		},
	}

	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := h.extractArguments(req)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to extract arguments: %s", err.Error())), nil
		}
		taskID, ok := args["taskId"].(string)
		if !ok || taskID == "" {
			return createErrorResult("taskId parameter is required and must be a non-empty string"), nil
		}

		task, found := h.engine.GetTask(taskID)
		if !found {
			return createErrorResult(fmt.Sprintf("no task found with id %q", taskID)), nil
		}

		body, err := json.Marshal(task)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to marshal task: %s", err.Error())), nil
		}
		return createTextResult(string(body)), nil
	})

	return nil
}

// registerGetStats registers the get_stats tool, which reports aggregate
// counters across every engine component.
func (h *ToolHandler) registerGetStats(server *mcp.Server) error {
	tool := &mcp.Tool{
		Name:        "get_stats",
		Description: "Report aggregate statistics: knowledge base size, evaluation history, and scheduler queue depth.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}

	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := h.engine.GetStats()
		body, err := json.Marshal(stats)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to marshal stats: %s", err.Error())), nil
		}
		return createTextResult(string(body)), nil
	})

	return nil
}

// registerRunBenchmarks registers the run_benchmarks tool, which triggers
// one comprehensive benchmark evaluation and returns its report.
func (h *ToolHandler) registerRunBenchmarks(server *mcp.Server) error {
	tool := &mcp.Tool{
		Name:        "run_benchmarks",
		Description: "Run one comprehensive benchmark evaluation across all suites and return the report.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}

	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := h.engine.RunBenchmarks(ctx)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to run benchmarks: %s", err.Error())), nil
		}
		body, err := json.Marshal(report)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to marshal report: %s", err.Error())), nil
		}
		return createTextResult(string(body)), nil
	})

	return nil
}

// registerStartTraining registers the start_training tool, which kicks off
// one benchmark-driven training session.
func (h *ToolHandler) registerStartTraining(server *mcp.Server) error {
	tool := &mcp.Tool{
		Name:        "start_training",
		Description: "Start one benchmark-driven training session against the weakest suites, subject to the daily session quota.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}

	server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		session, err := h.engine.StartTraining(ctx)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to start training: %s", err.Error())), nil
		}
		body, err := json.Marshal(session)
		if err != nil {
			return createErrorResult(fmt.Sprintf("failed to marshal session: %s", err.Error())), nil
		}
		return createTextResult(string(body)), nil
	})

	return nil
}

// extractArguments safely extracts arguments from a CallToolRequest.
func (h *ToolHandler) extractArguments(req *mcp.CallToolRequest) (map[string]interface{}, error) {
	if req.Params.Arguments == nil {
		return make(map[string]interface{}), nil
	}

	if args, ok := req.Params.Arguments.(map[string]interface{}); ok {
		return args, nil
	}

	jsonBytes, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return nil, fmt.Errorf("arguments must be serializable: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &result); err != nil {
		return nil, fmt.Errorf("arguments must be unmarshable to map[string]interface{}: %w", err)
	}

	return result, nil
}

// createErrorResult creates an error result with the given message.
func createErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("Error: %s", message)},
		},
		IsError: true,
	}
}

// createTextResult creates a successful result wrapping a single text
// payload, typically a JSON-encoded value.
func createTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
