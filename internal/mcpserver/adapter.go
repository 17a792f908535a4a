// Package mcpserver binds the tool and resource registry onto the MCP
// protocol runtime.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modelctx/mcp-server-template/internal/metrics"
	"github.com/modelctx/mcp-server-template/internal/registry"
)

// ServerName is the implementation name reported during the handshake and on
// the health endpoint.
const ServerName = "mcp-server-template"

// Adapter dispatches protocol-level tool calls and resource reads against a
// registry. Tool faults are wrapped into the call result; resource lookup
// failures propagate to the protocol runtime as errors.
type Adapter struct {
	reg *registry.Registry
}

// NewAdapter returns an adapter over reg.
func NewAdapter(reg *registry.Registry) *Adapter {
	return &Adapter{reg: reg}
}

// CallTool looks up and invokes a tool. It never returns a transport-level
// fault: unknown tools, argument validation failures and handler errors are
// all reported inside the result with IsError set, so the model can see them.
func (a *Adapter) CallTool(ctx context.Context, name string, args json.RawMessage) *mcp.CallToolResult {
	t, ok := a.reg.Tool(name)
	if !ok {
		metrics.ToolCall(name, false)
		return errorResult("Unknown tool: " + name)
	}
	res, err := t.Handler(ctx, args)
	if err != nil {
		metrics.ToolCall(name, false)
		return errorResult(err.Error())
	}
	metrics.ToolCall(name, true)
	return res
}

// ReadResource looks up and invokes a resource handler. An unknown URI is an
// error for the protocol runtime to report.
func (a *Adapter) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	r, ok := a.reg.Resource(uri)
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", uri)
	}
	return r.Handler(ctx, uri)
}

// Server builds the SDK server, with every registered tool and resource
// routed through the adapter.
func (a *Adapter) Server(version string) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	for _, t := range a.reg.Tools() {
		name := t.Def.Name
		s.AddTool(t.Def, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return a.CallTool(ctx, name, rawArguments(req.Params.Arguments)), nil
		})
	}
	for _, r := range a.reg.Resources() {
		uri := r.Def.URI
		s.AddResource(r.Def, func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return a.ReadResource(ctx, uri)
		})
	}
	return s
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// rawArguments normalizes the wire arguments to raw JSON for the registry
// handlers, which own their own decoding and validation.
func rawArguments(v any) json.RawMessage {
	switch args := v.(type) {
	case nil:
		return nil
	case json.RawMessage:
		return args
	default:
		b, err := json.Marshal(args)
		if err != nil {
			return nil
		}
		return b
	}
}
