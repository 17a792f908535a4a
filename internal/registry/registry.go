// Package registry holds the static catalog of tools and resources the
// server exposes. The catalog is built once at startup and read-only
// afterwards.
package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// A ToolHandler executes a tool call. Argument validation is local to the
// handler: a descriptive error is returned on mismatch and surfaced to the
// client inside the call result, never as a protocol fault.
type ToolHandler func(ctx context.Context, args json.RawMessage) (*mcp.CallToolResult, error)

// A ResourceHandler reads the contents of a resource.
type ResourceHandler func(ctx context.Context, uri string) (*mcp.ReadResourceResult, error)

// Tool pairs a protocol-level tool descriptor with its handler.
type Tool struct {
	Def     *mcp.Tool
	Handler ToolHandler
}

// Resource pairs a protocol-level resource descriptor with its handler.
type Resource struct {
	Def     *mcp.Resource
	Handler ResourceHandler
}

// Registry maps tool names and resource URIs to their definitions.
// Listing order matches declaration order.
type Registry struct {
	tools     map[string]Tool
	toolOrder []string
	resources map[string]Resource
	resOrder  []string
}

// New builds a registry from ordered definition lists.
// Duplicate tool names or resource URIs are rejected.
func New(tools []Tool, resources []Resource) (*Registry, error) {
	r := &Registry{
		tools:     make(map[string]Tool, len(tools)),
		resources: make(map[string]Resource, len(resources)),
	}
	for _, t := range tools {
		if t.Def == nil || t.Def.Name == "" {
			return nil, fmt.Errorf("tool definition missing a name")
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("tool %q has no handler", t.Def.Name)
		}
		if _, ok := r.tools[t.Def.Name]; ok {
			return nil, fmt.Errorf("duplicate tool %q", t.Def.Name)
		}
		r.tools[t.Def.Name] = t
		r.toolOrder = append(r.toolOrder, t.Def.Name)
	}
	for _, res := range resources {
		if res.Def == nil || res.Def.URI == "" {
			return nil, fmt.Errorf("resource definition missing a URI")
		}
		if res.Handler == nil {
			return nil, fmt.Errorf("resource %q has no handler", res.Def.URI)
		}
		if _, ok := r.resources[res.Def.URI]; ok {
			return nil, fmt.Errorf("duplicate resource %q", res.Def.URI)
		}
		r.resources[res.Def.URI] = res
		r.resOrder = append(r.resOrder, res.Def.URI)
	}
	return r, nil
}

// Tool looks up a tool by name.
func (r *Registry) Tool(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Resource looks up a resource by URI.
func (r *Registry) Resource(uri string) (Resource, bool) {
	res, ok := r.resources[uri]
	return res, ok
}

// Tools returns every registered tool in declaration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.toolOrder))
	for _, name := range r.toolOrder {
		out = append(out, r.tools[name])
	}
	return out
}

// Resources returns every registered resource in declaration order.
func (r *Registry) Resources() []Resource {
	out := make([]Resource, 0, len(r.resOrder))
	for _, uri := range r.resOrder {
		out = append(out, r.resources[uri])
	}
	return out
}
