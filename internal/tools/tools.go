// Package tools defines the example tools shipped with the template.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modelctx/mcp-server-template/internal/registry"
)

// All returns the example tool definitions in declaration order.
func All() []registry.Tool {
	return []registry.Tool{Echo(), GetTime()}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
