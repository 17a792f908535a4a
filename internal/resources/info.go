// Package resources defines the example resources shipped with the template.
package resources

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modelctx/mcp-server-template/internal/registry"
)

// InfoURI is the URI of the static server-info resource.
const InfoURI = "mcp://info"

const infoText = `MCP server template.

A starting point for building Model Context Protocol servers in Go.
It ships two example tools (echo, get_time) and this resource, and
speaks both the stdio and Streamable HTTP transports.
`

// All returns the example resource definitions in declaration order.
func All() []registry.Resource {
	return []registry.Resource{Info()}
}

// Info returns the static mcp://info resource.
func Info() registry.Resource {
	return registry.Resource{
		Def: &mcp.Resource{
			URI:         InfoURI,
			Name:        "Server Info",
			Description: "Information about this server",
			MIMEType:    "text/plain",
		},
		Handler: func(_ context.Context, uri string) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{
					{URI: uri, MIMEType: "text/plain", Text: infoText},
				},
			}, nil
		},
	}
}
