package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modelctx/mcp-server-template/internal/registry"
)

// Echo returns the echo tool: it repeats the provided message back.
func Echo() registry.Tool {
	return registry.Tool{
		Def: &mcp.Tool{
			Name:        "echo",
			Description: "Echo back the provided message",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"message": {Type: "string", Description: "Message to echo back"},
				},
				Required: []string{"message"},
			},
		},
		Handler: echoHandler,
	}
}

type echoArgs struct {
	// Pointer distinguishes an absent field from an empty string.
	Message *string `json:"message"`
}

func echoHandler(_ context.Context, raw json.RawMessage) (*mcp.CallToolResult, error) {
	var args echoArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if args.Message == nil {
		return nil, fmt.Errorf("missing required argument: message")
	}
	return textResult("Echo: " + *args.Message), nil
}
