package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	// Fallback zone database so timezone lookups work on minimal images.
	_ "time/tzdata"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/modelctx/mcp-server-template/internal/registry"
)

// GetTime returns the get_time tool: it reports the current time in an
// optional IANA timezone, defaulting to UTC.
func GetTime() registry.Tool {
	return registry.Tool{
		Def: &mcp.Tool{
			Name:        "get_time",
			Description: "Get the current time, optionally in a specific timezone",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"timezone": {Type: "string", Description: "IANA timezone name, e.g. America/New_York; defaults to UTC"},
				},
			},
		},
		Handler: getTimeHandler,
	}
}

type getTimeArgs struct {
	Timezone string `json:"timezone"`
}

func getTimeHandler(_ context.Context, raw json.RawMessage) (*mcp.CallToolResult, error) {
	var args getTimeArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	tz := args.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", tz)
	}
	now := time.Now().In(loc)
	return textResult(fmt.Sprintf("Current time in %s: %s", tz, now.Format(time.RFC1123))), nil
}
