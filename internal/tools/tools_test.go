package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatalf("result has no content")
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

func TestEcho(t *testing.T) {
	res, err := Echo().Handler(context.Background(), json.RawMessage(`{"message":"hi"}`))
	if err != nil {
		t.Fatalf("echo: %v", err)
	}
	if got := text(t, res); got != "Echo: hi" {
		t.Fatalf("got %q", got)
	}
}

func TestEchoMissingMessage(t *testing.T) {
	for _, raw := range []string{"", "{}", `{"other":"x"}`} {
		if _, err := Echo().Handler(context.Background(), json.RawMessage(raw)); err == nil {
			t.Fatalf("args %q: expected validation error", raw)
		}
	}
}

func TestEchoEmptyMessage(t *testing.T) {
	// An explicitly empty string is present, hence valid.
	res, err := Echo().Handler(context.Background(), json.RawMessage(`{"message":""}`))
	if err != nil {
		t.Fatalf("echo: %v", err)
	}
	if got := text(t, res); got != "Echo: " {
		t.Fatalf("got %q", got)
	}
}

func TestGetTimeDefaultsToUTC(t *testing.T) {
	res, err := GetTime().Handler(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("get_time: %v", err)
	}
	got := text(t, res)
	const prefix = "Current time in UTC: "
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("got %q", got)
	}
	if strings.TrimPrefix(got, prefix) == "" {
		t.Fatalf("empty time in %q", got)
	}
}

func TestGetTimeWithZone(t *testing.T) {
	res, err := GetTime().Handler(context.Background(), json.RawMessage(`{"timezone":"America/New_York"}`))
	if err != nil {
		t.Fatalf("get_time: %v", err)
	}
	if got := text(t, res); !strings.HasPrefix(got, "Current time in America/New_York: ") {
		t.Fatalf("got %q", got)
	}
}

func TestGetTimeUnknownZone(t *testing.T) {
	if _, err := GetTime().Handler(context.Background(), json.RawMessage(`{"timezone":"Nowhere/Special"}`)); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
