package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromMetrics(t *testing.T) {
	Register(prometheus.NewRegistry())
	SetBuildInfo("1.0.0", "abc", "2024-01-01")
	SessionOpened()
	SessionOpened()
	SessionClosed()
	ToolCall("echo", true)
	ToolCall("echo", true)
	ToolCall("echo", false)

	if v := testutil.ToFloat64(buildInfo.WithLabelValues("2024-01-01", "abc", "1.0.0")); v != 1 {
		t.Fatalf("build info: %v", v)
	}
	if v := testutil.ToFloat64(sessionsActive); v != 1 {
		t.Fatalf("sessions active: %v", v)
	}
	if v := testutil.ToFloat64(sessionsTotal); v != 2 {
		t.Fatalf("sessions total: %v", v)
	}
	if v := testutil.ToFloat64(toolCallsTotal.WithLabelValues("echo", "ok")); v != 2 {
		t.Fatalf("tool calls ok: %v", v)
	}
	if v := testutil.ToFloat64(toolCallsTotal.WithLabelValues("echo", "error")); v != 1 {
		t.Fatalf("tool calls error: %v", v)
	}
}

func TestSessionCloseIsBalanced(t *testing.T) {
	before := testutil.ToFloat64(sessionsActive)
	SessionOpened()
	SessionClosed()
	if v := testutil.ToFloat64(sessionsActive); v != before {
		t.Fatalf("sessions active: %v, want %v", v, before)
	}
}
