package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "mcp_server_build_info",
			Help:        "Build information for the MCP server",
			ConstLabels: prometheus.Labels{"component": "server"},
		},
		[]string{"date", "sha", "version"},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mcp_server_sessions_active",
			Help: "Number of live Streamable HTTP sessions",
		},
	)

	sessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mcp_server_sessions_total",
			Help: "Total number of Streamable HTTP sessions created",
		},
	)

	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_server_tool_calls_total",
			Help: "Total number of tool calls by tool name and outcome",
		},
		[]string{"tool", "outcome"},
	)
)

// Register registers the server collectors with r.
func Register(r prometheus.Registerer) {
	r.MustRegister(buildInfo, sessionsActive, sessionsTotal, toolCallsTotal)
}

// SetBuildInfo sets the build info metric for the server.
func SetBuildInfo(version, sha, date string) {
	buildInfo.WithLabelValues(date, sha, version).Set(1)
}

// SessionOpened records a newly created session.
func SessionOpened() {
	sessionsActive.Inc()
	sessionsTotal.Inc()
}

// SessionClosed records a removed session.
func SessionClosed() { sessionsActive.Dec() }

// ToolCall records one tool invocation; failed lookups, validation errors and
// handler faults all count as outcome "error".
func ToolCall(tool string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	toolCallsTotal.WithLabelValues(tool, outcome).Inc()
}
