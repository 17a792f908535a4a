// Package httpserver provides the Streamable HTTP binding: a chi router
// exposing /mcp, /health and optionally /metrics, and the session table
// behind /mcp.
package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/modelctx/mcp-server-template/internal/config"
	"github.com/modelctx/mcp-server-template/internal/mcpserver"
)

// New constructs the HTTP handler for the server. The metrics endpoint is
// mounted here only when it shares the main port; otherwise main serves preg
// on its own listener.
func New(cfg config.Config, sr *SessionRouter, preg *prometheus.Registry, version string) http.Handler {
	r := chi.NewRouter()
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}

	r.Get("/health", healthHandler(version))
	r.Post("/mcp", sr.handlePOST)
	r.Get("/mcp", sr.handleGET)
	r.Delete("/mcp", sr.handleDELETE)

	if preg != nil && cfg.MetricsAddr == ":"+strconv.Itoa(cfg.Port) {
		r.Handle("/metrics", promhttp.HandlerFor(preg, promhttp.HandlerOpts{}))
	}
	return r
}

func healthHandler(version string) http.HandlerFunc {
	type health struct {
		Status  string `json:"status"`
		Server  string `json:"server"`
		Version string `json:"version"`
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(health{Status: "ok", Server: mcpserver.ServerName, Version: version})
	}
}
