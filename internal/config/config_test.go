package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	cfg.Finalize()
	if cfg.HTTP {
		t.Fatalf("default binding should be stdio")
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("port %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.MetricsAddr != ":3001" {
		t.Fatalf("metrics addr %q", cfg.MetricsAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level %q", cfg.LogLevel)
	}
}

func TestFinalizeTracksPort(t *testing.T) {
	cfg := Config{Port: 8080}
	cfg.SetDefaults()
	cfg.Finalize()
	if cfg.MetricsAddr != ":8080" {
		t.Fatalf("metrics addr %q, want :8080", cfg.MetricsAddr)
	}
	cfg = Config{Port: 8080, MetricsAddr: ":9090"}
	cfg.Finalize()
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("explicit metrics addr overridden: %q", cfg.MetricsAddr)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MCP_HTTP", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	var cfg Config
	cfg.SetDefaults()
	cfg.ApplyEnv()
	cfg.Finalize()
	if cfg.Port != 8080 || !cfg.HTTP || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("metrics addr %q", cfg.MetricsAddr)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins %v", cfg.AllowedOrigins)
	}
}

func TestApplyEnvIgnoresBadPort(t *testing.T) {
	t.Setenv("PORT", "nope")
	var cfg Config
	cfg.SetDefaults()
	cfg.ApplyEnv()
	if cfg.Port != DefaultPort {
		t.Fatalf("port %d, want default", cfg.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "http: true\nport: 4000\nlog_level: warn\nallowed_origins:\n  - https://a.example\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	var cfg Config
	cfg.SetDefaults()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.HTTP || cfg.Port != 4000 || cfg.LogLevel != "warn" || len(cfg.AllowedOrigins) != 1 {
		t.Fatalf("file not applied: %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	var cfg Config
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
