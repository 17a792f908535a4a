package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPort is the HTTP listen port used when none is configured.
const DefaultPort = 3001

// Config holds configuration for the MCP server binary.
// Values are resolved with precedence: defaults < file < env < flags.
type Config struct {
	// HTTP selects the Streamable HTTP binding; default is stdio.
	HTTP bool `yaml:"http"`
	// Port is the HTTP listen port for the /mcp endpoint.
	Port int `yaml:"port"`
	// MetricsAddr is the Prometheus listen address. Empty until Finalize,
	// which falls back to the main port; when it matches the main port,
	// /metrics is served on the main router instead.
	MetricsAddr    string   `yaml:"metrics_addr"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ConfigFile     string   `yaml:"-"`
}

// SetDefaults initializes c with built-in defaults.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}

// Finalize fills values that depend on other settings. Call it after all
// sources have been applied.
func (c *Config) Finalize() {
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":" + strconv.Itoa(c.Port)
	}
}

// ApplyEnv overlays environment variables onto the current config values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CONFIG_FILE"); v != "" {
		c.ConfigFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MCP_HTTP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.HTTP = b
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := os.Getenv("METRICS_PORT"); v != "" {
		if strings.Contains(v, ":") {
			c.MetricsAddr = v
		} else {
			c.MetricsAddr = ":" + v
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitComma(v)
	}
}

// BindFlags binds command line flags using the current config values as
// defaults. Call flag.Parse afterwards.
func (c *Config) BindFlags() {
	flag.StringVar(&c.ConfigFile, "config", c.ConfigFile, "server config file path")
	flag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log verbosity (all, debug, info, warn, error, fatal, none)")
	flag.BoolVar(&c.HTTP, "http", c.HTTP, "serve the Streamable HTTP binding instead of stdio")
	flag.Func("port", "HTTP listen port for the /mcp endpoint", func(v string) error {
		// An unparsable port keeps the current value rather than aborting.
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Port = n
		}
		return nil
	})
	flag.Func("metrics-port", "Prometheus metrics listen address or port; defaults to the value of --port", func(v string) error {
		if strings.Contains(v, ":") {
			c.MetricsAddr = v
		} else {
			c.MetricsAddr = ":" + v
		}
		return nil
	})
	flag.Func("allowed-origins", "comma separated list of allowed CORS origins", func(v string) error {
		c.AllowedOrigins = splitComma(v)
		return nil
	})
}

// LoadFile populates the config from a YAML file.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

func splitComma(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
