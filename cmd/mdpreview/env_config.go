package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string        // MDPREVIEW_CONFIG: config file name or path
	Style      string        // MDPREVIEW_STYLE: preview style name
	Addr       string        // MDPREVIEW_ADDR: preview server address
	Timeout    time.Duration // MDPREVIEW_TIMEOUT: export timeout
}

// knownEnvVars lists valid MDPREVIEW_* environment variables.
var knownEnvVars = map[string]bool{
	"MDPREVIEW_CONFIG":  true,
	"MDPREVIEW_STYLE":   true,
	"MDPREVIEW_ADDR":    true,
	"MDPREVIEW_TIMEOUT": true,
}

// loadEnvConfig reads the recognized MDPREVIEW_* variables.
// Invalid or non-positive durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPREVIEW_CONFIG"),
		Style:      os.Getenv("MDPREVIEW_STYLE"),
		Addr:       os.Getenv("MDPREVIEW_ADDR"),
	}

	if timeout := os.Getenv("MDPREVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized MDPREVIEW_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPREVIEW_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on cfg.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Preview.Style = env.Style
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Timeout > 0 {
		cfg.Export.Timeout = env.Timeout
	}
}
