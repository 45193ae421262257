package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxStyleNameLength = 64   // preview or chroma style name
	MaxAddrLength      = 253  // host:port
	MaxPathLength      = 4096 // PATH_MAX on Linux
)

// Bounds for duration settings.
const (
	MaxDebounce      = 5 * time.Second
	MaxExportTimeout = 10 * time.Minute
)

// Defaults.
const (
	DefaultStyle         = "default"
	DefaultCodeStyle     = "friendly"
	DefaultAddr          = "127.0.0.1:8080"
	DefaultDebounce      = 100 * time.Millisecond
	DefaultExportTimeout = 30 * time.Second
	DefaultExportFormat  = "html"
)

// configDirName is the directory under os.UserConfigDir searched for named configs.
const configDirName = "go-mdpreview"

// Config holds all configuration for the preview engine and the CLI.
type Config struct {
	Preview PreviewConfig `yaml:"preview"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
	Export  ExportConfig  `yaml:"export"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// PreviewConfig defines rendering options applied to the worker.
type PreviewConfig struct {
	Style            string `yaml:"style"`            // preview style name from the catalog
	MathSupport      bool   `yaml:"mathSupport"`      // emit the MathJax script
	CodeHighlighting bool   `yaml:"codeHighlighting"` // chroma highlighting for fenced code
	CodeStyle        string `yaml:"codeStyle"`        // overrides the style's chroma style
	RawHTML          bool   `yaml:"rawHTML"`          // pass raw HTML through, sanitized
}

// ServerConfig defines the live preview server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// WatchConfig defines the file watcher.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// ExportConfig defines one-shot export options.
type ExportConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Format  string        `yaml:"format"` // "html" or "pdf"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Preview: PreviewConfig{
			Style:            DefaultStyle,
			MathSupport:      false,
			CodeHighlighting: true,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		Watch:  WatchConfig{Debounce: DefaultDebounce},
		Export: ExportConfig{Timeout: DefaultExportTimeout, Format: DefaultExportFormat},
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("preview.style", c.Preview.Style, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("preview.codeStyle", c.Preview.CodeStyle, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Watch.Debounce < 0 || c.Watch.Debounce > MaxDebounce {
		return fmt.Errorf("%w: watch.debounce must be between 0 and %s, got %s", ErrInvalidValue, MaxDebounce, c.Watch.Debounce)
	}
	if c.Export.Timeout < 0 || c.Export.Timeout > MaxExportTimeout {
		return fmt.Errorf("%w: export.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxExportTimeout, c.Export.Timeout)
	}
	if c.Export.Format != "" {
		switch strings.ToLower(c.Export.Format) {
		case "html", "pdf":
		default:
			return fmt.Errorf("%w: export.format %q (must be html or pdf)", ErrInvalidValue, c.Export.Format)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdpreview/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
