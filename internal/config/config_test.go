package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Preview.Style != DefaultStyle {
		t.Errorf("Preview.Style = %q, want %q", cfg.Preview.Style, DefaultStyle)
	}
	if !cfg.Preview.CodeHighlighting {
		t.Error("Preview.CodeHighlighting = false, want true")
	}
	if cfg.Preview.MathSupport {
		t.Error("Preview.MathSupport = true, want false")
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Watch.Debounce != DefaultDebounce {
		t.Errorf("Watch.Debounce = %v, want %v", cfg.Watch.Debounce, DefaultDebounce)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "style too long",
			mutate:  func(c *Config) { c.Preview.Style = strings.Repeat("s", MaxStyleNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "code style too long",
			mutate:  func(c *Config) { c.Preview.CodeStyle = strings.Repeat("s", MaxStyleNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "addr too long",
			mutate:  func(c *Config) { c.Server.Addr = strings.Repeat("a", MaxAddrLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = -time.Millisecond },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "debounce above max",
			mutate:  func(c *Config) { c.Watch.Debounce = MaxDebounce + time.Millisecond },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "zero debounce",
			mutate: func(c *Config) { c.Watch.Debounce = 0 },
		},
		{
			name:    "timeout above max",
			mutate:  func(c *Config) { c.Export.Timeout = MaxExportTimeout + time.Second },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "pdf format upper case",
			mutate: func(c *Config) { c.Export.Format = "PDF" },
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Export.Format = "docx" },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file keeps unset defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "preview.yaml", `preview:
  style: github
  mathSupport: true
watch:
  debounce: 250ms
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Preview.Style != "github" {
			t.Errorf("Preview.Style = %q, want github", cfg.Preview.Style)
		}
		if !cfg.Preview.MathSupport {
			t.Error("Preview.MathSupport = false, want true")
		}
		if !cfg.Preview.CodeHighlighting {
			t.Error("Preview.CodeHighlighting lost its default")
		}
		if cfg.Watch.Debounce != 250*time.Millisecond {
			t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
		}
		if cfg.Server.Addr != DefaultAddr {
			t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "preview:\n  stlye: github\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "export:\n  format: docx\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "work.yml", "server:\n  addr: 127.0.0.1:9000\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig(work) error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q, want 127.0.0.1:9000", cfg.Server.Addr)
	}

	_, err = LoadConfig("absent")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(absent) error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "absent.yaml") {
		t.Errorf("error %q does not list tried paths", err)
	}
}
