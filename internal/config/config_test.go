package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/regform/internal/errors"
	"github.com/vango-dev/regform/pkg/regform"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Form.Selector != regform.DefaultSelector {
		t.Errorf("Form.Selector = %q, want %q", cfg.Form.Selector, regform.DefaultSelector)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
	if cfg.ReadTimeout() != 60*time.Second {
		t.Errorf("ReadTimeout() = %v, want 60s", cfg.ReadTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.Is(err, "E100") {
		t.Fatalf("Load(empty dir) = %v, want E100", err)
	}

	configJSON := `{
  "server": {
    "host": "0.0.0.0",
    "port": 9090,
    "allowedOrigins": ["https://example.ru"]
  },
  "form": {
    "preset": "placeholders",
    "bindings": {"email": "input#mail"}
  },
  "log": {"level": "debug"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q, want %q", cfg.Address(), "0.0.0.0:9090")
	}
	if diff := cmp.Diff([]string{"https://example.ru"}, cfg.Server.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
	// Unset values keep their defaults.
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("WriteTimeout = %q, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want default", cfg.Log.Format)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}

	bindings, err := cfg.Form.RoleBindings()
	if err != nil {
		t.Fatalf("RoleBindings: %v", err)
	}
	if bindings[regform.Email] != "input#mail" {
		t.Errorf("email binding = %q, want override", bindings[regform.Email])
	}
	if bindings[regform.Password] != regform.PlaceholderBindings()[regform.Password] {
		t.Errorf("password binding = %q, want placeholder preset", bindings[regform.Password])
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regform.yaml")
	data := `
server:
  port: 7000
  readTimeout: 2m
form:
  selector: "#signup"
  containers: [".row"]
metrics:
  enabled: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.ReadTimeout() != 2*time.Minute {
		t.Errorf("ReadTimeout() = %v, want 2m", cfg.ReadTimeout())
	}
	if cfg.Form.Selector != "#signup" {
		t.Errorf("Form.Selector = %q", cfg.Form.Selector)
	}
	if diff := cmp.Diff([]string{".row"}, cfg.Form.Containers); diff != "" {
		t.Errorf("Containers mismatch (-want +got):\n%s", diff)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
}

func TestLoad_PrefersJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "regform.yml"), []byte("server:\n  port: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"server":{"port":2}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 2 {
		t.Errorf("Server.Port = %d, want 2 from %s", cfg.Server.Port, ConfigFileName)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E101") {
		t.Errorf("Expected E101 error, got: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, "E100") {
		t.Errorf("LoadFile(missing) = %v, want E100", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("REGFORM_SERVER_PORT", "9100")
	t.Setenv("REGFORM_SERVER_ALLOWED_ORIGINS", "https://a.ru,https://b.ru")
	t.Setenv("REGFORM_LOG_LEVEL", "warn")
	t.Setenv("REGFORM_METRICS_ENABLED", "false")
	t.Setenv("REGFORM_FORM_PRESET", PresetPlaceholders)

	cfg := New()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if diff := cmp.Diff([]string{"https://a.ru", "https://b.ru"}, cfg.Server.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be overridden to false")
	}
	if cfg.Form.Preset != PresetPlaceholders {
		t.Errorf("Form.Preset = %q", cfg.Form.Preset)
	}
	// Untouched values survive.
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("REGFORM_SERVER_PORT", "eighty")

	err := New().ApplyEnv()
	if !errors.Is(err, "E102") {
		t.Errorf("ApplyEnv = %v, want E102", err)
	}
}

func TestResolve(t *testing.T) {
	t.Run("missing file in dir uses defaults", func(t *testing.T) {
		cfg, err := Resolve("", t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Server.Port != DefaultPort {
			t.Errorf("Server.Port = %d", cfg.Server.Port)
		}
	})

	t.Run("explicit missing path fails", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "x.json"), "")
		if !errors.Is(err, "E100") {
			t.Errorf("Resolve = %v, want E100", err)
		}
	})

	t.Run("env wins over file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"server":{"port":3000}}`), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("REGFORM_SERVER_PORT", "4000")
		cfg, err := Resolve("", dir)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Server.Port != 4000 {
			t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "E103"},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, "E103"},
		{"negative timeout", func(c *Config) { c.Server.WriteTimeout = "-1s" }, "E103"},
		{"unknown preset", func(c *Config) { c.Form.Preset = "labels" }, "E103"},
		{"unknown role", func(c *Config) { c.Form.Bindings = map[string]string{"phone": "input"} }, "E103"},
		{"missing markup", func(c *Config) { c.Form.MarkupFile = "/does/not/exist.html" }, "E104"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "E103"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "E103"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "E103"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRoleBindings_ConsentAlias(t *testing.T) {
	f := FormConfig{Bindings: map[string]string{"consent": "#agree"}}
	b, err := f.RoleBindings()
	if err != nil {
		t.Fatal(err)
	}
	if b[regform.Consent] != "#agree" {
		t.Errorf("consent binding = %q, want #agree", b[regform.Consent])
	}
}

func TestMarkupPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"form":{"markupFile":"page.html"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg.MarkupPath(), filepath.Join(dir, "page.html"); got != want {
		t.Errorf("MarkupPath() = %q, want %q", got, want)
	}
}

func TestSlogLevel(t *testing.T) {
	level, err := LogConfig{Level: "debug"}.SlogLevel()
	if err != nil {
		t.Fatal(err)
	}
	if level.String() != "DEBUG" {
		t.Errorf("level = %v, want DEBUG", level)
	}
}
