package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/regform/internal/errors"
	"github.com/vango-dev/regform/pkg/regform"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "regform.json"

// ConfigFileNames are tried in order by Load.
var ConfigFileNames = []string{ConfigFileName, "regform.yaml", "regform.yml"}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REGFORM_"

// Default configuration values.
const (
	DefaultHost         = "localhost"
	DefaultPort         = 8080
	DefaultReadTimeout  = "60s"
	DefaultWriteTimeout = "10s"
	DefaultMetricsPath  = "/metrics"
	DefaultNamespace    = "regform"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultTracerName   = "github.com/vango-dev/regform"
)

// Binding presets accepted by FormConfig.Preset.
const (
	PresetNames        = "names"
	PresetPlaceholders = "placeholders"
)

// Config represents the regform configuration.
type Config struct {
	// Server configures the HTTP and WebSocket listener.
	Server ServerConfig `json:"server" yaml:"server" envPrefix:"SERVER_"`

	// Form configures which form is bound and how.
	Form FormConfig `json:"form" yaml:"form" envPrefix:"FORM_"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" envPrefix:"METRICS_"`

	// Log configures the slog handler.
	Log LogConfig `json:"log" yaml:"log" envPrefix:"LOG_"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing" yaml:"tracing" envPrefix:"TRACING_"`

	configPath string
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	// Host is the interface to bind. Default: "localhost".
	Host string `json:"host,omitempty" yaml:"host,omitempty" env:"HOST"`

	// Port is the port to listen on. Default: 8080.
	Port int `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`

	// ReadTimeout bounds the wait for a client frame, as a duration string.
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty" env:"READ_TIMEOUT"`

	// WriteTimeout bounds a frame write, as a duration string.
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty" env:"WRITE_TIMEOUT"`

	// AllowedOrigins lists origins accepted for WebSocket upgrades.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty" env:"ALLOWED_ORIGINS"`
}

// FormConfig describes the bound form.
type FormConfig struct {
	// Selector locates the form. Default: regform.DefaultSelector.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty" env:"SELECTOR"`

	// MarkupFile replaces the built-in markup with an HTML file.
	MarkupFile string `json:"markupFile,omitempty" yaml:"markupFile,omitempty" env:"MARKUP_FILE"`

	// Sanitize passes MarkupFile through the HTML sanitizer.
	Sanitize bool `json:"sanitize,omitempty" yaml:"sanitize,omitempty" env:"SANITIZE"`

	// Preset selects the base bindings: "names" or "placeholders".
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty" env:"PRESET"`

	// Bindings overrides individual role selectors.
	Bindings map[string]string `json:"bindings,omitempty" yaml:"bindings,omitempty"`

	// Containers are the annotation container selectors, nearest match first.
	Containers []string `json:"containers,omitempty" yaml:"containers,omitempty" env:"CONTAINERS"`

	// StyleSheets are linked from the page head.
	StyleSheets []string `json:"styleSheets,omitempty" yaml:"styleSheets,omitempty" env:"STYLESHEETS"`
}

// MetricsConfig configures Prometheus exposition.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" env:"ENABLED"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty" env:"PATH"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty" env:"NAMESPACE"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty" env:"LEVEL"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty" env:"FORMAT"`
}

// TracingConfig configures OpenTelemetry.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" env:"ENABLED"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty" env:"TRACER_NAME"`

	// Endpoint is an OTLP/HTTP collector address such as "localhost:4318".
	// Empty keeps spans in the process.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" env:"ENDPOINT"`

	// IncludeEmail records the submitted email on submit spans.
	IncludeEmail bool `json:"includeEmail,omitempty" yaml:"includeEmail,omitempty" env:"INCLUDE_EMAIL"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Form: FormConfig{
			Selector:   regform.DefaultSelector,
			Preset:     PresetNames,
			Containers: append([]string(nil), regform.DefaultContainers...),
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      DefaultMetricsPath,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for regform.json, regform.yaml and regform.yml in that order.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E100").
		WithDetail("No " + ConfigFileName + " found in " + dir).
		WithSuggestion("Create " + ConfigFileName + " or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail(path).
				WithSuggestion("Check the --config path")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E101").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E101").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Resolve loads the file at path, or the configuration found in dir when
// path is empty. A missing file in dir is not an error: defaults are used.
// Environment overrides are applied last.
func Resolve(path, dir string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case path != "":
		cfg, err = LoadFile(path)
	default:
		cfg, err = Load(dir)
		if errors.Is(err, "E100") {
			cfg, err = New(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from REGFORM_* environment variables, for
// example REGFORM_SERVER_PORT or REGFORM_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E102").Wrap(err)
	}
	c.applyDefaults()
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Form.Selector == "" {
		c.Form.Selector = d.Form.Selector
	}
	if c.Form.Preset == "" {
		c.Form.Preset = d.Form.Preset
	}
	if len(c.Form.Containers) == 0 {
		c.Form.Containers = d.Form.Containers
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetail("server.port must be between 0 and 65535")
	}
	for name, v := range map[string]string{
		"server.readTimeout":  c.Server.ReadTimeout,
		"server.writeTimeout": c.Server.WriteTimeout,
	} {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return errors.New("E103").
				WithDetail(name + " must be a positive duration, got " + strconv.Quote(v)).
				WithSuggestion(`Use values such as "30s" or "1m"`)
		}
	}
	if _, err := c.Form.RoleBindings(); err != nil {
		return err
	}
	if c.Form.MarkupFile != "" {
		if _, err := os.Stat(c.MarkupPath()); err != nil {
			return errors.New("E104").Wrap(err)
		}
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E103").
			WithDetail("metrics.path must start with /")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E103").
			WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	return nil
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ReadTimeout returns the parsed session read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns the parsed session write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// MarkupPath resolves Form.MarkupFile against the config file directory.
func (c *Config) MarkupPath() string {
	if c.Form.MarkupFile == "" || filepath.IsAbs(c.Form.MarkupFile) {
		return c.Form.MarkupFile
	}
	return filepath.Join(c.Dir(), c.Form.MarkupFile)
}

// RoleBindings returns the preset bindings with the configured overrides
// applied. Override keys are role names; "consent" is accepted for the
// checkbox.
func (f FormConfig) RoleBindings() (regform.Bindings, error) {
	var base regform.Bindings
	switch f.Preset {
	case "", PresetNames:
		base = regform.DefaultBindings()
	case PresetPlaceholders:
		base = regform.PlaceholderBindings()
	default:
		return nil, errors.New("E103").
			WithDetail("form.preset must be names or placeholders, got " + strconv.Quote(f.Preset))
	}

	overrides := make(regform.Bindings, len(f.Bindings))
	for key, sel := range f.Bindings {
		role, ok := regform.ParseRole(key)
		if !ok {
			return nil, errors.New("E103").
				WithDetail("unknown role " + strconv.Quote(key) + " in form.bindings").
				WithSuggestion("Use one of email, organization, fullName, password, confirmPassword, checkbox")
		}
		overrides[role] = sel
	}
	return base.Merge(overrides), nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, errors.New("E103").
			WithDetail("log.level must be debug, info, warn or error, got " + strconv.Quote(l.Level))
	}
	return level, nil
}
