package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/sticky/internal/errors"
	"github.com/vango-dev/sticky/pkg/sticky"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "sticky.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// configFileNames are tried in order by Load.
var configFileNames = []string{ConfigFileName, "sticky.yaml", "sticky.yml"}

// Config represents the complete sticky configuration file.
type Config struct {
	// Sticky holds the default element configuration for new sessions.
	Sticky StickyConfig `json:"sticky" yaml:"sticky"`

	// Server contains HTTP and WebSocket settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StickyConfig is the element configuration.
type StickyConfig struct {
	// Top is the offset from the viewport top in pixels.
	Top float64 `json:"top" yaml:"top"`

	// Bottom is the offset from the container bottom. Omit to disable
	// bottom sticking.
	Bottom *float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`

	// Enabled defaults to true when omitted.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// ServerConfig contains server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// ReadTimeout bounds the wait for the next client frame (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout bounds a single frame write (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// PingInterval is how often idle connections are pinged (e.g., "25s").
	PingInterval string `json:"pingInterval,omitempty" yaml:"pingInterval,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the metrics URL path.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the first config file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E100").
		WithDetail("No sticky.json, sticky.yaml or sticky.yml found in " + dir).
		WithSuggestion("Create sticky.json or pass --config")
}

// LoadFromWorkingDir loads the config from the current directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Load(wd)
}

// LoadFile reads and validates the config file at path. The format is
// chosen by extension; anything other than .yaml/.yml is parsed as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("E104").Wrap(err)
	}

	cfg, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Format is a config file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes, defaults and validates config data.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E104").
			WithDetailf("Failed to parse %s config: %v", format, err).
			WithSuggestion("Check the file syntax")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Sticky.Enabled == nil {
		enabled := true
		c.Sticky.Enabled = &enabled
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "60s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
	if c.Server.PingInterval == "" {
		c.Server.PingInterval = "25s"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !finite(c.Sticky.Top) {
		return errors.New("E101").WithDetailf("top offset %v is not a finite number", c.Sticky.Top)
	}
	if c.Sticky.Bottom != nil && !finite(*c.Sticky.Bottom) {
		return errors.New("E101").WithDetailf("bottom offset %v is not a finite number", *c.Sticky.Bottom)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E102").WithDetailf("port %d is out of range", c.Server.Port)
	}
	for name, value := range map[string]string{
		"readTimeout":  c.Server.ReadTimeout,
		"writeTimeout": c.Server.WriteTimeout,
		"pingInterval": c.Server.PingInterval,
	} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.New("E103").WithDetailf("server.%s: %v", name, err)
		}
		if d <= 0 {
			return errors.New("E103").WithDetailf("server.%s must be positive", name)
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E105").WithDetailf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Element returns the element configuration for new sessions.
func (c *Config) Element() sticky.Config {
	cfg := sticky.Config{
		Top:     c.Sticky.Top,
		Enabled: c.Sticky.Enabled == nil || *c.Sticky.Enabled,
	}
	if c.Sticky.Bottom != nil {
		cfg.Bottom = sticky.Offset(*c.Sticky.Bottom)
	}
	return cfg
}

// Address returns host:port for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Timeouts returns the parsed read timeout, write timeout and ping interval.
// They were checked by Validate.
func (c *Config) Timeouts() (read, write, ping time.Duration) {
	read, _ = time.ParseDuration(c.Server.ReadTimeout)
	write, _ = time.ParseDuration(c.Server.WriteTimeout)
	ping, _ = time.ParseDuration(c.Server.PingInterval)
	return read, write, ping
}

// Logger builds a slog.Logger writing to w per the log settings.
func (c *Config) Logger(w *os.File) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.New("E105").WithDetail(fmt.Sprintf("unknown log level %q", s))
	}
	return level, nil
}
