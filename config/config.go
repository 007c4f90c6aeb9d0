// Package config loads nwgraph settings from an optional YAML file and
// NWGRAPH_* environment variables.
//
// Precedence, lowest to highest: defaults, file, environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvBackendURL     = "NWGRAPH_BACKEND_URL"
	EnvListenAddr     = "NWGRAPH_LISTEN_ADDR"
	EnvLogLevel       = "NWGRAPH_LOG_LEVEL"
	EnvLogFormat      = "NWGRAPH_LOG_FORMAT"
	EnvRequestTimeout = "NWGRAPH_REQUEST_TIMEOUT"
	EnvSessionIdle    = "NWGRAPH_SESSION_IDLE_TIMEOUT"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full nwgraph configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BackendConfig points at the leaderboard backend.
type BackendConfig struct {
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	ServiceName string `yaml:"service_name"`
	// SessionIdleTimeout discards sessions untouched for this long; 0 keeps them.
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is json or text.
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			Timeout:   15 * time.Second,
			UserAgent: "nwgraph",
		},
		Server: ServerConfig{
			ListenAddr:         ":8080",
			ServiceName:        "nwgraph",
			SessionIdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds a Config from defaults, the file at path (skipped when path is
// empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackendURL); ok {
		cfg.Backend.URL = v
	}
	if v, ok := lookup(EnvListenAddr); ok {
		cfg.Server.ListenAddr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, EnvRequestTimeout, err)
		}
		cfg.Backend.Timeout = d
	}
	if v, ok := lookup(EnvSessionIdle); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, EnvSessionIdle, err)
		}
		cfg.Server.SessionIdleTimeout = d
	}

	return nil
}

// Validate checks that the configuration can start a server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Backend.URL) == "" {
		return fmt.Errorf("%w: backend.url is required (or set %s)", ErrInvalid, EnvBackendURL)
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: backend.url %q must be an absolute URL", ErrInvalid, c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalid)
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("%w: server.listen_addr is required", ErrInvalid)
	}
	if c.Server.SessionIdleTimeout < 0 {
		return fmt.Errorf("%w: server.session_idle_timeout cannot be negative", ErrInvalid)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format %q must be json or text", ErrInvalid, c.Log.Format)
	}

	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q: %w", ErrInvalid, l.Level, err)
	}

	return lvl, nil
}
