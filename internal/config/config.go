package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"palette-studio/internal/colorspace"
)

// Search order when CONFIG_FILE is not set.
var defaultFiles = []string{"config.json", "config.toml"}

// Config holds all service configuration values.
type Config struct {
	Listen        string `json:"listen" toml:"listen"`
	MetricsListen string `json:"metrics_listen" toml:"metrics_listen"`
	DefaultBase   string `json:"default_base" toml:"default_base"`
	SessionTTLMin int    `json:"session_ttl_min" toml:"session_ttl_min"`
	MaxSessions   int    `json:"max_sessions" toml:"max_sessions"`
	// SessionsPerMin caps new studios per client IP; 0 disables the limit.
	SessionsPerMin int `json:"sessions_per_min" toml:"sessions_per_min"`

	// Environment configuration (loaded from env vars)
	Env *EnvConfig `json:"-" toml:"-"`

	// Source is the file the values came from, empty for defaults only.
	Source string `json:"-" toml:"-"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Listen:        ":8080",
		MetricsListen: ":9090",
		DefaultBase:   "#3b82f6",
		SessionTTLMin: 60,
		MaxSessions:   1000,

		SessionsPerMin: 30,
	}
}

// Load reads CONFIG_FILE, or the first of config.json / config.toml that
// exists, on top of the defaults, then applies the environment layer.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		for _, candidate := range defaultFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	cfg := Defaults()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(LoadEnv())
	return cfg, nil
}

// LoadFile reads one config file on top of the defaults without consulting
// the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()
	if err := cfg.decodeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), c); err != nil {
			return errors.Wrapf(err, "decode %s", path)
		}
	default:
		if err := json.Unmarshal(raw, c); err != nil {
			return errors.Wrapf(err, "decode %s", path)
		}
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv(env *EnvConfig) {
	c.Env = env
	if env.Listen != "" {
		c.Listen = env.Listen
	}
	if env.MetricsListen != "" {
		c.MetricsListen = env.MetricsListen
	}
	if env.SessionTTLMin > 0 {
		c.SessionTTLMin = env.SessionTTLMin
	}
}

// Base returns the configured starting color, falling back to the built-in
// default when the value does not parse.
func (c *Config) Base() colorspace.Color {
	base, _ := c.ResolveBase()
	return base
}

// ResolveBase is Base that also reports whether default_base was usable.
func (c *Config) ResolveBase() (colorspace.Color, bool) {
	if base, ok := colorspace.HexToHSL(c.DefaultBase); ok {
		return base, true
	}
	base, _ := colorspace.HexToHSL(Defaults().DefaultBase)
	return base, false
}

// Validate checks the configuration for errors and returns helpful messages.
func (c *Config) Validate() error {
	var errs []string

	if c.Listen == "" {
		errs = append(errs, "listen address is required")
	}
	if c.MetricsListen != "" && c.MetricsListen == c.Listen {
		errs = append(errs, fmt.Sprintf("metrics_listen must differ from listen (%s)", c.Listen))
	}
	if !colorspace.ValidHex(c.DefaultBase) {
		errs = append(errs, fmt.Sprintf("default_base must be a 6-digit hex color, got %q", c.DefaultBase))
	}
	if c.SessionTTLMin <= 0 {
		errs = append(errs, "session_ttl_min must be positive")
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, "max_sessions must be positive")
	}
	if c.SessionsPerMin < 0 {
		errs = append(errs, "sessions_per_min must not be negative")
	}
	if c.Env != nil && c.Env.IsProduction() && c.Env.SessionSecret == "" {
		errs = append(errs, "SESSION_SECRET is required in production")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}
