// Package config provides configuration loading for the cantocalc HTTP service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/cantocalc/internal/model"
)

// Config represents the service configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Calc    CalcConfig    `toml:"calc"`
	Catalog CatalogConfig `toml:"catalog"`
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	MaxSessions    int      `toml:"max_sessions"`         // 0 = unlimited
	SessionIdleMin int      `toml:"session_idle_minutes"` // 0 = never expire
}

// SessionIdle returns the idle timeout after which a session is dropped.
func (s ServerConfig) SessionIdle() time.Duration {
	return time.Duration(s.SessionIdleMin) * time.Minute
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level      string `toml:"level"`  // trace, debug, info, warn, error
	Format     string `toml:"format"` // "json" or "text"
	TimeFormat string `toml:"time_format"`
}

// CalcConfig holds the calculation defaults for new sessions.
type CalcConfig struct {
	Unit         string `toml:"unit"`          // "m" or "cm"
	RoundingStep string `toml:"rounding_step"` // "none", "0.1", "0.5", "1"
	RoundingMode string `toml:"rounding_mode"` // "nearest", "floor", "ceiling"
}

// CatalogConfig points at the product catalog loaded on startup.
type CatalogConfig struct {
	Path string `toml:"path"` // Empty = no catalog
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8430,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			MaxSessions:    10000,
			SessionIdleMin: 120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Calc: CalcConfig{
			Unit:         string(model.UnitMeters),
			RoundingStep: "none",
		},
	}
}

// DefaultConfigPath returns ~/.cantocalc/server.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cantocalc", "server.toml")
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CANTOCALC_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("CANTOCALC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CANTOCALC_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CANTOCALC_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("CANTOCALC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if strings.HasPrefix(c.Catalog.Path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			c.Catalog.Path = filepath.Join(home, c.Catalog.Path[2:])
		}
	}
	return nil
}

// Validate checks the values that cannot be defaulted silently.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("invalid max_sessions %d", c.Server.MaxSessions)
	}
	if c.Server.SessionIdleMin < 0 {
		return fmt.Errorf("invalid session_idle_minutes %d", c.Server.SessionIdleMin)
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	return nil
}

// Options converts the calc section into calculation options.
func (c *Config) Options() (model.Options, error) {
	unit, err := model.ParseUnit(c.Calc.Unit)
	if err != nil {
		return model.Options{}, fmt.Errorf("calc.unit: %w", err)
	}
	step, err := model.ParseRoundingStep(c.Calc.RoundingStep)
	if err != nil {
		return model.Options{}, fmt.Errorf("calc.rounding_step: %w", err)
	}
	mode, err := model.ParseRoundingMode(c.Calc.RoundingMode)
	if err != nil {
		return model.Options{}, fmt.Errorf("calc.rounding_mode: %w", err)
	}
	return model.Options{Unit: unit, Rounding: model.RoundingPolicy{Step: step, Mode: mode}}, nil
}

// Addr returns host:port for the listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
