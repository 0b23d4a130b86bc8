// Package config handles configuration loading and validation for alertle.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/styles"
)

const (
	defaultExpiresInMs = 5000
	defaultMaxVisible  = 5
	defaultWidth       = 50
)

// Config holds the application configuration.
type Config struct {
	Alerts AlertsConfig `yaml:"alerts"`
	TUI    TUIConfig    `yaml:"tui"`
}

// AlertsConfig configures the alert registry.
type AlertsConfig struct {
	// DefaultExpiresInMs applies to alerts raised without an expiry.
	// null means such alerts never expire.
	DefaultExpiresInMs *int64 `yaml:"default_expires_in_ms"`
}

// DefaultExpiry converts the configured default into an alert.Expiry.
func (a AlertsConfig) DefaultExpiry() alert.Expiry {
	return alert.ExpiryFromMillis(a.DefaultExpiresInMs)
}

// RegistryConfig returns the registry settings derived from the config.
func (c *Config) RegistryConfig() alert.Config {
	return alert.Config{DefaultExpiresIn: c.Alerts.DefaultExpiry()}
}

// TUIConfig configures the toast container.
type TUIConfig struct {
	Theme      string `yaml:"theme"`
	MaxVisible int    `yaml:"max_visible"` // render cap only, the registry is unbounded
	Width      int    `yaml:"width"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	ms := int64(defaultExpiresInMs)
	return Config{
		Alerts: AlertsConfig{
			DefaultExpiresInMs: &ms,
		},
		TUI: TUIConfig{
			Theme:      styles.DefaultTheme,
			MaxVisible: defaultMaxVisible,
			Width:      defaultWidth,
		},
	}
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg, err := Parse(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse reads configuration from the given path and fills in defaults
// without validating.
func Parse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.MaxVisible == 0 {
		c.TUI.MaxVisible = defaults.TUI.MaxVisible
	}
	if c.TUI.Width == 0 {
		c.TUI.Width = defaults.TUI.Width
	}
}
