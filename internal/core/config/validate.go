package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/alertle/internal/core/styles"
)

const minToastWidth = 20

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if ms := c.Alerts.DefaultExpiresInMs; ms != nil && *ms < 0 {
		errs = errs.Append("alerts.default_expires_in_ms", fmt.Errorf("must not be negative, got %d", *ms))
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q (available: %s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	if c.TUI.MaxVisible < 1 {
		errs = errs.Append("tui.max_visible", fmt.Errorf("must be at least 1, got %d", c.TUI.MaxVisible))
	}

	if c.TUI.Width < minToastWidth {
		errs = errs.Append("tui.width", fmt.Errorf("must be at least %d", minToastWidth))
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and also checks the config file itself.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.Validate(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}
