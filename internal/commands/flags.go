package commands

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/alertle/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook. It is nil when loading failed;
	// ConfigErr then holds the reason.
	Config    *config.Config
	ConfigErr error
}

// RequireConfig returns the loaded config or the error that prevented
// loading it.
func (f *Flags) RequireConfig() (*config.Config, error) {
	if f.ConfigErr != nil {
		return nil, f.ConfigErr
	}
	if f.Config == nil {
		return nil, errors.New("config not loaded")
	}
	return f.Config, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "alertle", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/alertle/alertle.log
// On Linux: $XDG_STATE_HOME/alertle/alertle.log (defaults to ~/.local/state/alertle/alertle.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "alertle", "alertle.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "alertle", "alertle.log")
	}

	return filepath.Join(home, ".local", "state", "alertle", "alertle.log")
}
