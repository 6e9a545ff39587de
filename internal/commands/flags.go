package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/frontdesk/internal/core/config"
	"github.com/colonyops/frontdesk/internal/core/realtime"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// User returns the desk operator the realtime hubs are told about.
func (f *Flags) User() realtime.User {
	if f.Config == nil {
		return realtime.User{}
	}
	return realtime.User{
		ID:    f.Config.User.ID,
		Name:  f.Config.User.Name,
		Token: f.Config.Realtime.Token,
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "frontdesk", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/frontdesk/frontdesk.log
// On Linux: $XDG_STATE_HOME/frontdesk/frontdesk.log (defaults to ~/.local/state/frontdesk/frontdesk.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "frontdesk", "frontdesk.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "frontdesk", "frontdesk.log")
	}

	return filepath.Join(home, ".local", "state", "frontdesk", "frontdesk.log")
}
