// Package config loads the front desk configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/core/styles"
)

// Config is the full configuration file.
type Config struct {
	Notifications NotificationsConfig `yaml:"notifications"`
	Service       ServiceConfig       `yaml:"service"`
	Realtime      RealtimeConfig      `yaml:"realtime"`
	User          UserConfig          `yaml:"user"`
	TUI           TUIConfig           `yaml:"tui"`
}

// NotificationsConfig holds the initial notification settings.
type NotificationsConfig struct {
	Position        notify.Position   `yaml:"position"`
	MaxToasts       int               `yaml:"max_toasts"`
	DefaultDuration time.Duration     `yaml:"default_duration"`
	EnableDesktop   *bool             `yaml:"enable_desktop"`
	EnableSound     *bool             `yaml:"enable_sound"`
	EnableEmail     bool              `yaml:"enable_email"`
	QuietHours      notify.QuietHours `yaml:"quiet_hours"`
}

// ServiceConfig points at the notification service. An empty BaseURL runs
// the center offline: nothing is fetched or acknowledged remotely.
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`   // expanded from the environment
	Timeout time.Duration `yaml:"timeout"` // per request
}

// RealtimeConfig lists the websocket hubs that push notifications.
type RealtimeConfig struct {
	Enabled bool     `yaml:"enabled"`
	URLs    []string `yaml:"urls"`
	Token   string   `yaml:"token"` // expanded from the environment
}

// UserConfig identifies the desk operator to the realtime hubs.
type UserConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// TUIConfig holds notification center display options.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	defaults := notify.DefaultSettings()
	desktop, sound := defaults.Desktop, defaults.Sound

	return Config{
		Notifications: NotificationsConfig{
			Position:        defaults.Position,
			MaxToasts:       defaults.MaxToasts,
			DefaultDuration: defaults.DefaultDuration,
			EnableDesktop:   &desktop,
			EnableSound:     &sound,
			EnableEmail:     defaults.Email,
			QuietHours:      defaults.QuietHours,
		},
		Service: ServiceConfig{
			Timeout: 10 * time.Second,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configPath over the defaults. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	n := &c.Notifications
	if n.Position == "" {
		n.Position = defaults.Notifications.Position
	}
	if n.MaxToasts == 0 {
		n.MaxToasts = defaults.Notifications.MaxToasts
	}
	if n.DefaultDuration == 0 {
		n.DefaultDuration = defaults.Notifications.DefaultDuration
	}
	if n.EnableDesktop == nil {
		n.EnableDesktop = defaults.Notifications.EnableDesktop
	}
	if n.EnableSound == nil {
		n.EnableSound = defaults.Notifications.EnableSound
	}
	if n.QuietHours.Start == "" {
		n.QuietHours.Start = defaults.Notifications.QuietHours.Start
	}
	if n.QuietHours.End == "" {
		n.QuietHours.End = defaults.Notifications.QuietHours.End
	}

	if c.Service.Timeout == 0 {
		c.Service.Timeout = defaults.Service.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}

	c.Service.Token = os.ExpandEnv(c.Service.Token)
	c.Realtime.Token = os.ExpandEnv(c.Realtime.Token)
}

// Validate performs structural checks that need no I/O.
func (c *Config) Validate() error {
	n := c.Notifications

	if !n.Position.Valid() {
		return fmt.Errorf("notifications.position %q is not one of %v", n.Position, notify.AllPositions)
	}

	if n.MaxToasts < 1 {
		return fmt.Errorf("notifications.max_toasts must be at least 1")
	}

	if n.DefaultDuration < 0 {
		return fmt.Errorf("notifications.default_duration cannot be negative")
	}

	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout cannot be negative")
	}

	if c.Realtime.Enabled && len(c.Realtime.URLs) == 0 {
		return fmt.Errorf("realtime.urls must not be empty when realtime is enabled")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not one of %v", c.TUI.Theme, styles.ThemeNames())
	}

	return nil
}

// Settings maps the notifications section onto store settings.
func (c *Config) Settings() notify.Settings {
	n := c.Notifications
	s := notify.Settings{
		Email:           n.EnableEmail,
		Position:        n.Position,
		MaxToasts:       n.MaxToasts,
		DefaultDuration: n.DefaultDuration,
		QuietHours:      n.QuietHours,
	}
	if n.EnableDesktop != nil {
		s.Desktop = *n.EnableDesktop
	}
	if n.EnableSound != nil {
		s.Sound = *n.EnableSound
	}
	return s
}
