package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

// ValidationWarning is a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep runs Validate and then the checks that parse values or touch
// the filesystem. configPath may be empty to skip the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateQuietHours(),
		criterio.Run("service.base_url", c.Service.BaseURL, httpURL),
		c.validateRealtimeURLs(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Service.BaseURL == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Service",
			Item:     "base_url",
			Message:  "no notification service configured; notifications will not be fetched or acknowledged",
		})
	}

	if c.Realtime.Enabled && c.User.ID == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Realtime",
			Item:     "user.id",
			Message:  "realtime is enabled without a user id; hubs may reject the connection",
		})
	}

	q := c.Notifications.QuietHours
	if q.Enabled && q.Start == q.End {
		warnings = append(warnings, ValidationWarning{
			Category: "Notifications",
			Item:     "quiet_hours",
			Message:  "start equals end; desktop notifications are suppressed all day",
		})
	}

	return warnings
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

func (c *Config) validateQuietHours() error {
	q := c.Notifications.QuietHours

	var errs criterio.FieldErrorsBuilder
	if _, err := notify.ParseClock(q.Start); err != nil {
		errs = errs.Append("notifications.quiet_hours.start", err)
	}
	if _, err := notify.ParseClock(q.End); err != nil {
		errs = errs.Append("notifications.quiet_hours.end", err)
	}
	return errs.ToError()
}

func (c *Config) validateRealtimeURLs() error {
	var errs criterio.FieldErrorsBuilder
	for i, raw := range c.Realtime.URLs {
		if err := wsURL(raw); err != nil {
			errs = errs.Append(fmt.Sprintf("realtime.urls[%d]", i), err)
		}
	}
	return errs.ToError()
}

// httpURL accepts an empty value or an absolute http(s) URL.
func httpURL(raw string) error {
	if raw == "" {
		return nil
	}
	return checkURL(raw, "http", "https")
}

func wsURL(raw string) error {
	return checkURL(raw, "ws", "wss")
}

func checkURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("url %q must use one of %v", raw, schemes)
}
