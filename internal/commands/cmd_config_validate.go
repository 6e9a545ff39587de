package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/config"
	"github.com/colonyops/frontdesk/internal/core/styles"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "frontdesk config validate [options]",
				Description: "Validates the configuration file, checking quiet hour times, service and hub URLs, and the file itself.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationOutput struct {
	Valid    bool                       `json:"valid"`
	Errors   []string                   `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := validationOutput{
		Valid:    true,
		Warnings: cmd.flags.Config.Warnings(),
	}
	if err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		result.Valid = false
		result.Errors = errorLines(err)
	}

	out := c.Root().Writer
	if cmd.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		writeValidationText(out, cmd.flags.ConfigPath, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func writeValidationText(out io.Writer, path string, result validationOutput) {
	for _, w := range result.Warnings {
		line := fmt.Sprintf("! %s: %s", w.Category, w.Message)
		if w.Item != "" {
			line += styles.MutedStyle.Render(" (" + w.Item + ")")
		}
		_, _ = fmt.Fprintln(out, styles.FieldErrorPath.Render(line))
	}

	for _, e := range result.Errors {
		_, _ = fmt.Fprintln(out, styles.ErrorText.Render("✗ "+e))
	}

	if len(result.Warnings)+len(result.Errors) > 0 {
		_, _ = fmt.Fprintln(out)
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, styles.OnlineStyle.Render("✓ Configuration is valid: "+path))
		return
	}
	_, _ = fmt.Fprintln(out, styles.ErrorText.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}

// errorLines renders one "field: message" line per field error.
func errorLines(err error) []string {
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		lines := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			lines = append(lines, fe.Field+": "+fe.Err.Error())
		}
		return lines
	}

	var lines []string
	for _, l := range strings.Split(err.Error(), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
