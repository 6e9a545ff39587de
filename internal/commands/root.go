package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/frontdesk"
)

// NewRoot builds the frontdesk command tree. Global flags write into flags,
// and every subcommand shares app, which the caller populates before the
// action runs. The center is the default action.
func NewRoot(flags *Flags, app *frontdesk.App) *cli.Command {
	root := &cli.Command{
		Name:      AppName,
		Usage:     "Front desk notification center",
		UsageText: "frontdesk [global options] command [command options]",
		Description: `frontdesk shows the notifications of a visitor-management front desk:
visitor arrivals and departures, overdue visits, security alerts, invitations
and failed uploads.

Notifications are loaded from the notification service and pushed in realtime
over websocket hubs. Elevated ones raise toasts and native desktop
notifications, subject to quiet hours.

Run 'frontdesk' with no arguments to open the interactive notification center.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FRONTDESK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs go to stderr when empty, e.g. " + DefaultLogFile() + ")",
				Sources:     cli.EnvVars("FRONTDESK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FRONTDESK_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
	}

	centerCmd := NewCenterCmd(flags, app)

	root = centerCmd.Register(root)
	root = NewLsCmd(flags, app).Register(root)
	root = NewAckCmd(flags, app).Register(root)
	root = NewWatchCmd(flags, app).Register(root)
	root = NewDesktopCmd(flags, app).Register(root)
	root = NewEmitCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	// Center flags also live on the root so `frontdesk --profiler-port` works
	root.Flags = append(root.Flags, centerCmd.Flags()...)

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'frontdesk --help' for usage", c.Args().First())
		}
		return centerCmd.Run(ctx, c)
	}

	return root
}
