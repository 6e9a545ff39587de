package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/core/styles"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/internal/tui"
	"github.com/colonyops/frontdesk/pkg/profiler"
)

// logoutTimeout bounds the realtime close handshake on exit.
const logoutTimeout = 5 * time.Second

type CenterCmd struct {
	flags *Flags
	app   *frontdesk.App

	profilerPort int
}

// NewCenterCmd creates the interactive notification center command.
func NewCenterCmd(flags *Flags, app *frontdesk.App) *CenterCmd {
	return &CenterCmd{flags: flags, app: app}
}

// Flags returns the center flags for registration on the root command.
func (cmd *CenterCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("FRONTDESK_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the center command to the application.
func (cmd *CenterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "center",
		Usage:     "Open the interactive notification center",
		UsageText: "frontdesk center",
		Description: `Loads the notification list, connects to the realtime hubs when enabled,
and shows toasts and notifications as they arrive.

This is the default command when frontdesk runs without arguments.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the center. Exported for use as default command.
func (cmd *CenterCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *CenterCmd) run(ctx context.Context, _ *cli.Command) error {
	if palette, ok := styles.GetPalette(cmd.flags.Config.TUI.Theme); ok {
		styles.SetTheme(palette)
	}

	if cmd.profilerPort > 0 {
		prof := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmd.app.Start(runCtx)

	err := tui.Run(runCtx, cmd.app, cmd.flags.User())

	logoutCtx, cancelLogout := context.WithTimeout(context.Background(), logoutTimeout)
	defer cancelLogout()
	cmd.app.Logout(logoutCtx)

	if err != nil {
		return fmt.Errorf("notification center: %w", err)
	}
	return nil
}
