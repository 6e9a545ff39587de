package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/config"
	"github.com/colonyops/frontdesk/internal/core/eventbus"
	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/iojson"
)

type WatchCmd struct {
	flags *Flags
	app   *frontdesk.App

	noConfigWatch bool
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags, app *frontdesk.App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Receive realtime notifications without the interactive center",
		UsageText: "frontdesk watch [--no-config-watch]",
		Description: `Connects to the configured realtime hubs and prints every notification as a
JSON line, starting with the current list. Pushed notifications are also
offered to the desktop notification bridge.

Edits to the config file are applied to the notification settings while
running unless --no-config-watch is set. Stops on SIGINT/SIGTERM.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "no-config-watch",
				Usage:       "do not reload notification settings when the config file changes",
				Destination: &cmd.noConfigWatch,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	if !cmd.flags.Config.Realtime.Enabled {
		return errors.New("realtime is not enabled; set realtime.enabled and realtime.urls in the config file")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	cmd.app.Start(runCtx)

	if !cmd.noConfigWatch {
		w, err := config.Watch(runCtx, cmd.flags.ConfigPath, func(cfg *config.Config) {
			cmd.app.Bus.PublishConfigReloaded(eventbus.ConfigReloadedPayload{Settings: cfg.Settings()})
		})
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer func() { _ = w.Close() }()
	}

	printer := newNotificationPrinter(c.Root().Writer)
	unsubscribe := cmd.app.Store.Subscribe(printer.print)
	defer unsubscribe()

	user := cmd.flags.User()
	cmd.app.Login(runCtx, user)
	if !cmd.app.Store.State().RealtimeConnected {
		return errors.New("could not connect to any realtime hub; see the log for details")
	}

	log.Info().Str("user_id", user.ID).Int("hubs", len(cmd.flags.Config.Realtime.URLs)).Msg("watching for notifications")

	<-runCtx.Done()

	logoutCtx, cancelLogout := context.WithTimeout(context.Background(), logoutTimeout)
	defer cancelLogout()
	cmd.app.Logout(logoutCtx)

	return nil
}

// notificationPrinter writes each notification once, in the order first
// seen.
type notificationPrinter struct {
	mu   sync.Mutex
	out  io.Writer
	seen map[string]bool
}

func newNotificationPrinter(out io.Writer) *notificationPrinter {
	return &notificationPrinter{out: out, seen: make(map[string]bool)}
}

func (p *notificationPrinter) print(s notify.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Oldest first so the output reads chronologically.
	for i := len(s.Notifications) - 1; i >= 0; i-- {
		n := s.Notifications[i]
		if p.seen[n.ID] {
			continue
		}
		p.seen[n.ID] = true
		if err := iojson.WriteLine(p.out, n); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID).Msg("failed to write notification")
		}
	}
}
