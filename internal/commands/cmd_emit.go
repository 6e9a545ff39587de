package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/eventbus"
	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/iojson"
)

// emitTimeout bounds the wait for the routed event to reach the store.
const emitTimeout = 2 * time.Second

type EmitCmd struct {
	flags *Flags
	app   *frontdesk.App
	fr    *iojson.FileReader[eventbus.Raw]
}

// NewEmitCmd creates a new emit command
func NewEmitCmd(flags *Flags, app *frontdesk.App) *EmitCmd {
	return &EmitCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[eventbus.Raw]{Strict: true},
	}
}

// Register adds the emit command to the application
func (cmd *EmitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "emit",
		Usage: "Publish a domain event and show the notifications it produces",
		UsageText: `frontdesk emit [options]

Read from stdin:
  echo '{"event":"visitor.checked-in","payload":{"visitorName":"Ada","hostName":"Grace"}}' | frontdesk emit`,
		Description: `Publishes one event on the event bus and prints the toasts and notifications
present once the router has handled it. Useful for checking how events from the
visitor, invitation and document workflows are presented.

Events:
  document.upload-failed, invitation.sent, invitations.imported,
  notification.received, security.alert, visitor.checked-in,
  visitor.checked-out, visitor.overdue`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// emitResult is the JSON output of frontdesk emit.
type emitResult struct {
	Event         eventbus.Event        `json:"event"`
	Toasts        []notify.Toast        `json:"toasts"`
	Notifications []notify.Notification `json:"notifications"`
}

func (cmd *EmitCmd) run(ctx context.Context, c *cli.Command) error {
	raw, err := cmd.fr.Read()
	if err != nil {
		_ = iojson.WriteError(fmt.Sprintf("read input: %s", err), nil)
		return cli.Exit("", 1)
	}

	if raw.Event == eventbus.EventConfigReloaded {
		_ = iojson.WriteError("config.reloaded is published by the config watcher and cannot be emitted", nil)
		return cli.Exit("", 1)
	}

	payload, err := eventbus.Decode(raw)
	if err != nil {
		_ = iojson.WriteError(fmt.Sprintf("invalid event: %s", err), nil)
		return cli.Exit("", 1)
	}

	runCtx, cancel := context.WithTimeout(ctx, emitTimeout)
	defer cancel()
	cmd.app.Start(runCtx)

	changed := make(chan struct{}, 1)
	unsubscribe := cmd.app.Store.Subscribe(func(notify.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	if err := cmd.app.Bus.Publish(raw.Event, payload); err != nil {
		return err
	}

	select {
	case <-changed:
	case <-runCtx.Done():
		return errors.New("event was not delivered before the timeout")
	}

	state := cmd.app.Store.State()
	root := c.Root()
	return iojson.WriteWith(root.Writer, root.ErrWriter, emitResult{
		Event:         raw.Event,
		Toasts:        state.Toasts,
		Notifications: state.Notifications,
	})
}
