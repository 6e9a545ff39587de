package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/desktop"
	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/iojson"
)

type DesktopCmd struct {
	flags *Flags
	app   *frontdesk.App
	fr    *iojson.FileReader[notify.NotificationInput]
}

// NewDesktopCmd creates a new desktop command
func NewDesktopCmd(flags *Flags, app *frontdesk.App) *DesktopCmd {
	return &DesktopCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[notify.NotificationInput]{Strict: true},
	}
}

// Register adds the desktop command to the application
func (cmd *DesktopCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "desktop",
		Usage: "Send a notification through the desktop notification bridge",
		UsageText: `frontdesk desktop [options]

Read from stdin:
  echo '{"title":"Visitor arrived","message":"Ada is in the lobby"}' | frontdesk desktop

Read from file:
  frontdesk desktop -f notification.json`,
		Description: `Handles the payload the same way as a notification pushed over the realtime
channel, then reports what the desktop bridge did with it.

The outcome is one of: shown, unsupported, no_permission, disabled,
quiet_hours, failed. Settings (enable_desktop, quiet_hours) come from the
config file.

Input JSON fields: id, type, title, message, priority, timestamp, actions,
data. Missing fields take the usual defaults.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// desktopResult is the JSON output of frontdesk desktop.
type desktopResult struct {
	ID      string          `json:"id"`
	Outcome desktop.Outcome `json:"outcome"`
}

func (cmd *DesktopCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		_ = iojson.WriteError(fmt.Sprintf("read input: %s", err), nil)
		return cli.Exit("", 1)
	}

	n, outcome := cmd.app.AddNotificationWithDesktop(ctx, input)

	root := c.Root()
	return iojson.WriteWith(root.Writer, root.ErrWriter, desktopResult{ID: n.ID, Outcome: outcome})
}
