package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/iojson"
)

type AckCmd struct {
	flags *Flags
	app   *frontdesk.App

	jsonOutput bool
}

// NewAckCmd creates a new ack command
func NewAckCmd(flags *Flags, app *frontdesk.App) *AckCmd {
	return &AckCmd{flags: flags, app: app}
}

// Register adds the ack command to the application
func (cmd *AckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ack",
		Usage:       "Acknowledge notifications",
		UsageText:   "frontdesk ack <id> [<id>...]",
		Description: "Acknowledges each notification with the notification service. Stops at the first failure.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the acknowledged notifications as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AckCmd) run(ctx context.Context, c *cli.Command) error {
	ids := c.Args().Slice()
	if len(ids) == 0 {
		return errors.New("at least one notification id is required")
	}

	store := cmd.app.Store
	store.FetchNotifications(ctx, notify.ListParams{})

	out := c.Root().Writer
	for _, id := range ids {
		if err := store.AcknowledgeNotification(ctx, id); err != nil {
			return err
		}

		n, ok := store.State().Notification(id)
		switch {
		case cmd.jsonOutput && ok:
			if err := iojson.WriteLine(out, n); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		case cmd.jsonOutput:
			if err := iojson.WriteLine(out, map[string]string{"id": id}); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		default:
			_, _ = fmt.Fprintf(out, "acknowledged %s\n", id)
		}
	}

	return nil
}
