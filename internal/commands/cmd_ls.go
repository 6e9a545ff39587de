package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *frontdesk.App

	// flags
	jsonOutput bool
	unreadOnly bool
	limit      int
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *frontdesk.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List notifications from the notification service",
		UsageText: "frontdesk ls [--json] [--unread] [--limit N]",
		Description: `Fetches notifications and prints a table followed by summary counts.

Use --json for one notification per line, followed by a stats line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "unread",
				Usage:       "only unread notifications",
				Destination: &cmd.unreadOnly,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "maximum number of notifications (0 = service default)",
				Destination: &cmd.limit,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	cmd.app.Store.FetchNotifications(ctx, notify.ListParams{
		UnreadOnly: cmd.unreadOnly,
		Limit:      cmd.limit,
	})

	state := cmd.app.Store.State()
	if state.Error != nil {
		return fmt.Errorf("fetch notifications: %s", *state.Error)
	}

	out := c.Root().Writer
	stats := state.Stats()

	if cmd.jsonOutput {
		for _, n := range state.Notifications {
			if err := iojson.WriteLine(out, n); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return iojson.WriteLine(out, struct {
			Stats notify.Stats `json:"stats"`
		}{stats})
	}

	if len(state.Notifications) == 0 {
		_, _ = fmt.Fprintln(out, "No notifications")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tPRIORITY\tTIME\tSTATUS\tTITLE")
	for _, n := range state.Notifications {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.Type, n.Priority, n.Timestamp.Local().Format(time.DateTime), status(n), n.Title)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "%d total, %d unread", stats.Total, stats.Unread)
	if len(stats.ByType) > 0 {
		_, _ = fmt.Fprintf(out, " (%s)", formatCounts(stats.ByType))
	}
	_, _ = fmt.Fprintln(out)

	return nil
}

func status(n notify.Notification) string {
	switch {
	case n.AcknowledgedOn != nil:
		return "acknowledged"
	case n.Read:
		return "read"
	default:
		return "unread"
	}
}

func formatCounts[K ~string](m map[K]int) string {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
