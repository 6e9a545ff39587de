package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/frontdesk/internal/core/config"
	"github.com/colonyops/frontdesk/internal/core/desktop"
	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/core/notify/notifytest"
	"github.com/colonyops/frontdesk/internal/frontdesk"
)

type fakePlatform struct {
	mu    sync.Mutex
	shown []desktop.Options
}

func (p *fakePlatform) IsSupported() bool              { return true }
func (p *fakePlatform) Permission() desktop.Permission { return desktop.PermissionGranted }

func (p *fakePlatform) Show(_ context.Context, o desktop.Options) (desktop.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, o)
	return nopHandle{}, nil
}

type nopHandle struct{}

func (nopHandle) Close() error { return nil }

func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	return &Flags{Config: &cfg, ConfigPath: filepath.Join(t.TempDir(), "config.yaml")}
}

func testApp(t *testing.T, svc notify.Service, platform desktop.Platform) *frontdesk.App {
	t.Helper()
	logger := zerolog.Nop()
	app := frontdesk.New(frontdesk.Options{Service: svc, Platform: platform, Logger: &logger})
	t.Cleanup(app.Close)
	return app
}

// run executes args against a root command built by register and returns
// stdout.
func run(t *testing.T, register func(*cli.Command) *cli.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := register(&cli.Command{
		Name:           "frontdesk",
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	})

	err := root.Run(context.Background(), append([]string{"frontdesk"}, args...))
	return out.String(), err
}

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func twoNotifications() *notifytest.Service {
	n2 := notifytest.Notification("n2")
	n2.Read = true
	return &notifytest.Service{Items: []notify.Notification{notifytest.Notification("n1"), n2}}
}

func TestLsCmd_table(t *testing.T) {
	app := testApp(t, twoNotifications(), nil)

	out, err := run(t, NewLsCmd(testFlags(t), app).Register, "ls")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "title n1")
	assert.Contains(t, out, "unread")
	assert.Contains(t, out, "2 total, 1 unread (info: 2)")
}

func TestLsCmd_json(t *testing.T) {
	svc := twoNotifications()
	app := testApp(t, svc, nil)

	out, err := run(t, NewLsCmd(testFlags(t), app).Register, "ls", "--json", "--unread")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var n notify.Notification
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &n))
	assert.Equal(t, "n1", n.ID)
	assert.Contains(t, lines[1], `"stats"`)

	require.Len(t, svc.GetCalls, 1)
	assert.True(t, svc.GetCalls[0].UnreadOnly)
}

func TestLsCmd_fetch_failure(t *testing.T) {
	app := testApp(t, &notifytest.Service{GetErr: errors.New("network down")}, nil)

	_, err := run(t, NewLsCmd(testFlags(t), app).Register, "ls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}

func TestLsCmd_empty(t *testing.T) {
	app := testApp(t, &notifytest.Service{}, nil)

	out, err := run(t, NewLsCmd(testFlags(t), app).Register, "ls")
	require.NoError(t, err)
	assert.Equal(t, "No notifications\n", out)
}

func TestAckCmd(t *testing.T) {
	svc := twoNotifications()
	app := testApp(t, svc, nil)

	out, err := run(t, NewAckCmd(testFlags(t), app).Register, "ack", "n1")
	require.NoError(t, err)

	assert.Equal(t, "acknowledged n1\n", out)
	assert.Equal(t, []string{"n1"}, svc.Acked)
	n, _ := app.Store.State().Notification("n1")
	assert.NotNil(t, n.AcknowledgedOn)
}

func TestAckCmd_failure(t *testing.T) {
	svc := twoNotifications()
	svc.AckErr = notify.ServerError("acknowledge", 404, errors.New("not found"))
	app := testApp(t, svc, nil)

	_, err := run(t, NewAckCmd(testFlags(t), app).Register, "ack", "n1")
	require.Error(t, err)
	assert.ErrorIs(t, err, notify.ErrServerFailure)
}

func TestAckCmd_requires_id(t *testing.T) {
	app := testApp(t, twoNotifications(), nil)

	_, err := run(t, NewAckCmd(testFlags(t), app).Register, "ack")
	require.Error(t, err)
}

func TestDesktopCmd(t *testing.T) {
	platform := &fakePlatform{}
	app := testApp(t, nil, platform)
	path := writeJSON(t, `{"id":"d1","type":"security_alert","title":"Door","message":"Forced","priority":"critical"}`)

	out, err := run(t, NewDesktopCmd(testFlags(t), app).Register, "desktop", "-f", path)
	require.NoError(t, err)

	var res desktopResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, desktopResult{ID: "d1", Outcome: desktop.OutcomeShown}, res)

	require.Len(t, platform.shown, 1)
	assert.Equal(t, "d1", platform.shown[0].Tag)

	_, ok := app.Store.State().Toast("d1" + notify.CompanionToastIDSuffix)
	assert.True(t, ok, "critical notifications raise a companion toast")
}

func TestDesktopCmd_rejects_unknown_fields(t *testing.T) {
	app := testApp(t, nil, &fakePlatform{})
	path := writeJSON(t, `{"title":"x","colour":"red"}`)

	_, err := run(t, NewDesktopCmd(testFlags(t), app).Register, "desktop", "-f", path)
	require.Error(t, err)
}

func TestEmitCmd(t *testing.T) {
	app := testApp(t, nil, nil)
	path := writeJSON(t, `{"event":"visitor.checked-in","payload":{"visitorName":"Ada","hostName":"Grace"}}`)

	out, err := run(t, NewEmitCmd(testFlags(t), app).Register, "emit", "-f", path)
	require.NoError(t, err)

	var res emitResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Toasts, 1)
	assert.Equal(t, "Ada has checked in to see Grace", res.Toasts[0].Message)
}

func TestEmitCmd_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown event", input: `{"event":"visitor.teleported","payload":{}}`},
		{name: "bad payload", input: `{"event":"visitor.overdue","payload":{"minutesOverdue":"many"}}`},
		{name: "config reload", input: `{"event":"config.reloaded","payload":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t, nil, nil)
			_, err := run(t, NewEmitCmd(testFlags(t), app).Register, "emit", "-f", writeJSON(t, tt.input))
			require.Error(t, err)
		})
	}
}

func TestConfigValidateCmd(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Service.BaseURL = "https://desk.example.com"

	out, err := run(t, NewConfigValidateCmd(flags).Register, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigValidateCmd_json_errors(t *testing.T) {
	flags := testFlags(t)
	flags.Config.Notifications.QuietHours.Start = "25:00"
	flags.Config.Realtime.Enabled = true
	flags.Config.Realtime.URLs = []string{"wss://hub.example.com"}

	out, err := run(t, NewConfigValidateCmd(flags).Register, "config", "validate", "--format", "json")
	require.Error(t, err)

	var res validationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "notifications.quiet_hours.start")
	assert.NotEmpty(t, res.Warnings)
}

func TestWatchCmd_requires_realtime(t *testing.T) {
	app := testApp(t, nil, nil)

	_, err := run(t, NewWatchCmd(testFlags(t), app).Register, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "realtime is not enabled")
}

func TestNotificationPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := newNotificationPrinter(&buf)

	a := notifytest.Notification("a")
	b := notifytest.Notification("b")

	p.print(notify.State{Notifications: []notify.Notification{a}})
	p.print(notify.State{Notifications: []notify.Notification{b, a}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":"a"`)
	assert.Contains(t, lines[1], `"id":"b"`)
}

func TestFlags_User(t *testing.T) {
	flags := testFlags(t)
	flags.Config.User = config.UserConfig{ID: "u1", Name: "Lobby"}
	flags.Config.Realtime.Token = "tok"

	u := flags.User()
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Lobby", u.Name)
	assert.Equal(t, "tok", u.Token)

	assert.Empty(t, (&Flags{}).User().ID)
}
