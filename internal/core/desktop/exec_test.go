package desktop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/frontdesk/pkg/executil"
)

func TestExecPlatform_Permission(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		missing map[string]bool
		want    Permission
	}{
		{name: "linux with notify-send", goos: "linux", want: PermissionGranted},
		{name: "linux without notify-send", goos: "linux", missing: map[string]bool{notifySend: true}, want: PermissionDenied},
		{name: "darwin with osascript", goos: "darwin", want: PermissionGranted},
		{name: "windows", goos: "windows", want: PermissionDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newExecPlatform(&executil.RecordingExecutor{Missing: tt.missing}, tt.goos, "frontdesk")
			assert.Equal(t, tt.want, p.Permission())
			assert.Equal(t, tt.goos != "windows", p.IsSupported())
		})
	}
}

func TestExecPlatform_Show_notify_send(t *testing.T) {
	rec := &executil.RecordingExecutor{
		Outputs: map[string][]byte{notifySend: []byte("17\n")},
	}
	p := newExecPlatform(rec, "linux", "frontdesk")

	h, err := p.Show(context.Background(), Options{
		Title:              "Security alert",
		Message:            "Badge reader offline",
		Tag:                "n-9",
		RequireInteraction: true,
	})
	require.NoError(t, err)

	cmds := rec.Recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, notifySend, cmds[0].Cmd)
	assert.Equal(t, []string{
		"--print-id",
		"--app-name", "frontdesk",
		"--urgency", "critical",
		"--hint", "string:x-canonical-private-synchronous:n-9",
		"Security alert", "Badge reader offline",
	}, cmds[0].Args)

	require.NoError(t, h.Close())
	cmds = rec.Recorded()
	require.Len(t, cmds, 2)
	assert.Equal(t, gdbus, cmds[1].Cmd)
	assert.Equal(t, "17", cmds[1].Args[len(cmds[1].Args)-1])
}

func TestExecPlatform_Show_notify_send_without_id(t *testing.T) {
	rec := &executil.RecordingExecutor{}
	p := newExecPlatform(rec, "linux", "frontdesk")

	h, err := p.Show(context.Background(), Options{Title: "t", Message: "m"})
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.Len(t, rec.Recorded(), 1, "close without an id runs nothing")
	assert.Contains(t, rec.Recorded()[0].Args, "normal")
}

func TestExecPlatform_Show_osascript_quotes(t *testing.T) {
	rec := &executil.RecordingExecutor{}
	p := newExecPlatform(rec, "darwin", "frontdesk")

	_, err := p.Show(context.Background(), Options{Title: `Say "hi"`, Message: `C:\lobby`})
	require.NoError(t, err)

	cmds := rec.Recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, []string{"-e", `display notification "C:\\lobby" with title "Say \"hi\""`}, cmds[0].Args)
}

func TestExecPlatform_Show_error(t *testing.T) {
	boom := errors.New("no session bus")
	rec := &executil.RecordingExecutor{Errors: map[string]error{notifySend: boom}}
	p := newExecPlatform(rec, "linux", "frontdesk")

	_, err := p.Show(context.Background(), Options{Title: "t"})
	assert.ErrorIs(t, err, boom)

	_, err = newExecPlatform(rec, "plan9", "frontdesk").Show(context.Background(), Options{})
	assert.Error(t, err)
}
