package desktop

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/colonyops/frontdesk/pkg/executil"
)

const (
	notifySend = "notify-send"
	gdbus      = "gdbus"
	osascript  = "osascript"
)

// ExecPlatform shows notifications by running the desktop's notification
// helper: notify-send on Linux and osascript on macOS.
type ExecPlatform struct {
	exec    executil.Executor
	goos    string
	appName string
}

var _ Platform = (*ExecPlatform)(nil)

// NewExecPlatform returns a platform for the running OS.
func NewExecPlatform(exec executil.Executor, appName string) *ExecPlatform {
	return newExecPlatform(exec, runtime.GOOS, appName)
}

func newExecPlatform(exec executil.Executor, goos, appName string) *ExecPlatform {
	return &ExecPlatform{exec: exec, goos: goos, appName: appName}
}

func (p *ExecPlatform) binary() string {
	switch p.goos {
	case "linux", "freebsd", "openbsd":
		return notifySend
	case "darwin":
		return osascript
	default:
		return ""
	}
}

func (p *ExecPlatform) IsSupported() bool {
	return p.binary() != ""
}

// Permission is granted when the helper binary is installed. A missing
// helper is treated as a denial; nothing is ever installed or prompted.
func (p *ExecPlatform) Permission() Permission {
	bin := p.binary()
	if bin == "" {
		return PermissionDefault
	}
	if _, err := p.exec.LookPath(bin); err != nil {
		if errors.Is(err, executil.ErrNotFound) {
			return PermissionDenied
		}
		return PermissionDefault
	}
	return PermissionGranted
}

func (p *ExecPlatform) Show(ctx context.Context, opts Options) (Handle, error) {
	switch p.binary() {
	case notifySend:
		return p.showNotifySend(ctx, opts)
	case osascript:
		return p.showOsascript(ctx, opts)
	default:
		return nil, fmt.Errorf("desktop notifications unsupported on %s", p.goos)
	}
}

func (p *ExecPlatform) showNotifySend(ctx context.Context, opts Options) (Handle, error) {
	urgency := "normal"
	if opts.RequireInteraction {
		urgency = "critical"
	}

	args := []string{
		"--print-id",
		"--app-name", p.appName,
		"--urgency", urgency,
	}
	if opts.Tag != "" {
		args = append(args, "--hint", "string:x-canonical-private-synchronous:"+opts.Tag)
	}
	args = append(args, opts.Title, opts.Message)

	out, err := p.exec.Run(ctx, notifySend, args...)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 32)
	if err != nil {
		// Older notify-send builds print nothing; the notification is up but
		// cannot be closed early.
		return noopHandle{}, nil
	}

	return &dbusHandle{exec: p.exec, id: uint32(id)}, nil
}

func (p *ExecPlatform) showOsascript(ctx context.Context, opts Options) (Handle, error) {
	script := fmt.Sprintf("display notification %s with title %s",
		appleScriptString(opts.Message), appleScriptString(opts.Title))

	if _, err := p.exec.Run(ctx, osascript, "-e", script); err != nil {
		return nil, err
	}
	return noopHandle{}, nil
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// dbusHandle closes a notify-send notification through the freedesktop
// notifications service.
type dbusHandle struct {
	exec executil.Executor
	id   uint32
}

func (h *dbusHandle) Close() error {
	_, err := h.exec.Run(context.Background(), gdbus,
		"call", "--session",
		"--dest", "org.freedesktop.Notifications",
		"--object-path", "/org/freedesktop/Notifications",
		"--method", "org.freedesktop.Notifications.CloseNotification",
		strconv.FormatUint(uint64(h.id), 10),
	)
	return err
}

type noopHandle struct{}

func (noopHandle) Close() error { return nil }
