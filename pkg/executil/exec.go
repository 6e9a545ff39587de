// Package executil runs external helper programs such as the desktop
// notification binaries.
package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// ErrNotFound is returned by LookPath when a program is not installed.
var ErrNotFound = errors.New("executable not found")

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external programs.
type Executor interface {
	// Run executes cmd and returns its stdout. On failure the error carries
	// the first bytes of stderr.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// LookPath resolves cmd on PATH, returning ErrNotFound when absent.
	LookPath(cmd string) (string, error)
}

// RealExecutor calls actual programs.
type RealExecutor struct{}

var _ Executor = (*RealExecutor)(nil)

// Run executes cmd. Stderr is capped at 500 bytes so noisy helpers cannot
// flood logs, and the *exec.ExitError stays reachable with errors.As.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &limitedWriter{buf: &stderr, max: maxStderrLen}

	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return stdout.Bytes(), fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return stdout.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
	}
	return stdout.Bytes(), nil
}

func (e *RealExecutor) LookPath(cmd string) (string, error) {
	p, err := exec.LookPath(cmd)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd, ErrNotFound)
	}
	return p, nil
}
