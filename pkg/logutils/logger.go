// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Hook is attached to every logger returned by New.
type Hook = zerolog.Hook

// TimeFormat is the console timestamp layout.
const TimeFormat = "15:04:05"

// New returns a JSON logger at the given level. When file is empty the
// logger writes to stderr, switching to zerolog's console format if stderr
// is a terminal. The returned closer releases the log file.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string, hooks ...Hook) (zerolog.Logger, func(), error) {
	closer := func() {}

	var writer io.Writer = os.Stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		writer = f
	} else if StderrIsTerminal() {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: TimeFormat}
	}

	l, err := NewWriter(level, writer, hooks...)
	if err != nil {
		closer()
		return zerolog.Logger{}, func() {}, err
	}
	return l, closer, nil
}

// NewWriter returns a logger at the given level writing to w as is.
func NewWriter(level string, w io.Writer, hooks ...Hook) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	l := zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	for _, h := range hooks {
		l = l.Hook(h)
	}

	return l, nil
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
