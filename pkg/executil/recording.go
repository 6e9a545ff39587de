package executil

import (
	"context"
	"fmt"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Cmd  string
	Args []string
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values, and Missing to
// make LookPath report a program as not installed.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command names to their output.
	// Key is the command name (e.g., "notify-send").
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error

	// Missing lists command names LookPath does not find.
	Missing map[string]bool
}

var _ Executor = (*RecordingExecutor)(nil)

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(_ context.Context, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Cmd:  cmd,
		Args: append([]string(nil), args...),
	})

	var out []byte
	var err error

	if e.Outputs != nil {
		out = e.Outputs[cmd]
	}
	if e.Errors != nil {
		err = e.Errors[cmd]
	}

	return out, err
}

func (e *RecordingExecutor) LookPath(cmd string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Missing[cmd] {
		return "", fmt.Errorf("%s: %w", cmd, ErrNotFound)
	}
	return "/usr/bin/" + cmd, nil
}

// Recorded returns a copy of the recorded commands.
func (e *RecordingExecutor) Recorded() []RecordedCommand {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]RecordedCommand(nil), e.Commands...)
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
