package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by Read when neither a file nor piped stdin is
// available.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader decodes a T from the file named by its --file flag, falling
// back to stdin when the flag is empty.
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin replaces os.Stdin. When set it is read without the terminal
	// check.
	Stdin io.Reader
	// Strict rejects unknown fields.
	Strict bool
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// SetFile sets the path the flag would otherwise provide.
func (fr *FileReader[T]) SetFile(path string) {
	fr.fileFlagValue = path
}

func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader, closer, err := fr.open()
	if err != nil {
		return input, err
	}
	defer closer()

	dec := json.NewDecoder(reader)
	if fr.Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) open() (io.Reader, func(), error) {
	switch {
	case fr.fileFlagValue != "":
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, nil, fmt.Errorf("open file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	case fr.Stdin != nil:
		return fr.Stdin, func() {}, nil
	case term.IsTerminal(int(os.Stdin.Fd())):
		return nil, nil, ErrNoInput
	default:
		return os.Stdin, func() {}, nil
	}
}
