// Package iojson reads and writes the JSON the CLI exchanges with scripts:
// notification payloads in, notification listings and errors out.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the JSON shape of a command failure.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func jsonError(msg string, jsonErr error) string {
	// json.Marshal escapes both strings.
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError renders an Error. If data cannot be marshaled the result is
// a hand-built blob carrying the marshal error instead.
func MarshalError(msg string, data map[string]any) string {
	resp := Error{Message: msg, Data: data}

	bits, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return jsonError(msg, err)
	}

	return string(bits)
}

// WriteError prints an Error to stderr.
func WriteError(str string, data map[string]any) error {
	_, err := fmt.Fprintln(os.Stderr, MarshalError(str, data))
	return err
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// as an Error on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, jsonError("error marshaling in iojson.Write", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr].
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// WriteLine writes obj as one compact JSON line, for streaming output that
// tools like jq consume line by line.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
