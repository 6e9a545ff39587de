package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagHook struct{}

func (tagHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("tag", "hooked")
}

func TestNew_writes_json_to_file(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "frontdesk.log")

	logger, closer, err := New("info", file, tagHook{})
	require.NoError(t, err)

	logger.Debug().Msg("filtered")
	logger.Info().Str("k", "v").Msg("kept")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "hooked", entry["tag"])
}

func TestNew_rejects_unknown_level(t *testing.T) {
	_, _, err := New("chatty", "")
	require.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewWriter("warn", &buf)
	require.NoError(t, err)

	logger.Info().Msg("filtered")
	logger.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "filtered")
	assert.Contains(t, buf.String(), `"message":"kept"`)
}
