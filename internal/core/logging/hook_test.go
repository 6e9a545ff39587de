package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Ctx(ctx).Msg("toast shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextHook_adds_ids(t *testing.T) {
	ctx := WithNotificationID(WithUserID(context.Background(), "desk-01"), "n-42")

	entry := logLine(t, ctx)

	assert.Equal(t, "desk-01", entry["user_id"])
	assert.Equal(t, "n-42", entry["notification_id"])
}

func TestContextHook_skips_missing_ids(t *testing.T) {
	entry := logLine(t, WithUserID(context.Background(), "desk-01"))
	assert.Equal(t, "desk-01", entry["user_id"])
	assert.NotContains(t, entry, "notification_id")

	entry = logLine(t, context.Background())
	assert.NotContains(t, entry, "user_id")
	assert.NotContains(t, entry, "notification_id")
}
