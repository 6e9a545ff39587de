package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies user_id and notification_id from the event context
// onto the log line.
type ContextHook struct{}

func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if userID := GetUserID(ctx); userID != "" {
		e.Str("user_id", userID)
	}

	if notificationID := GetNotificationID(ctx); notificationID != "" {
		e.Str("notification_id", notificationID)
	}
}
