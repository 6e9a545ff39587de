package logging

import "context"

type contextKey string

const (
	userIDKey         contextKey = "user_id"
	notificationIDKey contextKey = "notification_id"
)

// WithUserID tags ctx with the signed-in front desk user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithNotificationID tags ctx with the notification being handled.
func WithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDKey, id)
}

// GetUserID returns the user ID stored in ctx, or "".
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// GetNotificationID returns the notification ID stored in ctx, or "".
func GetNotificationID(ctx context.Context) string {
	if id, ok := ctx.Value(notificationIDKey).(string); ok {
		return id
	}
	return ""
}
