// Package desktop raises native desktop notifications for front desk
// notifications, honouring the desktop toggle, platform permission and quiet
// hours.
package desktop

import "context"

// Permission is the platform's notification permission state. It is only
// ever read; nothing in this package asks the user for it.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Options describes one native notification.
type Options struct {
	Title   string
	Message string
	// Tag identifies the notification on the platform. Showing a second
	// notification with the same tag replaces the first.
	Tag                string
	RequireInteraction bool
}

// Handle is a notification currently on screen.
type Handle interface {
	Close() error
}

// Platform is the native notification capability.
type Platform interface {
	IsSupported() bool
	Permission() Permission
	Show(ctx context.Context, opts Options) (Handle, error)
}
