package frontdesk

import (
	"context"

	"github.com/colonyops/frontdesk/internal/core/eventbus"
	"github.com/colonyops/frontdesk/internal/core/notify"
)

// Router maps domain events onto toasts and notifications.
type Router struct {
	app *App
}

func NewRouter(app *App) *Router {
	return &Router{app: app}
}

// Register subscribes every mapping. ctx is used for the desktop
// notifications raised by security alerts and pushed notifications.
func (r *Router) Register(ctx context.Context) {
	if r == nil || r.app == nil {
		return
	}
	bus, toasts := r.app.Bus, r.app.Toasts

	bus.SubscribeVisitorCheckedIn(func(p eventbus.VisitorCheckedInPayload) {
		toasts.ShowVisitorCheckedIn(p.VisitorName, p.HostName)
	})

	bus.SubscribeVisitorCheckedOut(func(p eventbus.VisitorCheckedOutPayload) {
		toasts.ShowVisitorCheckedOut(p.VisitorName)
	})

	bus.SubscribeVisitorOverdue(func(p eventbus.VisitorOverduePayload) {
		toasts.ShowVisitorOverdue(p.VisitorName, p.MinutesOverdue)
	})

	bus.SubscribeInvitationSent(func(p eventbus.InvitationSentPayload) {
		toasts.ShowInvitationSent(p.Email)
	})

	bus.SubscribeInvitationsImported(func(p eventbus.InvitationsImportedPayload) {
		toasts.ShowInvitationsImported(p.Sent, p.Failed)
	})

	bus.SubscribeDocumentUploadFailed(func(p eventbus.DocumentUploadFailedPayload) {
		toasts.ShowUploadFailed(p.FileName, p.Reason)
	})

	bus.SubscribeSecurityAlert(func(p eventbus.SecurityAlertPayload) {
		r.app.AddNotificationWithDesktop(ctx, SecurityAlertNotification(p.Message, p.Location))
	})

	bus.SubscribeNotificationReceived(func(p eventbus.NotificationReceivedPayload) {
		r.app.AddNotificationWithDesktop(ctx, p.Input)
	})

	bus.SubscribeConfigReloaded(func(p eventbus.ConfigReloadedPayload) {
		r.app.Store.UpdateSettings(notify.PatchFrom(p.Settings))
	})
}
