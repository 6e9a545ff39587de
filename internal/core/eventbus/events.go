package eventbus

import (
	"github.com/colonyops/frontdesk/internal/core/notify"
)

const (
	EventConfigReloaded       Event = "config.reloaded"
	EventDocumentUploadFailed Event = "document.upload-failed"
	EventInvitationSent       Event = "invitation.sent"
	EventInvitationsImported  Event = "invitations.imported"
	EventNotificationReceived Event = "notification.received"
	EventSecurityAlert        Event = "security.alert"
	EventVisitorCheckedIn     Event = "visitor.checked-in"
	EventVisitorCheckedOut    Event = "visitor.checked-out"
	EventVisitorOverdue       Event = "visitor.overdue"
)

// Events maps every event to its payload type.
var Events = map[Event]any{
	// Keep list sorted A-Z
	EventConfigReloaded:       ConfigReloadedPayload{},
	EventDocumentUploadFailed: DocumentUploadFailedPayload{},
	EventInvitationSent:       InvitationSentPayload{},
	EventInvitationsImported:  InvitationsImportedPayload{},
	EventNotificationReceived: NotificationReceivedPayload{},
	EventSecurityAlert:        SecurityAlertPayload{},
	EventVisitorCheckedIn:     VisitorCheckedInPayload{},
	EventVisitorCheckedOut:    VisitorCheckedOutPayload{},
	EventVisitorOverdue:       VisitorOverduePayload{},
}

// ConfigReloadedPayload is emitted when the config file changed on disk.
type ConfigReloadedPayload struct {
	Settings notify.Settings `json:"-"`
}

// DocumentUploadFailedPayload is emitted when a visitor document could not be
// stored.
type DocumentUploadFailedPayload struct {
	FileName string `json:"fileName"`
	Reason   string `json:"reason"`
}

// InvitationSentPayload is emitted after a visitor invitation email is sent.
type InvitationSentPayload struct {
	Email string `json:"email"`
}

// InvitationsImportedPayload is emitted after a bulk spreadsheet import.
type InvitationsImportedPayload struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// NotificationReceivedPayload is emitted for every notification pushed over
// the realtime channel.
type NotificationReceivedPayload struct {
	Input notify.NotificationInput `json:"input"`
}

type SecurityAlertPayload struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type VisitorCheckedInPayload struct {
	VisitorName string `json:"visitorName"`
	HostName    string `json:"hostName"`
}

type VisitorCheckedOutPayload struct {
	VisitorName string `json:"visitorName"`
}

// VisitorOverduePayload is emitted when a visitor stays past the end of the
// planned visit.
type VisitorOverduePayload struct {
	VisitorName    string `json:"visitorName"`
	MinutesOverdue int    `json:"minutesOverdue"`
}

func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.send(EventConfigReloaded, p)
}

func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) {
	bus.subscribe(EventConfigReloaded, func(p any) { fn(p.(ConfigReloadedPayload)) })
}

func (bus *EventBus) PublishDocumentUploadFailed(p DocumentUploadFailedPayload) {
	bus.send(EventDocumentUploadFailed, p)
}

func (bus *EventBus) SubscribeDocumentUploadFailed(fn func(DocumentUploadFailedPayload)) {
	bus.subscribe(EventDocumentUploadFailed, func(p any) { fn(p.(DocumentUploadFailedPayload)) })
}

func (bus *EventBus) PublishInvitationSent(p InvitationSentPayload) {
	bus.send(EventInvitationSent, p)
}

func (bus *EventBus) SubscribeInvitationSent(fn func(InvitationSentPayload)) {
	bus.subscribe(EventInvitationSent, func(p any) { fn(p.(InvitationSentPayload)) })
}

func (bus *EventBus) PublishInvitationsImported(p InvitationsImportedPayload) {
	bus.send(EventInvitationsImported, p)
}

func (bus *EventBus) SubscribeInvitationsImported(fn func(InvitationsImportedPayload)) {
	bus.subscribe(EventInvitationsImported, func(p any) { fn(p.(InvitationsImportedPayload)) })
}

func (bus *EventBus) PublishNotificationReceived(p NotificationReceivedPayload) {
	bus.send(EventNotificationReceived, p)
}

func (bus *EventBus) SubscribeNotificationReceived(fn func(NotificationReceivedPayload)) {
	bus.subscribe(EventNotificationReceived, func(p any) { fn(p.(NotificationReceivedPayload)) })
}

func (bus *EventBus) PublishSecurityAlert(p SecurityAlertPayload) {
	bus.send(EventSecurityAlert, p)
}

func (bus *EventBus) SubscribeSecurityAlert(fn func(SecurityAlertPayload)) {
	bus.subscribe(EventSecurityAlert, func(p any) { fn(p.(SecurityAlertPayload)) })
}

func (bus *EventBus) PublishVisitorCheckedIn(p VisitorCheckedInPayload) {
	bus.send(EventVisitorCheckedIn, p)
}

func (bus *EventBus) SubscribeVisitorCheckedIn(fn func(VisitorCheckedInPayload)) {
	bus.subscribe(EventVisitorCheckedIn, func(p any) { fn(p.(VisitorCheckedInPayload)) })
}

func (bus *EventBus) PublishVisitorCheckedOut(p VisitorCheckedOutPayload) {
	bus.send(EventVisitorCheckedOut, p)
}

func (bus *EventBus) SubscribeVisitorCheckedOut(fn func(VisitorCheckedOutPayload)) {
	bus.subscribe(EventVisitorCheckedOut, func(p any) { fn(p.(VisitorCheckedOutPayload)) })
}

func (bus *EventBus) PublishVisitorOverdue(p VisitorOverduePayload) {
	bus.send(EventVisitorOverdue, p)
}

func (bus *EventBus) SubscribeVisitorOverdue(fn func(VisitorOverduePayload)) {
	bus.subscribe(EventVisitorOverdue, func(p any) { fn(p.(VisitorOverduePayload)) })
}
