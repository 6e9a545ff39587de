package frontdesk

import (
	"fmt"
	"time"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

// Helper durations. Zero means the toast stays until dismissed.
const (
	SuccessDuration time.Duration = 4 * time.Second
	InfoDuration    time.Duration = 4 * time.Second
	WarningDuration time.Duration = 6 * time.Second
	ErrorDuration   time.Duration = 0
)

// Action identifiers attached to overdue-visitor toasts.
const (
	ActionContactVisitor = "contact_visitor"
	ActionExtendVisit    = "extend_visit"
)

// ToastOption overrides a helper default.
type ToastOption func(*notify.ToastInput)

func WithID(id string) ToastOption {
	return func(in *notify.ToastInput) {
		in.ID = id
	}
}

// WithDuration sets how long the toast stays up; 0 makes it sticky.
func WithDuration(d time.Duration) ToastOption {
	return func(in *notify.ToastInput) {
		in.Duration = notify.DurationPtr(d)
	}
}

func WithPosition(p notify.Position) ToastOption {
	return func(in *notify.ToastInput) {
		in.Position = p
	}
}

func WithPriority(p notify.Priority) ToastOption {
	return func(in *notify.ToastInput) {
		in.Priority = p
	}
}

func WithPersistent(persistent bool) ToastOption {
	return func(in *notify.ToastInput) {
		in.Persistent = persistent
	}
}

func WithActions(actions ...notify.Action) ToastOption {
	return func(in *notify.ToastInput) {
		in.Actions = actions
	}
}

func WithData(data any) ToastOption {
	return func(in *notify.ToastInput) {
		in.Data = data
	}
}

func build(base notify.ToastInput, opts []ToastOption) notify.ToastInput {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

func SuccessToast(title, message string, opts ...ToastOption) notify.ToastInput {
	return build(notify.ToastInput{
		Type:     notify.TypeSuccess,
		Title:    title,
		Message:  message,
		Duration: notify.DurationPtr(SuccessDuration),
	}, opts)
}

// ErrorToast is sticky and persistent: errors stay until acknowledged.
func ErrorToast(title, message string, opts ...ToastOption) notify.ToastInput {
	return build(notify.ToastInput{
		Type:       notify.TypeError,
		Title:      title,
		Message:    message,
		Duration:   notify.DurationPtr(ErrorDuration),
		Persistent: true,
	}, opts)
}

func WarningToast(title, message string, opts ...ToastOption) notify.ToastInput {
	return build(notify.ToastInput{
		Type:     notify.TypeWarning,
		Title:    title,
		Message:  message,
		Duration: notify.DurationPtr(WarningDuration),
	}, opts)
}

func InfoToast(title, message string, opts ...ToastOption) notify.ToastInput {
	return build(notify.ToastInput{
		Type:     notify.TypeInfo,
		Title:    title,
		Message:  message,
		Duration: notify.DurationPtr(InfoDuration),
	}, opts)
}

// LoadingToast is sticky; replace or remove it by ID when the work is done.
func LoadingToast(title, message string, opts ...ToastOption) notify.ToastInput {
	return build(notify.ToastInput{
		Type:     notify.TypeLoading,
		Title:    title,
		Message:  message,
		Duration: notify.DurationPtr(0),
	}, opts)
}

func VisitorCheckedInToast(visitor, host string) notify.ToastInput {
	return SuccessToast("Visitor Checked In",
		fmt.Sprintf("%s has checked in to see %s", visitor, host),
		func(in *notify.ToastInput) { in.Type = notify.TypeVisitorCheckin })
}

func VisitorCheckedOutToast(visitor string) notify.ToastInput {
	return InfoToast("Visitor Checked Out",
		fmt.Sprintf("%s has checked out", visitor),
		func(in *notify.ToastInput) { in.Type = notify.TypeVisitorCheckout })
}

// VisitorOverdueToast stays up until the desk contacts the visitor or
// extends the visit.
func VisitorOverdueToast(visitor string, minutes int) notify.ToastInput {
	return WarningToast("Visitor Overdue",
		fmt.Sprintf("%s is %d minutes past their scheduled departure", visitor, minutes),
		func(in *notify.ToastInput) { in.Type = notify.TypeVisitorOverdue },
		WithPriority(notify.PriorityHigh),
		WithDuration(0),
		WithPersistent(true),
		WithActions(
			notify.Action{Label: "Contact Visitor", Action: ActionContactVisitor},
			notify.Action{Label: "Extend Visit", Action: ActionExtendVisit},
		),
	)
}

func SecurityAlertToast(message string) notify.ToastInput {
	return ErrorToast("Security Alert", message,
		func(in *notify.ToastInput) { in.Type = notify.TypeSecurityAlert },
		WithPriority(notify.PriorityCritical),
	)
}

func InvitationSentToast(email string) notify.ToastInput {
	return SuccessToast("Invitation Sent",
		fmt.Sprintf("Invitation sent to %s", email),
		func(in *notify.ToastInput) { in.Type = notify.TypeInvitationSent })
}

// InvitationsImportedToast summarises a bulk spreadsheet import. Any failed
// row turns it into a warning.
func InvitationsImportedToast(sent, failed int) notify.ToastInput {
	if failed > 0 {
		return WarningToast("Invitations Partially Sent",
			fmt.Sprintf("%d invitations sent, %d failed", sent, failed))
	}
	return SuccessToast("Invitations Sent", fmt.Sprintf("%d invitations sent", sent))
}

func UploadFailedToast(fileName, reason string) notify.ToastInput {
	msg := fmt.Sprintf("Could not upload %s", fileName)
	if reason != "" {
		msg += ": " + reason
	}
	return ErrorToast("Upload Failed", msg)
}

// SecurityAlertNotification is the durable notification raised for a
// security alert. Emergency priority makes its companion toast sticky.
func SecurityAlertNotification(message, location string) notify.NotificationInput {
	in := notify.NotificationInput{
		Type:     notify.TypeSecurityAlert,
		Title:    "Security Alert",
		Message:  message,
		Priority: notify.PriorityEmergency,
	}
	if location != "" {
		in.Message = fmt.Sprintf("%s (%s)", message, location)
		in.Data = map[string]string{"location": location}
	}
	return in
}
