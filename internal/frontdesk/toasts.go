package frontdesk

import (
	"github.com/colonyops/frontdesk/internal/core/notify"
)

// ToastAdder is the part of the store the helpers need. *notify.Store
// satisfies it.
type ToastAdder interface {
	AddToast(in notify.ToastInput) notify.Toast
}

// Toasts dispatches the helper-built toasts.
type Toasts struct {
	store ToastAdder
}

func NewToasts(store ToastAdder) *Toasts {
	return &Toasts{store: store}
}

func (t *Toasts) ShowSuccessToast(title, message string, opts ...ToastOption) notify.Toast {
	return t.store.AddToast(SuccessToast(title, message, opts...))
}

func (t *Toasts) ShowErrorToast(title, message string, opts ...ToastOption) notify.Toast {
	return t.store.AddToast(ErrorToast(title, message, opts...))
}

func (t *Toasts) ShowWarningToast(title, message string, opts ...ToastOption) notify.Toast {
	return t.store.AddToast(WarningToast(title, message, opts...))
}

func (t *Toasts) ShowInfoToast(title, message string, opts ...ToastOption) notify.Toast {
	return t.store.AddToast(InfoToast(title, message, opts...))
}

func (t *Toasts) ShowLoadingToast(title, message string, opts ...ToastOption) notify.Toast {
	return t.store.AddToast(LoadingToast(title, message, opts...))
}

func (t *Toasts) ShowVisitorCheckedIn(visitor, host string) notify.Toast {
	return t.store.AddToast(VisitorCheckedInToast(visitor, host))
}

func (t *Toasts) ShowVisitorCheckedOut(visitor string) notify.Toast {
	return t.store.AddToast(VisitorCheckedOutToast(visitor))
}

func (t *Toasts) ShowVisitorOverdue(visitor string, minutes int) notify.Toast {
	return t.store.AddToast(VisitorOverdueToast(visitor, minutes))
}

func (t *Toasts) ShowSecurityAlert(message string) notify.Toast {
	return t.store.AddToast(SecurityAlertToast(message))
}

func (t *Toasts) ShowInvitationSent(email string) notify.Toast {
	return t.store.AddToast(InvitationSentToast(email))
}

func (t *Toasts) ShowInvitationsImported(sent, failed int) notify.Toast {
	return t.store.AddToast(InvitationsImportedToast(sent, failed))
}

func (t *Toasts) ShowUploadFailed(fileName, reason string) notify.Toast {
	return t.store.AddToast(UploadFailedToast(fileName, reason))
}
