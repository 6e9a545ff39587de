package styles

import "github.com/colonyops/frontdesk/internal/core/notify"

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconSuccess  = "✓"
	IconError    = "✗"
	IconWarning  = "!"
	IconInfo     = "i"
	IconLoading  = "…"
	IconVisitor  = "→"
	IconCheckout = "←"
	IconOverdue  = "⏱"
	IconSecurity = "⚠"
	IconMail     = "✉"
	IconSystem   = "⚙"
	IconUnread   = "●"
	IconRead     = " "
)

// TypeIcon returns the glyph shown next to notifications and toasts of t.
func TypeIcon(t notify.Type) string {
	switch t {
	case notify.TypeSuccess:
		return IconSuccess
	case notify.TypeError:
		return IconError
	case notify.TypeWarning:
		return IconWarning
	case notify.TypeLoading:
		return IconLoading
	case notify.TypeVisitorCheckin:
		return IconVisitor
	case notify.TypeVisitorCheckout:
		return IconCheckout
	case notify.TypeVisitorOverdue:
		return IconOverdue
	case notify.TypeSecurityAlert:
		return IconSecurity
	case notify.TypeInvitationSent:
		return IconMail
	case notify.TypeSystemAlert:
		return IconSystem
	default:
		return IconInfo
	}
}
