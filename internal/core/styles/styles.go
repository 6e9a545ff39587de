// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	HeaderStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
	MutedStyle     lipgloss.Style
	OnlineStyle    lipgloss.Style
	OfflineStyle   lipgloss.Style
	ErrorBanner    lipgloss.Style
	ErrorText      lipgloss.Style
	LoadingBanner  lipgloss.Style
	SelectedStyle  lipgloss.Style
	UnreadStyle    lipgloss.Style
	ReadStyle      lipgloss.Style
	TimeStyle      lipgloss.Style
	ToastBoxStyle  lipgloss.Style
	ToastTitle     lipgloss.Style
	ToastMessage   lipgloss.Style
	ToastAction    lipgloss.Style
	TableHeader    lipgloss.Style
	FieldErrorPath lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	OnlineStyle = lipgloss.NewStyle().Foreground(p.Success)
	OfflineStyle = lipgloss.NewStyle().Foreground(p.Muted)

	ErrorBanner = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Error).
		Padding(0, 1)
	ErrorText = lipgloss.NewStyle().Foreground(p.Error)
	LoadingBanner = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Italic(true)

	SelectedStyle = lipgloss.NewStyle().
		Background(p.Surface)
	UnreadStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	ReadStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TimeStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ToastBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastTitle = lipgloss.NewStyle().Bold(true)
	ToastMessage = lipgloss.NewStyle().
		Foreground(p.Foreground)
	ToastAction = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Underline(true)

	TableHeader = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	FieldErrorPath = lipgloss.NewStyle().
		Foreground(p.Warning)
}

// TypeColor maps a notification type onto the palette.
func TypeColor(t notify.Type) lipgloss.Color {
	switch t {
	case notify.TypeSuccess, notify.TypeVisitorCheckin, notify.TypeInvitationSent:
		return CurrentPalette.Success
	case notify.TypeError:
		return CurrentPalette.Error
	case notify.TypeWarning, notify.TypeVisitorOverdue:
		return CurrentPalette.Warning
	case notify.TypeSecurityAlert, notify.TypeSystemAlert:
		return CurrentPalette.Alert
	case notify.TypeLoading, notify.TypeVisitorCheckout:
		return CurrentPalette.Secondary
	default:
		return CurrentPalette.Primary
	}
}

// PriorityStyle renders a priority badge. Elevated priorities stand out.
func PriorityStyle(p notify.Priority) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(CurrentPalette.Muted)
	switch p {
	case notify.PriorityHigh:
		s = s.Foreground(CurrentPalette.Warning)
	case notify.PriorityCritical:
		s = s.Foreground(CurrentPalette.Error).Bold(true)
	case notify.PriorityEmergency:
		s = s.Foreground(CurrentPalette.Background).Background(CurrentPalette.Error).Bold(true)
	}
	return s
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
