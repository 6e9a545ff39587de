package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/core/styles"
)

const (
	toastWidth  = 44
	timeLayout  = "15:04"
	emptyMarker = "No notifications"
)

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}

	toasts := m.renderToasts()
	bottom := isBottom(m.state.Settings.Position)
	if toasts != "" && !bottom {
		sections = append(sections, toasts)
	}

	sections = append(sections, m.renderList())
	if m.showDetails {
		if n, ok := m.selected(); ok {
			sections = append(sections, renderDetails(n))
		}
	}

	if toasts != "" && bottom {
		sections = append(sections, toasts)
	}

	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n\n")
}

func (m Model) renderHeader() string {
	s := m.state

	live := styles.OfflineStyle.Render("○ offline")
	if s.RealtimeConnected {
		live = styles.OnlineStyle.Render("● live")
	}

	parts := []string{
		styles.HeaderStyle.Render("frontdesk"),
		styles.StatusStyle.Render(fmt.Sprintf("%d unread", s.UnreadCount)),
		live,
	}
	if s.LastSyncTime != nil {
		parts = append(parts, styles.MutedStyle.Render("synced "+s.LastSyncTime.Local().Format(timeLayout)))
	}
	if s.Settings.QuietHours.Active(m.now()) {
		parts = append(parts, styles.MutedStyle.Render("quiet hours"))
	}

	return strings.Join(parts, styles.MutedStyle.Render(" · "))
}

func (m Model) renderBanner() string {
	switch {
	case m.state.Error != nil:
		return styles.ErrorBanner.Render(*m.state.Error) + styles.MutedStyle.Render("  (e to dismiss)")
	case m.state.Loading:
		return styles.LoadingBanner.Render("Loading notifications…")
	default:
		return ""
	}
}

// renderToasts stacks toasts newest first and aligns the stack to the
// horizontal edge named by the configured position.
func (m Model) renderToasts() string {
	if len(m.state.Toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(m.state.Toasts))
	for _, t := range m.state.Toasts {
		rendered = append(rendered, renderToast(t))
	}
	stack := lipgloss.JoinVertical(lipgloss.Left, rendered...)

	if m.width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(m.width, horizontal(m.state.Settings.Position), stack)
}

func renderToast(t notify.Toast) string {
	c := styles.TypeColor(t.Type)

	lines := []string{
		styles.ToastTitle.Foreground(c).Render(styles.TypeIcon(t.Type) + " " + t.Title),
	}
	if t.Message != "" {
		lines = append(lines, styles.ToastMessage.Render(t.Message))
	}
	if len(t.Actions) > 0 {
		labels := make([]string, 0, len(t.Actions))
		for _, a := range t.Actions {
			labels = append(labels, styles.ToastAction.Render(a.Label))
		}
		lines = append(lines, strings.Join(labels, "  "))
	}

	return styles.ToastBoxStyle.
		BorderForeground(c).
		Width(toastWidth).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderList() string {
	if len(m.state.Notifications) == 0 {
		return styles.MutedStyle.Render(emptyMarker)
	}

	rows := make([]string, 0, len(m.state.Notifications))
	for i, n := range m.state.Notifications {
		row := renderRow(n)
		if i == m.cursor {
			row = styles.SelectedStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func renderRow(n notify.Notification) string {
	marker := styles.IconRead
	text := styles.ReadStyle
	if !n.Read {
		marker = styles.IconUnread
		text = styles.UnreadStyle
	}

	icon := lipgloss.NewStyle().Foreground(styles.TypeColor(n.Type)).Render(styles.TypeIcon(n.Type))

	parts := []string{
		marker,
		icon,
		styles.TimeStyle.Render(n.Timestamp.Local().Format(timeLayout)),
	}
	if n.Priority != notify.PriorityMedium {
		parts = append(parts, styles.PriorityStyle(n.Priority).Render(string(n.Priority)))
	}
	parts = append(parts, text.Render(n.Title))
	if n.Message != "" {
		parts = append(parts, styles.MutedStyle.Render(n.Message))
	}
	if n.AcknowledgedOn != nil {
		parts = append(parts, styles.OnlineStyle.Render("ack"))
	}

	return strings.Join(parts, " ")
}

func renderDetails(n notify.Notification) string {
	lines := []string{
		styles.HeaderStyle.Render(n.Title),
		n.Message,
		styles.MutedStyle.Render(fmt.Sprintf("id %s · %s · %s", n.ID, n.Type, n.Priority)),
	}
	if n.AcknowledgedOn != nil {
		lines = append(lines, styles.MutedStyle.Render("acknowledged "+n.AcknowledgedOn.Local().Format(timeLayout)))
	}
	for _, a := range n.Actions {
		lines = append(lines, styles.ToastAction.Render(a.Label)+styles.MutedStyle.Render(" ("+a.Action+")"))
	}
	data := dataFields(n.Data)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, styles.FieldErrorPath.Render(k)+": "+data[k])
	}

	return styles.ToastBoxStyle.BorderForeground(styles.CurrentPalette.Muted).Render(strings.Join(lines, "\n"))
}

// dataFields flattens the map shapes Data takes: map[string]string from the
// local builders, map[string]any from decoded JSON.
func dataFields(data any) map[string]string {
	switch d := data.(type) {
	case map[string]string:
		return d
	case map[string]any:
		out := make(map[string]string, len(d))
		for k, v := range d {
			out[k] = fmt.Sprint(v)
		}
		return out
	default:
		return nil
	}
}

func isBottom(p notify.Position) bool {
	switch p {
	case notify.PositionBottomLeft, notify.PositionBottomCenter, notify.PositionBottomRight:
		return true
	default:
		return false
	}
}

func horizontal(p notify.Position) lipgloss.Position {
	switch p {
	case notify.PositionTopLeft, notify.PositionBottomLeft:
		return lipgloss.Left
	case notify.PositionTopCenter, notify.PositionBottomCenter:
		return lipgloss.Center
	default:
		return lipgloss.Right
	}
}
