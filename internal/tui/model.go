// Package tui is the interactive notification center.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/core/realtime"
	"github.com/colonyops/frontdesk/internal/frontdesk"
)

// stateChangedMsg carries a store snapshot into the update loop.
type stateChangedMsg struct {
	state notify.State
}

type loginDoneMsg struct{}

type fetchDoneMsg struct{}

type ackDoneMsg struct {
	id  string
	err error
}

// Sender is the subset of *tea.Program used to forward store changes.
type Sender interface {
	Send(msg tea.Msg)
}

// Subscribe forwards every store change to p. Sends happen on their own
// goroutine because subscribers run on the dispatching goroutine, which may
// be the update loop itself. The model drops snapshots older than the one
// it holds. The returned function unsubscribes.
func Subscribe(store *notify.Store, p Sender) func() {
	return store.Subscribe(func(s notify.State) {
		go p.Send(stateChangedMsg{state: s})
	})
}

// Model is the bubbletea model of the notification center.
type Model struct {
	ctx  context.Context
	app  *frontdesk.App
	user realtime.User

	state       notify.State
	cursor      int
	showDetails bool

	width  int
	height int
	keys   keyMap
	help   help.Model
	now    func() time.Time
}

// New creates the model. Init logs user in, which connects realtime (when
// attached) and loads the notification list.
func New(ctx context.Context, app *frontdesk.App, user realtime.User) Model {
	return Model{
		ctx:   ctx,
		app:   app,
		user:  user,
		state: app.Store.State(),
		keys:  defaultKeyMap(),
		help:  help.New(),
		now:   time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.app.Login(m.ctx, m.user)
		return loginDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case stateChangedMsg:
		if msg.state.Version >= m.state.Version {
			m.state = msg.state
			m.clampCursor()
		}
		return m, nil
	case loginDoneMsg, fetchDoneMsg:
		m.sync()
		return m, nil
	case ackDoneMsg:
		if msg.err != nil {
			m.app.Toasts.ShowErrorToast("Acknowledge failed", msg.err.Error())
		} else {
			m.app.Toasts.ShowSuccessToast("Acknowledged", "Notification acknowledged")
		}
		m.sync()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	store := m.app.Store

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Notifications)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
	case key.Matches(msg, m.keys.MarkRead):
		if n, ok := m.selected(); ok {
			store.MarkNotificationAsRead(n.ID)
		}
	case key.Matches(msg, m.keys.MarkAllRead):
		store.MarkAllAsRead()
	case key.Matches(msg, m.keys.Remove):
		if n, ok := m.selected(); ok {
			store.RemoveNotification(n.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		store.ClearNotifications()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetch()
	case key.Matches(msg, m.keys.Acknowledge):
		if n, ok := m.selected(); ok && n.AcknowledgedOn == nil {
			return m, m.acknowledge(n.ID)
		}
	case key.Matches(msg, m.keys.DismissToast):
		if len(m.state.Toasts) > 0 {
			store.RemoveToast(m.state.Toasts[0].ID)
		}
	case key.Matches(msg, m.keys.ClearToasts):
		store.ClearToasts()
	case key.Matches(msg, m.keys.DismissError):
		store.ClearError()
	default:
		return m, nil
	}

	m.sync()
	return m, nil
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		m.app.Store.FetchNotifications(m.ctx, notify.ListParams{})
		return fetchDoneMsg{}
	}
}

func (m Model) acknowledge(id string) tea.Cmd {
	return func() tea.Msg {
		return ackDoneMsg{id: id, err: m.app.Store.AcknowledgeNotification(m.ctx, id)}
	}
}

// sync pulls the latest snapshot after a synchronous dispatch so the next
// render does not wait for the subscription round trip.
func (m *Model) sync() {
	s := m.app.Store.State()
	if s.Version >= m.state.Version {
		m.state = s
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Notifications) {
		m.cursor = len(m.state.Notifications) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (notify.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Notifications) {
		return notify.Notification{}, false
	}
	return m.state.Notifications[m.cursor], true
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, app *frontdesk.App, user realtime.User, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, app, user), opts...)

	unsubscribe := Subscribe(app.Store, p)
	defer unsubscribe()

	_, err := p.Run()
	return err
}
