// Package frontdesk wires the notification store to its collaborators: the
// desktop bridge, the realtime connector and the domain event bus. It also
// provides the toast helpers the rest of the application calls.
package frontdesk

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/frontdesk/internal/core/desktop"
	"github.com/colonyops/frontdesk/internal/core/eventbus"
	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/core/notify"
	"github.com/colonyops/frontdesk/internal/core/realtime"
)

// DefaultBusSize is the event buffer used when Options.BusSize is zero.
const DefaultBusSize = 64

// Options configures New. Service, Platform and Clock may be nil; zero
// Settings mean notify.DefaultSettings.
type Options struct {
	Service  notify.Service
	Platform desktop.Platform
	Settings notify.Settings
	Clock    notify.Clock
	Logger   *zerolog.Logger
	BusSize  int
}

// App is the notification center used by the commands and the TUI.
type App struct {
	Store   *notify.Store
	Toasts  *Toasts
	Bus     *eventbus.EventBus
	Desktop *desktop.Bridge

	realtime *realtime.Connector
	logger   zerolog.Logger
}

// New builds an App. Call Start to begin routing bus events.
func New(opts Options) *App {
	logger := logging.Component("frontdesk")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	settings := opts.Settings
	if settings == (notify.Settings{}) {
		settings = notify.DefaultSettings()
	}

	storeOpts := []notify.Option{
		notify.WithSettings(settings),
		notify.WithLogger(logger.With().Str("cmp", "notify").Logger()),
	}
	bridgeOpts := []desktop.BridgeOption{
		desktop.WithLogger(logger.With().Str("cmp", "desktop").Logger()),
	}
	if opts.Clock != nil {
		storeOpts = append(storeOpts, notify.WithClock(opts.Clock))
		bridgeOpts = append(bridgeOpts, desktop.WithClock(opts.Clock))
	}

	size := opts.BusSize
	if size <= 0 {
		size = DefaultBusSize
	}

	store := notify.NewStore(opts.Service, storeOpts...)

	return &App{
		Store:   store,
		Toasts:  NewToasts(store),
		Bus:     eventbus.New(size),
		Desktop: desktop.NewBridge(opts.Platform, bridgeOpts...),
		logger:  logger,
	}
}

// Start registers the event router and delivers bus events until ctx ends.
// It returns immediately.
func (a *App) Start(ctx context.Context) {
	eventbus.RegisterDebugLogger(a.Bus, a.logger.With().Str("cmp", "eventbus").Logger())
	NewRouter(a).Register(ctx)
	go a.Bus.Start(ctx)
}

// UseRealtime attaches the push transport. Realtime status is mirrored into
// the store.
func (a *App) UseRealtime(m realtime.Manager) {
	c := realtime.NewConnector(m, a.Store)
	c.SetLogger(a.logger.With().Str("cmp", "realtime").Logger())
	a.realtime = c
}

// HandleRealtime is the realtime.Handler for pushed notifications.
func (a *App) HandleRealtime(ctx context.Context, in notify.NotificationInput) {
	a.AddNotificationWithDesktop(ctx, in)
}

// Login connects the realtime channel for user, if one is attached, and
// loads the notification list. A realtime failure is logged and reflected
// in the store; it does not stop the fetch.
func (a *App) Login(ctx context.Context, user realtime.User) {
	ctx = logging.WithUserID(ctx, user.ID)

	if a.realtime != nil {
		_, _ = a.realtime.Connect(ctx, user)
	}
	a.Store.FetchNotifications(ctx, notify.ListParams{})
}

// Logout tears the realtime channel down.
func (a *App) Logout(ctx context.Context) {
	if a.realtime != nil {
		a.realtime.Disconnect(ctx)
	}
}

// Close stops pending toast timers.
func (a *App) Close() {
	a.Store.Close()
}

// AddNotificationWithDesktop stores in as a realtime notification, raising a
// companion toast for elevated priorities, and then offers the stored record
// to the desktop bridge.
func (a *App) AddNotificationWithDesktop(ctx context.Context, in notify.NotificationInput) (notify.Notification, desktop.Outcome) {
	n := a.Store.AddRealTimeNotification(in)
	outcome := a.Desktop.Show(ctx, n, a.Store.Settings())

	a.logger.Debug().Ctx(logging.WithNotificationID(ctx, n.ID)).
		Str("type", string(n.Type)).
		Str("priority", string(n.Priority)).
		Str("desktop", string(outcome)).
		Msg("notification received")

	return n, outcome
}
