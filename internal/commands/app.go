package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/frontdesk/internal/core/config"
	"github.com/colonyops/frontdesk/internal/core/desktop"
	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/core/realtime"
	"github.com/colonyops/frontdesk/internal/data/notifyapi"
	"github.com/colonyops/frontdesk/internal/frontdesk"
	"github.com/colonyops/frontdesk/pkg/executil"
)

// AppName identifies frontdesk to the desktop notification daemon.
const AppName = "frontdesk"

// BuildApp wires the notification center from cfg: the HTTP notification
// service when a base URL is configured, native desktop notifications
// through exec, and the websocket hubs when realtime is enabled.
func BuildApp(cfg *config.Config, exec executil.Executor) (*frontdesk.App, error) {
	opts := frontdesk.Options{
		Settings: cfg.Settings(),
		Platform: desktop.NewExecPlatform(exec, AppName),
	}

	if cfg.Service.BaseURL != "" {
		client, err := notifyapi.New(cfg.Service.BaseURL,
			notifyapi.WithToken(cfg.Service.Token),
			notifyapi.WithTimeout(cfg.Service.Timeout),
			notifyapi.WithLogger(logging.Component("notifyapi")),
		)
		if err != nil {
			return nil, fmt.Errorf("notification service: %w", err)
		}
		opts.Service = client
	}

	app := frontdesk.New(opts)

	if cfg.Realtime.Enabled {
		var mgr *realtime.WebSocketManager
		mgr = realtime.NewWebSocketManager(cfg.Realtime.URLs, app.HandleRealtime,
			realtime.WithLogger(logging.Component("realtime")),
			realtime.WithDropHandler(func(url string, err error) {
				remaining := mgr.Connected()
				log.Warn().Err(err).Str("hub", url).Int("remaining", remaining).Msg("realtime hub dropped")
				if remaining == 0 {
					app.Store.SetRealtimeConnected(false)
				}
			}),
		)
		app.UseRealtime(mgr)
	}

	return app, nil
}
