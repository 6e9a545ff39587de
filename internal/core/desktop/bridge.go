package desktop

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/core/notify"
)

// AutoCloseAfter is how long a non-persistent desktop notification stays up.
const AutoCloseAfter = 5 * time.Second

// Outcome reports what Bridge.Show did with a notification.
type Outcome string

const (
	OutcomeShown        Outcome = "shown"
	OutcomeUnsupported  Outcome = "unsupported"
	OutcomeNoPermission Outcome = "no_permission"
	OutcomeDisabled     Outcome = "disabled"
	OutcomeQuietHours   Outcome = "quiet_hours"
	OutcomeFailed       Outcome = "failed"
)

// Bridge presents notifications on the desktop. Show never fails: platform
// errors and panics are logged and reported as OutcomeFailed.
type Bridge struct {
	platform Platform
	clock    notify.Clock
	logger   zerolog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

func WithClock(c notify.Clock) BridgeOption {
	return func(b *Bridge) {
		b.clock = c
	}
}

func WithLogger(l zerolog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = l
	}
}

// NewBridge returns a bridge over platform. A nil platform behaves as an
// unsupported one.
func NewBridge(platform Platform, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		platform: platform,
		clock:    notify.SystemClock{},
		logger:   logging.Component("desktop"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Show displays n if the platform, permission, settings and quiet hours all
// allow it.
func (b *Bridge) Show(ctx context.Context, n notify.Notification, settings notify.Settings) (outcome Outcome) {
	ctx = logging.WithNotificationID(ctx, n.ID)

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Ctx(ctx).Interface("panic", r).Msg("desktop notification panicked")
			outcome = OutcomeFailed
		}
	}()

	switch {
	case b.platform == nil || !b.platform.IsSupported():
		return OutcomeUnsupported
	case b.platform.Permission() != PermissionGranted:
		return OutcomeNoPermission
	case !settings.Desktop:
		return OutcomeDisabled
	case settings.QuietHours.Active(b.clock.Now()):
		b.logger.Debug().Ctx(ctx).Msg("desktop notification suppressed by quiet hours")
		return OutcomeQuietHours
	}

	handle, err := b.platform.Show(ctx, Options{
		Title:              n.Title,
		Message:            n.Message,
		Tag:                n.ID,
		RequireInteraction: n.Persistent,
	})
	if err != nil {
		b.logger.Error().Ctx(ctx).Err(err).Msg("desktop notification failed")
		return OutcomeFailed
	}

	if !n.Persistent && handle != nil {
		b.clock.AfterFunc(AutoCloseAfter, func() {
			if err := closeHandle(handle); err != nil {
				b.logger.Warn().Ctx(ctx).Err(err).Msg("close desktop notification")
			}
		})
	}

	return OutcomeShown
}

func closeHandle(h Handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("close panicked: %v", r)
		}
	}()
	return h.Close()
}
