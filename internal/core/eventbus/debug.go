package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger traces bus traffic on logger. Dropped events and
// subscriber panics are logged above debug since both lose a notification.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnSubscribe(func(event Event) {
		logger.Debug().Str("event", string(event)).Msg("subscriber added")
	})

	bus.OnPublish(func(event Event, payload any) {
		withPayload(logger.Debug(), event, payload).Msg("event queued")
	})

	bus.OnDrop(func(event Event, payload any) {
		withPayload(logger.Warn(), event, payload).Int("buffer", cap(bus.ch)).Msg("event dropped")
	})

	bus.OnPanic(func(event Event, payload any, recovered any) {
		withPayload(logger.Error(), event, payload).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}

func withPayload(e *zerolog.Event, event Event, payload any) *zerolog.Event {
	e = e.Str("event", string(event))
	if p, ok := payload.(NotificationReceivedPayload); ok && p.Input.ID != "" {
		e = e.Str("notification_id", p.Input.ID)
	}
	return e
}
