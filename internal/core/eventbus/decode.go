package eventbus

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrUnknownEvent is returned for event names missing from Events.
var ErrUnknownEvent = errors.New("unknown event")

// Raw is the JSON form of an event, as accepted by the emit command.
type Raw struct {
	Event   Event           `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Decode unmarshals raw into the payload type registered for its event.
func Decode(raw Raw) (any, error) {
	proto, ok := Events[raw.Event]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, raw.Event)
	}

	ptr := reflect.New(reflect.TypeOf(proto))
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, ptr.Interface()); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", raw.Event, err)
		}
	}
	return ptr.Elem().Interface(), nil
}

// Publish enqueues payload under event. The payload must have the type
// registered in Events.
func (bus *EventBus) Publish(event Event, payload any) error {
	proto, ok := Events[event]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	if reflect.TypeOf(payload) != reflect.TypeOf(proto) {
		return fmt.Errorf("event %s: payload %T, want %T", event, payload, proto)
	}
	bus.send(event, payload)
	return nil
}
