// Package eventbus is a typed publish/subscribe bus that carries front desk
// domain events (visitor arrivals, security alerts, invitation results) to
// whatever turns them into notifications.
package eventbus

import (
	"context"
	"slices"
	"sync"
)

// Event names a kind of event, e.g. "visitor.checked-in".
type Event string

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers events asynchronously on the goroutine running Start.
// Publishing never blocks: when the buffer is full the event is dropped and
// the OnDrop hooks fire.
type EventBus struct {
	ch chan envelope

	mu   sync.RWMutex
	subs map[Event][]func(any)

	hookMu      sync.RWMutex
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// New returns a bus buffering up to size undelivered events.
func New(size int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, size),
		subs: make(map[Event][]func(any)),
	}
}

// Start delivers events until ctx is done.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.deliver(env)
		}
	}
}

func (bus *EventBus) deliver(env envelope) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.hookMu.RLock()
	hooks := slices.Clone(bus.onSubscribe)
	bus.hookMu.RUnlock()
	for _, h := range hooks {
		h(event)
	}
}

func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.runHooks(false, event, payload)
	default:
		bus.runHooks(true, event, payload)
	}
}

// OnPublish registers a hook that fires after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hookMu.Lock()
	defer bus.hookMu.Unlock()
	bus.onPublish = append(bus.onPublish, fn)
}

// OnDrop registers a hook that fires when an event is dropped because the
// buffer is full.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hookMu.Lock()
	defer bus.hookMu.Unlock()
	bus.onDrop = append(bus.onDrop, fn)
}

func (bus *EventBus) OnSubscribe(fn func(Event)) {
	bus.hookMu.Lock()
	defer bus.hookMu.Unlock()
	bus.onSubscribe = append(bus.onSubscribe, fn)
}

// OnPanic registers a hook that fires with the recovered value when a
// subscriber panics.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hookMu.Lock()
	defer bus.hookMu.Unlock()
	bus.onPanic = append(bus.onPanic, fn)
}

func (bus *EventBus) runHooks(dropped bool, event Event, payload any) {
	bus.hookMu.RLock()
	hooks := bus.onPublish
	if dropped {
		hooks = bus.onDrop
	}
	hooks = slices.Clone(hooks)
	bus.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(event, payload)
	}
}

func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	bus.hookMu.RLock()
	hooks := slices.Clone(bus.onPanic)
	bus.hookMu.RUnlock()
	for _, fn := range hooks {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}
