// Package testbus runs a real EventBus for tests and records what gets
// published on it.
package testbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/frontdesk/internal/core/eventbus"
)

// DefaultWait bounds AssertPublished.
const DefaultWait = 500 * time.Millisecond

// Record is one published event.
type Record struct {
	Event   eventbus.Event
	Payload any
}

// Bus is a started EventBus that records every enqueued event.
type Bus struct {
	*eventbus.EventBus

	mu      sync.Mutex
	records []Record
	changed chan struct{}
}

// New starts a bus that stops when the test ends.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{
		EventBus: eventbus.New(64),
		changed:  make(chan struct{}),
	}
	tb.OnPublish(tb.record)

	ctx, cancel := context.WithCancel(context.Background())
	go tb.Start(ctx)
	t.Cleanup(cancel)

	return tb
}

func (tb *Bus) record(event eventbus.Event, payload any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.records = append(tb.records, Record{Event: event, Payload: payload})
	close(tb.changed)
	tb.changed = make(chan struct{})
}

// Records returns everything published so far, oldest first.
func (tb *Bus) Records() []Record {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return append([]Record(nil), tb.records...)
}

// Payloads returns the payloads published for event, oldest first.
func (tb *Bus) Payloads(event eventbus.Event) []any {
	var out []any
	for _, r := range tb.Records() {
		if r.Event == event {
			out = append(out, r.Payload)
		}
	}
	return out
}

// WaitFor blocks until event has been published or timeout elapses.
func (tb *Bus) WaitFor(event eventbus.Event, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		tb.mu.Lock()
		changed := tb.changed
		found := false
		for _, r := range tb.records {
			if r.Event == event {
				found = true
				break
			}
		}
		tb.mu.Unlock()

		if found {
			return true
		}

		select {
		case <-changed:
		case <-deadline.C:
			return false
		}
	}
}

// AssertPublished fails the test when event is not published within DefaultWait.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if !tb.WaitFor(event, DefaultWait) {
		t.Errorf("event %q was not published", event)
	}
}

// AssertNotPublished fails the test when event is published within wait.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event, wait time.Duration) {
	t.Helper()
	if tb.WaitFor(event, wait) {
		t.Errorf("event %q was published", event)
	}
}
