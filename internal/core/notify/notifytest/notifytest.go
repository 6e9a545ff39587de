// Package notifytest provides fakes for driving the notify package in tests:
// a manual clock and an in-memory notification service.
package notifytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

// Clock is a notify.Clock whose time only moves when Advance is called.
// Callbacks scheduled with AfterFunc fire inside Advance, on the caller's
// goroutine.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*timer
}

var _ notify.Clock = (*Clock)(nil)

type timer struct {
	clock   *Clock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewClock returns a clock set to now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, f func()) notify.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{clock: c, at: c.now.Add(d), fn: f}
	c.pending = append(c.pending, t)
	return t
}

// Set moves the clock to now without firing timers.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d and fires every timer that came due,
// in deadline order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*timer
	keep := c.pending[:0]
	for _, t := range c.pending {
		switch {
		case t.stopped:
		case !t.at.After(now):
			t.fired = true
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	c.pending = keep
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Service is an in-memory notify.Service. Set GetErr or AckErr to make the
// corresponding call fail.
type Service struct {
	mu     sync.Mutex
	Items  []notify.Notification
	GetErr error
	AckErr error

	GetCalls []notify.ListParams
	Acked    []string
}

var _ notify.Service = (*Service)(nil)

func (s *Service) GetNotifications(_ context.Context, params notify.ListParams) (notify.ListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetCalls = append(s.GetCalls, params)
	if s.GetErr != nil {
		return notify.ListResult{}, s.GetErr
	}

	items := make([]notify.Notification, 0, len(s.Items))
	for _, n := range s.Items {
		if params.UnreadOnly && n.Read {
			continue
		}
		items = append(items, n)
	}

	if params.Offset > 0 {
		if params.Offset >= len(items) {
			items = items[:0]
		} else {
			items = items[params.Offset:]
		}
	}
	if params.Limit > 0 && len(items) > params.Limit {
		items = items[:params.Limit]
	}

	return notify.ListResult{Items: items}, nil
}

func (s *Service) AcknowledgeNotification(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AckErr != nil {
		return s.AckErr
	}

	s.Acked = append(s.Acked, id)
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items[i].Read = true
		}
	}
	return nil
}

// Notification builds an unread notification with fixed defaults.
func Notification(id string) notify.Notification {
	return notify.BuildNotification(notify.NotificationInput{
		ID:        id,
		Title:     "title " + id,
		Message:   "message " + id,
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
}
