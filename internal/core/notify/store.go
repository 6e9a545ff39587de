package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/frontdesk/internal/core/logging"
)

// ErrNoService is returned by remote operations when the store was built
// without a Service.
var ErrNoService = errors.New("notification service not configured")

// Subscriber receives a snapshot after every state change. Snapshots carry a
// Version; concurrent dispatches may deliver them out of order, so
// subscribers that care should drop versions older than one already seen.
type Subscriber func(State)

type toastTimer struct {
	timer Timer
	gen   uint64
}

// Store hosts the notification state. Every transition goes through Reduce
// under a single mutex, so ops apply atomically and in arrival order no
// matter which goroutine dispatches them.
type Store struct {
	service Service
	clock   Clock
	newID   func() string
	logger  zerolog.Logger

	mu       sync.Mutex
	state    State
	timers   map[string]*toastTimer
	timerGen uint64

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithIDGenerator replaces the UUID generator used for notifications and
// toasts created without an ID.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithSettings sets the initial settings.
func WithSettings(settings Settings) Option {
	return func(s *Store) {
		s.state.Settings = settings
	}
}

// NewStore creates a store backed by service. A nil service is allowed; the
// remote operations then fail with ErrNoService.
func NewStore(service Service, opts ...Option) *Store {
	s := &Store{
		service: service,
		clock:   SystemClock{},
		newID:   uuid.NewString,
		logger:  logging.Component("notify"),
		state:   NewState(DefaultSettings()),
		timers:  make(map[string]*toastTimer),
		subs:    make(map[int]Subscriber),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch applies op and returns the resulting snapshot. Subscribers are
// called after the lock is released, so they may dispatch from another
// goroutine but must not block on one that is dispatching.
func (s *Store) Dispatch(op Op) State {
	s.mu.Lock()
	snap, changed := s.applyLocked(op)
	s.mu.Unlock()

	if changed {
		s.publish(snap)
	}
	return snap
}

func (s *Store) applyLocked(op Op) (State, bool) {
	prev := s.state
	s.state = Reduce(prev, op)
	changed := s.state.Version != prev.Version
	if changed {
		s.scheduleLocked(op)
	}
	return s.state.Clone(), changed
}

// scheduleLocked keeps exactly one live timer per toast with a positive
// duration. Timers of toasts that left the collection are stopped so they
// can never act on a stale or reused ID.
func (s *Store) scheduleLocked(op Op) {
	var added string
	switch op := op.(type) {
	case AddToast:
		added = op.Input.ID
	case AddRealTimeNotification:
		if op.Input.Priority.Elevated() {
			added = op.Input.ID + CompanionToastIDSuffix
		}
	}

	if added != "" {
		if old, ok := s.timers[added]; ok {
			old.timer.Stop()
			delete(s.timers, added)
		}
		if t, ok := s.state.Toast(added); ok && !t.Sticky() {
			s.timerGen++
			gen := s.timerGen
			id := added
			s.timers[id] = &toastTimer{
				gen:   gen,
				timer: s.clock.AfterFunc(t.Duration, func() { s.expireToast(id, gen) }),
			}
		}
	}

	for id, tt := range s.timers {
		if _, ok := s.state.Toast(id); !ok {
			tt.timer.Stop()
			delete(s.timers, id)
		}
	}
}

func (s *Store) expireToast(id string, gen uint64) {
	s.mu.Lock()
	tt, ok := s.timers[id]
	if !ok || tt.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	snap, changed := s.applyLocked(RemoveToast{ID: id})
	s.mu.Unlock()

	if changed {
		s.logger.Debug().Str("toast_id", id).Msg("toast expired")
		s.publish(snap)
	}
}

func (s *Store) publish(snap State) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Close stops all pending toast timers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, tt := range s.timers {
		tt.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) resolveNotification(in NotificationInput) NotificationInput {
	if in.ID == "" {
		in.ID = s.newID()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = s.clock.Now()
	}
	return in
}

// AddNotification stores a new durable notification and returns it.
func (s *Store) AddNotification(in NotificationInput) Notification {
	in = s.resolveNotification(in)
	snap := s.Dispatch(AddNotification{Input: in})
	n, _ := snap.Notification(in.ID)
	return n
}

// AddRealTimeNotification stores a notification received over the realtime
// channel, raising a companion toast for elevated priorities.
func (s *Store) AddRealTimeNotification(in NotificationInput) Notification {
	in = s.resolveNotification(in)
	snap := s.Dispatch(AddRealTimeNotification{Input: in})
	n, _ := snap.Notification(in.ID)
	return n
}

func (s *Store) MarkNotificationAsRead(id string) {
	s.Dispatch(MarkNotificationRead{ID: id})
}

func (s *Store) RemoveNotification(id string) {
	s.Dispatch(RemoveNotification{ID: id})
}

func (s *Store) MarkAllAsRead() {
	s.Dispatch(MarkAllRead{})
}

func (s *Store) ClearNotifications() {
	s.Dispatch(ClearNotifications{})
}

// AddToast shows a toast and returns it as stored.
func (s *Store) AddToast(in ToastInput) Toast {
	if in.ID == "" {
		in.ID = s.newID()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = s.clock.Now()
	}
	snap := s.Dispatch(AddToast{Input: in})
	t, _ := snap.Toast(in.ID)
	return t
}

func (s *Store) RemoveToast(id string) {
	s.Dispatch(RemoveToast{ID: id})
}

func (s *Store) ClearToasts() {
	s.Dispatch(ClearToasts{})
}

func (s *Store) UpdateSettings(p SettingsPatch) {
	s.Dispatch(UpdateSettings{Patch: p})
}

func (s *Store) SetLoading(loading bool) {
	s.Dispatch(SetLoading{Loading: loading})
}

func (s *Store) SetError(msg string) {
	s.Dispatch(SetError{Err: &msg})
}

func (s *Store) ClearError() {
	s.Dispatch(ClearError{})
}

func (s *Store) SetRealtimeConnected(connected bool) {
	s.Dispatch(SetRealtimeConnected{Connected: connected})
}

func (s *Store) UpdateLastSyncTime() {
	s.Dispatch(UpdateLastSyncTime{At: s.clock.Now()})
}

// FetchNotifications replaces the durable collection with the remote list.
// It does not return an error: failures are recorded in State.Error. Two
// overlapping fetches are not cancelled; whichever resolves last wins.
func (s *Store) FetchNotifications(ctx context.Context, params ListParams) {
	s.Dispatch(FetchStarted{})

	if s.service == nil {
		s.Dispatch(FetchFailed{Reason: ErrNoService.Error()})
		return
	}

	res, err := s.service.GetNotifications(ctx, params)
	if err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Msg("fetch notifications failed")
		s.Dispatch(FetchFailed{Reason: err.Error()})
		return
	}

	s.Dispatch(FetchSucceeded{Items: res.Items, At: s.clock.Now()})
	s.logger.Debug().Ctx(ctx).Int("count", len(res.Items)).Msg("notifications fetched")
}

// AcknowledgeNotification acknowledges id remotely and, on success, marks
// the local copy read. On failure the local state is left untouched and the
// error is returned so the caller can decide how to surface it.
func (s *Store) AcknowledgeNotification(ctx context.Context, id string) error {
	if s.service == nil {
		return ErrNoService
	}

	if err := s.service.AcknowledgeNotification(ctx, id); err != nil {
		return fmt.Errorf("acknowledge notification %s: %w", id, err)
	}

	s.Dispatch(Acknowledged{ID: id, At: s.clock.Now()})
	return nil
}
