package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	mu            sync.Mutex
	initErr       error
	disconnectErr error
	inits         []User
	disconnects   int
}

func (m *fakeManager) InitializeConnections(_ context.Context, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inits = append(m.inits, user)
	return m.initErr
}

func (m *fakeManager) DisconnectAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnects++
	return m.disconnectErr
}

type fakeSink struct {
	mu      sync.Mutex
	history []bool
}

func (s *fakeSink) SetRealtimeConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, connected)
}

func newConnector(m Manager, sink StatusSink) *Connector {
	c := NewConnector(m, sink)
	c.SetLogger(zerolog.Nop())
	return c
}

var desk = User{ID: "u-1", Name: "Reception"}

func TestConnector_Connect_success(t *testing.T) {
	m := &fakeManager{}
	sink := &fakeSink{}
	c := newConnector(m, sink)

	attempted, err := c.Connect(context.Background(), desk)
	require.NoError(t, err)
	assert.True(t, attempted)
	assert.Equal(t, []bool{true}, sink.history)
	assert.True(t, c.Attempted())

	// Guarded: a second call does nothing.
	attempted, err = c.Connect(context.Background(), desk)
	require.NoError(t, err)
	assert.False(t, attempted)
	assert.Len(t, m.inits, 1)
}

func TestConnector_Connect_failure_resets_guard(t *testing.T) {
	m := &fakeManager{initErr: errors.New("hub unreachable")}
	sink := &fakeSink{}
	c := newConnector(m, sink)

	attempted, err := c.Connect(context.Background(), desk)
	require.Error(t, err)
	assert.True(t, attempted)
	assert.Equal(t, []bool{false}, sink.history)
	assert.False(t, c.Attempted())

	m.initErr = nil
	attempted, err = c.Connect(context.Background(), desk)
	require.NoError(t, err)
	assert.True(t, attempted)
	assert.Equal(t, []bool{false, true}, sink.history)
}

func TestConnector_Disconnect(t *testing.T) {
	t.Run("success clears flag and guard", func(t *testing.T) {
		m := &fakeManager{}
		sink := &fakeSink{}
		c := newConnector(m, sink)
		_, _ = c.Connect(context.Background(), desk)

		c.Disconnect(context.Background())

		assert.Equal(t, []bool{true, false}, sink.history)
		assert.False(t, c.Attempted())
	})

	t.Run("failure leaves flag untouched", func(t *testing.T) {
		m := &fakeManager{disconnectErr: errors.New("socket stuck")}
		sink := &fakeSink{}
		c := newConnector(m, sink)
		_, _ = c.Connect(context.Background(), desk)

		c.Disconnect(context.Background())

		assert.Equal(t, []bool{true}, sink.history)
		assert.Equal(t, 1, m.disconnects)
	})
}

func TestConnector_Connect_concurrent_single_attempt(t *testing.T) {
	m := &fakeManager{}
	c := newConnector(m, &fakeSink{})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Connect(context.Background(), desk)
		}()
	}
	wg.Wait()

	assert.Len(t, m.inits, 1)
}
