// Package realtime connects the front desk to the push channel that delivers
// notifications as they happen.
package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/frontdesk/internal/core/logging"
)

// User identifies the signed-in front desk operator.
type User struct {
	ID    string
	Name  string
	Token string
}

// Manager owns the push transport.
type Manager interface {
	InitializeConnections(ctx context.Context, user User) error
	DisconnectAll(ctx context.Context) error
}

// StatusSink records whether the push channel is up. *notify.Store
// satisfies it.
type StatusSink interface {
	SetRealtimeConnected(connected bool)
}

// Connector drives a Manager on login and logout and mirrors the outcome into
// a StatusSink. It attempts at most one connection until that attempt fails
// or the user logs out.
type Connector struct {
	manager Manager
	sink    StatusSink
	logger  zerolog.Logger

	mu        sync.Mutex
	attempted bool
}

// NewConnector returns a connector that reports connection state to sink.
func NewConnector(manager Manager, sink StatusSink) *Connector {
	return &Connector{
		manager: manager,
		sink:    sink,
		logger:  logging.Component("realtime"),
	}
}

// SetLogger replaces the connector's logger.
func (c *Connector) SetLogger(l zerolog.Logger) {
	c.logger = l
}

// Connect initializes the push connections for user unless an attempt is
// already in flight or has succeeded. It returns whether an attempt was made
// and the attempt's error.
func (c *Connector) Connect(ctx context.Context, user User) (bool, error) {
	c.mu.Lock()
	if c.attempted {
		c.mu.Unlock()
		return false, nil
	}
	c.attempted = true
	c.mu.Unlock()

	ctx = logging.WithUserID(ctx, user.ID)

	if err := c.manager.InitializeConnections(ctx, user); err != nil {
		c.mu.Lock()
		c.attempted = false
		c.mu.Unlock()

		c.sink.SetRealtimeConnected(false)
		c.logger.Error().Ctx(ctx).Err(err).Msg("realtime connect failed")
		return true, fmt.Errorf("initialize realtime connections: %w", err)
	}

	c.sink.SetRealtimeConnected(true)
	c.logger.Info().Ctx(ctx).Msg("realtime connected")
	return true, nil
}

// Disconnect tears down all connections. On failure the connected flag keeps
// its previous value and the error is only logged.
func (c *Connector) Disconnect(ctx context.Context) {
	if err := c.manager.DisconnectAll(ctx); err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Msg("realtime disconnect failed")
		return
	}

	c.mu.Lock()
	c.attempted = false
	c.mu.Unlock()

	c.sink.SetRealtimeConnected(false)
	c.logger.Info().Ctx(ctx).Msg("realtime disconnected")
}

// Attempted reports whether the guard currently blocks new attempts.
func (c *Connector) Attempted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempted
}
