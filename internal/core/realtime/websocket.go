package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/frontdesk/internal/core/logging"
	"github.com/colonyops/frontdesk/internal/core/notify"
)

// Envelope types sent by the notification hub.
const (
	MessageNotification = "notification"
	MessagePing         = "ping"
)

const (
	writeWait       = 5 * time.Second
	dialTimeout     = 10 * time.Second
	UserIDHeader    = "X-Frontdesk-User"
	maxMessageBytes = 64 << 10
)

// Envelope is the frame format on the wire.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Handler receives every notification pushed by a hub.
type Handler func(ctx context.Context, in notify.NotificationInput)

// DropHandler is called when a hub connection ends without DisconnectAll.
type DropHandler func(url string, err error)

type hubConn struct {
	url  string
	conn *websocket.Conn
	done chan struct{}

	writeMu sync.Mutex
}

// WebSocketManager maintains one websocket per configured hub URL.
type WebSocketManager struct {
	urls    []string
	handler Handler
	onDrop  DropHandler
	dialer  *websocket.Dialer
	logger  zerolog.Logger

	mu      sync.Mutex
	conns   []*hubConn
	closing bool
}

var _ Manager = (*WebSocketManager)(nil)

// WSOption configures a WebSocketManager.
type WSOption func(*WebSocketManager)

func WithDialer(d *websocket.Dialer) WSOption {
	return func(m *WebSocketManager) {
		m.dialer = d
	}
}

// WithDropHandler registers fn for connections that end unexpectedly.
func WithDropHandler(fn DropHandler) WSOption {
	return func(m *WebSocketManager) {
		m.onDrop = fn
	}
}

func WithLogger(l zerolog.Logger) WSOption {
	return func(m *WebSocketManager) {
		m.logger = l
	}
}

// NewWebSocketManager returns a manager for the given hub URLs (ws:// or
// wss://). handler is called from the read goroutines, one per hub.
func NewWebSocketManager(urls []string, handler Handler, opts ...WSOption) *WebSocketManager {
	m := &WebSocketManager{
		urls:    append([]string(nil), urls...),
		handler: handler,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: dialTimeout,
		},
		logger: logging.Component("websocket"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InitializeConnections dials every hub. Either all hubs connect or none stay
// open.
func (m *WebSocketManager) InitializeConnections(ctx context.Context, user User) error {
	if len(m.urls) == 0 {
		return errors.New("no realtime hubs configured")
	}

	header := http.Header{}
	header.Set(UserIDHeader, user.ID)
	if user.Token != "" {
		header.Set("Authorization", "Bearer "+user.Token)
	}

	conns := make([]*hubConn, len(m.urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range m.urls {
		g.Go(func() error {
			conn, resp, err := m.dialer.DialContext(gctx, url, header)
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
			if err != nil {
				return fmt.Errorf("dial %s: %w", url, err)
			}
			conn.SetReadLimit(maxMessageBytes)
			conns[i] = &hubConn{url: url, conn: conn, done: make(chan struct{})}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, hc := range conns {
			if hc != nil {
				_ = hc.conn.Close()
			}
		}
		return err
	}

	m.mu.Lock()
	m.closing = false
	m.conns = append(m.conns, conns...)
	m.mu.Unlock()

	// The read loops outlive the connect call, so they get their own
	// context carrying only the user for log lines.
	readCtx := logging.WithUserID(context.Background(), user.ID)
	for _, hc := range conns {
		go m.readLoop(readCtx, hc)
	}

	return nil
}

func (m *WebSocketManager) readLoop(ctx context.Context, hc *hubConn) {
	defer close(hc.done)

	log := m.logger.With().Str("hub", hc.url).Logger()

	for {
		_, data, err := hc.conn.ReadMessage()
		if err != nil {
			m.mu.Lock()
			closing := m.closing
			m.mu.Unlock()

			if closing {
				return
			}

			log.Warn().Ctx(ctx).Err(err).Msg("realtime connection dropped")
			m.forget(hc)
			if m.onDrop != nil {
				m.onDrop(hc.url, err)
			}
			return
		}

		m.dispatch(ctx, log, data)
	}
}

func (m *WebSocketManager) dispatch(ctx context.Context, log zerolog.Logger, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Ctx(ctx).Err(err).Msg("invalid realtime frame")
		return
	}

	switch env.Type {
	case MessagePing:
	case MessageNotification:
		var in notify.NotificationInput
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			log.Warn().Ctx(ctx).Err(err).Msg("invalid notification payload")
			return
		}
		if m.handler != nil {
			m.handler(logging.WithNotificationID(ctx, in.ID), in)
		}
	default:
		log.Debug().Ctx(ctx).Str("type", env.Type).Msg("ignoring realtime frame")
	}
}

func (m *WebSocketManager) forget(hc *hubConn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.conns {
		if c == hc {
			m.conns = append(m.conns[:i], m.conns[i+1:]...)
			break
		}
	}
	_ = hc.conn.Close()
}

// Connected returns the number of open hub connections.
func (m *WebSocketManager) Connected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// DisconnectAll closes every hub connection concurrently, sending a close
// frame first and waiting for the read loops to exit or ctx to end.
func (m *WebSocketManager) DisconnectAll(ctx context.Context) error {
	m.mu.Lock()
	conns := m.conns
	m.conns = nil
	m.closing = true
	m.mu.Unlock()

	var g errgroup.Group
	for _, hc := range conns {
		g.Go(func() error {
			return hc.close(ctx)
		})
	}
	return g.Wait()
}

func (hc *hubConn) close(ctx context.Context) error {
	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	hc.writeMu.Lock()
	werr := hc.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "logout"), deadline)
	hc.writeMu.Unlock()

	select {
	case <-hc.done:
	case <-ctx.Done():
	case <-time.After(time.Until(deadline)):
	}

	cerr := hc.conn.Close()
	<-hc.done

	if werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
		return fmt.Errorf("close %s: %w", hc.url, werr)
	}
	if cerr != nil && !errors.Is(cerr, net.ErrClosed) {
		return fmt.Errorf("close %s: %w", hc.url, cerr)
	}
	return nil
}
