package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

// hub is a test notification hub that pushes queued frames to each client
// and records the headers it was dialled with.
type hub struct {
	t        *testing.T
	upgrader websocket.Upgrader
	frames   []string

	mu      sync.Mutex
	headers []http.Header
	conns   []*websocket.Conn
}

func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.t.Errorf("upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.headers = append(h.headers, r.Header.Clone())
	h.conns = append(h.conns, conn)
	h.mu.Unlock()

	for _, f := range h.frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
			return
		}
	}

	// Echo the client's close frame so DisconnectAll completes cleanly.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *hub) dropAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.conns {
		_ = c.Close()
	}
}

func startHub(t *testing.T, frames ...string) (*hub, string) {
	t.Helper()
	h := &hub{t: t, frames: frames}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return h, "ws" + strings.TrimPrefix(srv.URL, "http")
}

type received struct {
	mu    sync.Mutex
	items []notify.NotificationInput
	ch    chan struct{}
}

func newReceived() *received {
	return &received{ch: make(chan struct{}, 16)}
}

func (r *received) handle(_ context.Context, in notify.NotificationInput) {
	r.mu.Lock()
	r.items = append(r.items, in)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *received) wait(t *testing.T, n int) []notify.NotificationInput {
	t.Helper()
	for range n {
		select {
		case <-r.ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d notifications", n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.NotificationInput(nil), r.items...)
}

func TestWebSocketManager_receives_notifications(t *testing.T) {
	h, url := startHub(t,
		`{"type":"ping"}`,
		`not json`,
		`{"type":"presence","payload":{}}`,
		`{"type":"notification","payload":{"id":"rt-1","type":"security_alert","title":"Door forced","message":"Dock B","priority":"emergency"}}`,
	)

	rec := newReceived()
	m := NewWebSocketManager([]string{url}, rec.handle, WithLogger(zerolog.Nop()))

	err := m.InitializeConnections(context.Background(), User{ID: "u-1", Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Connected())

	items := rec.wait(t, 1)
	require.Len(t, items, 1)
	assert.Equal(t, "rt-1", items[0].ID)
	assert.Equal(t, notify.TypeSecurityAlert, items[0].Type)
	assert.Equal(t, notify.PriorityEmergency, items[0].Priority)

	h.mu.Lock()
	require.Len(t, h.headers, 1)
	assert.Equal(t, "u-1", h.headers[0].Get(UserIDHeader))
	assert.Equal(t, "Bearer tok", h.headers[0].Get("Authorization"))
	h.mu.Unlock()

	require.NoError(t, m.DisconnectAll(context.Background()))
	assert.Equal(t, 0, m.Connected())
}

func TestWebSocketManager_multiple_hubs(t *testing.T) {
	_, url1 := startHub(t, `{"type":"notification","payload":{"id":"a"}}`)
	_, url2 := startHub(t, `{"type":"notification","payload":{"id":"b"}}`)

	rec := newReceived()
	m := NewWebSocketManager([]string{url1, url2}, rec.handle, WithLogger(zerolog.Nop()))

	require.NoError(t, m.InitializeConnections(context.Background(), User{ID: "u-1"}))

	items := rec.wait(t, 2)
	ids := []string{items[0].ID, items[1].ID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	require.NoError(t, m.DisconnectAll(context.Background()))
}

func TestWebSocketManager_InitializeConnections_all_or_nothing(t *testing.T) {
	_, good := startHub(t)
	bad := "ws://127.0.0.1:1/unreachable"

	m := NewWebSocketManager([]string{good, bad}, nil, WithLogger(zerolog.Nop()))

	err := m.InitializeConnections(context.Background(), User{ID: "u-1"})
	require.Error(t, err)
	assert.Equal(t, 0, m.Connected())
}

func TestWebSocketManager_InitializeConnections_no_hubs(t *testing.T) {
	m := NewWebSocketManager(nil, nil, WithLogger(zerolog.Nop()))
	assert.Error(t, m.InitializeConnections(context.Background(), User{}))
}

func TestWebSocketManager_drop_handler(t *testing.T) {
	h, url := startHub(t)

	dropped := make(chan string, 1)
	m := NewWebSocketManager([]string{url}, nil,
		WithLogger(zerolog.Nop()),
		WithDropHandler(func(u string, err error) { dropped <- u }),
	)
	require.NoError(t, m.InitializeConnections(context.Background(), User{ID: "u-1"}))

	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.conns) == 1
	}, 2*time.Second, 10*time.Millisecond)
	h.dropAll()

	select {
	case u := <-dropped:
		assert.Equal(t, url, u)
	case <-time.After(2 * time.Second):
		t.Fatal("drop handler not called")
	}
	assert.Equal(t, 0, m.Connected())
}

func TestConnector_with_WebSocketManager(t *testing.T) {
	_, url := startHub(t)
	sink := &fakeSink{}

	m := NewWebSocketManager([]string{url}, nil, WithLogger(zerolog.Nop()))
	c := newConnector(m, sink)

	_, err := c.Connect(context.Background(), User{ID: "u-1"})
	require.NoError(t, err)

	c.Disconnect(context.Background())
	assert.Equal(t, []bool{true, false}, sink.history)
}
