package notifyapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/frontdesk/internal/core/notify"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithLogger(zerolog.Nop()), WithToken("secret")}, opts...)
	c, err := New(srv.URL+"/api/", opts...)
	require.NoError(t, err)
	return c
}

func TestNew_rejects_invalid_url(t *testing.T) {
	_, err := New("not a url")
	require.Error(t, err)

	_, err = New("")
	require.Error(t, err)
}

func TestClient_GetNotifications(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"n1","type":"visitor_checkin","title":"Checked in","message":"Ada","priority":"high","timestamp":"2024-03-01T09:00:00Z","read":false,"persistent":true,"actions":[{"label":"View","action":"view_visitor"}]}]}`))
	})

	res, err := c.GetNotifications(context.Background(), notify.ListParams{UnreadOnly: true, Limit: 20, Offset: 40})
	require.NoError(t, err)

	assert.Equal(t, "/api/notifications", gotPath)
	assert.Equal(t, "limit=20&offset=40&unreadOnly=true", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)

	require.Len(t, res.Items, 1)
	n := res.Items[0]
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, notify.TypeVisitorCheckin, n.Type)
	assert.Equal(t, notify.PriorityHigh, n.Priority)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), n.Timestamp)
	assert.Equal(t, []notify.Action{{Label: "View", Action: "view_visitor"}}, n.Actions)
}

func TestClient_GetNotifications_empty_body_items(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{}`))
	})

	res, err := c.GetNotifications(context.Background(), notify.ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestClient_GetNotifications_server_failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database offline", http.StatusServiceUnavailable)
	})

	_, err := c.GetNotifications(context.Background(), notify.ListParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, notify.ErrServerFailure)
	assert.Contains(t, err.Error(), "database offline")

	var se *notify.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestClient_GetNotifications_bad_json(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":`))
	})

	_, err := c.GetNotifications(context.Background(), notify.ListParams{})
	assert.ErrorIs(t, err, notify.ErrServerFailure)
}

func TestClient_network_failure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = c.GetNotifications(context.Background(), notify.ListParams{})
	assert.ErrorIs(t, err, notify.ErrNetworkFailure)

	err = c.AcknowledgeNotification(context.Background(), "n1")
	assert.ErrorIs(t, err, notify.ErrNetworkFailure)
}

func TestClient_timeout_is_network_failure(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.GetNotifications(context.Background(), notify.ListParams{})
	assert.ErrorIs(t, err, notify.ErrNetworkFailure)
}

func TestClient_AcknowledgeNotification(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.AcknowledgeNotification(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/notifications/a%2Fb/acknowledge", gotPath)
}

func TestClient_AcknowledgeNotification_not_found(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.AcknowledgeNotification(context.Background(), "missing")
	require.ErrorIs(t, err, notify.ErrServerFailure)
	assert.Contains(t, err.Error(), "Not Found")
}
