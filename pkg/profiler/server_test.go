package profiler

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, logger zerolog.Logger) *Server {
	t.Helper()

	server := New(0, logger)
	require.NoError(t, server.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
	return server
}

func TestServer_Addr(t *testing.T) {
	server := New(0, zerolog.Nop())
	assert.Empty(t, server.Addr())

	var buf bytes.Buffer
	server = startServer(t, zerolog.New(&buf))

	assert.Contains(t, server.Addr(), "127.0.0.1:")
	assert.Contains(t, buf.String(), "http://"+server.Addr()+"/debug/pprof/")
}

func TestServer_serves_pprof(t *testing.T) {
	server := startServer(t, zerolog.Nop())
	base := "http://" + server.Addr()

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/goroutine?debug=1", "/debug/pprof/cmdline", "/debug/pprof/symbol"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(base + path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_Shutdown_stops_serving(t *testing.T) {
	server := New(0, zerolog.Nop())
	require.NoError(t, server.Start(context.Background()))
	addr := server.Addr()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	_, err := http.Get("http://" + addr + "/debug/pprof/")
	assert.Error(t, err)
}

func TestServer_Start_port_in_use(t *testing.T) {
	first := startServer(t, zerolog.Nop())

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	second := New(port, zerolog.Nop())
	assert.Error(t, second.Start(context.Background()))
}
