// Package profiler serves net/http/pprof on a local port for diagnosing a
// running notification center.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/rs/zerolog"
)

// startGrace is how long Start waits for an immediate Serve failure.
const startGrace = 100 * time.Millisecond

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	port       int
	logger     zerolog.Logger
}

// New builds a server for port. Port 0 picks a free port; see Addr.
func New(port int, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		port:   port,
		logger: logger,
	}
}

// Start listens on localhost and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("profiler server failed to start: %w", err)
	case <-time.After(startGrace):
	}

	s.logger.Info().Str("url", "http://"+s.Addr()+"/debug/pprof/").Msg("profiler endpoint available")
	return nil
}

// Addr is the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug().Msg("shutting down profiler server")
	return s.httpServer.Shutdown(ctx)
}
