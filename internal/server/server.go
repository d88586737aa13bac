package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	mu         sync.Mutex
	httpServer *http.Server

	// WriteTimeout bounds a whole response; AI-backed endpoints need more than the default.
	WriteTimeout time.Duration
}

// Extracted constants to avoid magic numbers and centralize tuning knobs.
const (
	maxHeaderBytes      = 1 << 20 // 1 MB
	readHeaderTimeout   = 10 * time.Second
	defaultWriteTimeout = 45 * time.Second
	idleTimeout         = 60 * time.Second
)

// New returns a Server with the given write timeout (0 means the default).
func New(writeTimeout time.Duration) *Server {
	return &Server{WriteTimeout: writeTimeout}
}

// newHTTPServer builds a configured *http.Server for the given address and handler.
func newHTTPServer(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr ensures the provided port is a valid address (accepts "8080" or ":8080").
func normalizeAddr(port string) string {
	if port == "" {
		return ""
	}
	if strings.HasPrefix(port, ":") || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Run starts the HTTP server on the given port using the provided handler.
// It blocks until the server stops; after Shutdown it returns http.ErrServerClosed.
func (s *Server) Run(port string, handler http.Handler) error {
	srv := newHTTPServer(normalizeAddr(port), handler, s.WriteTimeout)
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	return srv.ListenAndServe()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
