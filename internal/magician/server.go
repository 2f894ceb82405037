// Package magician serves the decoding half of the trick over a websocket.
// Each selection an assistant sends is answered with the card the
// configured strategy says was kept back.
package magician

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/cardtrick/trick"
)

// Server represents the magician's WebSocket server
type Server struct {
	strategy    trick.Strategy
	upgrader    websocket.Upgrader
	logger      *log.Logger
	mu          sync.Mutex
	connections map[*Connection]struct{}
	stats       Stats
}

// Stats counts what the server has answered since it started.
type Stats struct {
	Connections atomic.Int64
	Reveals     atomic.Int64
	Rejected    atomic.Int64
}

// NewServer creates a magician that decodes with strategy.
func NewServer(strategy trick.Strategy, logger *log.Logger) *Server {
	return &Server{
		strategy: strategy,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("magician"),
		connections: make(map[*Connection]struct{}),
	}
}

// Handler returns the server's routes: /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Serve accepts connections on l until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(l)
	}()
	s.logger.Info("Magician listening", "addr", l.Addr().String(), "strategy", s.strategy.Name())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Stop()
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Magician stopped",
		"connections", s.stats.Connections.Load(),
		"reveals", s.stats.Reveals.Load(),
		"rejected", s.stats.Rejected.Load())
	return err
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}

// Stop closes every open connection.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// Stats returns the server's running counters.
func (s *Server) Stats() *Stats {
	return &s.stats
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s)
	s.register(conn)
	conn.Start()

	go func() {
		<-conn.ctx.Done()
		s.unregister(conn)
	}()
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.stats.Connections.Add(1)
	s.logger.Info("Assistant connected", "remote", conn.remote, "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Assistant disconnected", "remote", conn.remote, "total", total)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
