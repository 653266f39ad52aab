package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/logging"
)

// Server wraps the http.Server lifecycle.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

func NewServer(logger logging.Logger, addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening for HTTP traffic. It blocks until the server
// stops and hides ErrServerClosed from callers.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting http server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully terminates all active connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
