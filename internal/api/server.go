package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP server plus the resources it must release on exit
type Server struct {
	http    *http.Server
	closers []io.Closer
	log     logrus.FieldLogger
}

// NewServer creates a server for handler on addr. closers are closed, in
// order, after the HTTP server has drained.
func NewServer(addr string, handler http.Handler, log logrus.FieldLogger, closers ...io.Closer) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		closers: closers,
		log:     log,
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully
func (s *Server) Run(ctx context.Context) error {
	serverDone := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.http.Addr).Info("Starting horas API")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- fmt.Errorf("failed to start server: %w", err)
			return
		}
		serverDone <- nil
	}()

	select {
	case err := <-serverDone:
		s.log.Info("Server stopped, initiating shutdown")
		s.shutdown()
		return s.handleServerError(err)
	case <-ctx.Done():
		s.log.Info("Received shutdown signal, initiating shutdown")
		s.shutdown()
		return s.handleServerError(<-serverDone)
	}
}

func (s *Server) handleServerError(err error) error {
	if err != nil {
		s.log.WithError(err).Error("Service stopped with an error")
		return err
	}
	s.log.Info("Service stopped cleanly")
	return nil
}

// shutdown drains the HTTP server, then releases the closers
func (s *Server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("Error during HTTP server shutdown")
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.log.WithError(err).Error("Error closing resource")
		}
	}
	s.log.Info("Server shutdown complete")
}
