package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Server wraps http.Server with graceful shutdown. Registered shutdown
// hooks run after the listener has drained, so in-flight requests can
// still reach the audit trail before it flushes.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	hooks           []func(ctx context.Context) error
}

// NewServer creates a server listening on the given port.
func NewServer(handler http.Handler, port string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           ":" + port,
			Handler:        handler,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1MB
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// OnShutdown registers a hook to run during graceful shutdown, in
// registration order. Register before calling Run.
func (s *Server) OnShutdown(fn func(ctx context.Context) error) {
	s.hooks = append(s.hooks, fn)
}

// Run starts the server and blocks until SIGINT or SIGTERM arrives,
// then shuts down gracefully.
func (s *Server) Run() error {
	errChan := make(chan error, 1)

	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received signal, initiating graceful shutdown")
	}

	return s.Shutdown()
}

// Shutdown drains the listener and then runs the shutdown hooks. The
// first error wins but every hook still runs.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	for _, hook := range s.hooks {
		if hookErr := hook(ctx); hookErr != nil {
			log.Error().Err(hookErr).Msg("Shutdown hook failed")
			if err == nil {
				err = hookErr
			}
		}
	}

	if err == nil {
		log.Info().Msg("Server stopped gracefully")
	}
	return err
}
