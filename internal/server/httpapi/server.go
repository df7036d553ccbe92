package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bandroomhq/bandroom/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// Server runs the HTTP API with graceful shutdown on context cancel.
type Server struct {
	address string
	router  *Router
	logger  logging.Logger
}

// NewServer constructs a Server for the given bind address.
func NewServer(address string, router *Router, logger logging.Logger) *Server {
	return &Server{
		address: address,
		router:  router,
		logger:  logger.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.router.ApplyRoutes()

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
