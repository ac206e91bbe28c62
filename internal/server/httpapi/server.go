// Package httpapi exposes the JSON API of the personal data store over HTTP
// with a chi router.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/logging"
)

// HTTPServer serves a handler until its context is canceled.
type HTTPServer struct {
	address         string
	handler         http.Handler
	logger          logging.Logger
	shutdownTimeout time.Duration
}

// NewHTTPServer returns a server for handler bound to address.
func NewHTTPServer(address string, handler http.Handler, l logging.Logger, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         address,
		handler:         handler,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is done, then
// drains in-flight requests for at most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
