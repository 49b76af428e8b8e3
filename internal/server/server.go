// Package server exposes the schedule pipeline over HTTP: a health
// endpoint for the display client's liveness probe and the download
// endpoint that runs the pipeline per request.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/config"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/schedule"
)

// readHeaderTimeout bounds how long a client may dribble request headers.
const readHeaderTimeout = 10 * time.Second

// Runner abstracts the pipeline for the handlers.
// *schedule.Pipeline is the production implementation.
type Runner interface {
	Run(ctx context.Context, logger *slog.Logger) (*schedule.Content, error)
}

// Server serves the schedule over HTTP.
type Server struct {
	cfg      *config.Config
	pipeline Runner
	logger   *slog.Logger
}

// New builds a Server. The config is treated as read-only.
func New(cfg *config.Config, pipeline Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{cfg: cfg, pipeline: pipeline, logger: logger}
}

// Handler returns the routing table, CORS wrapper included. Split from
// Run so tests can serve it without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("GET "+downloadPath, s.handleDownloadSchedule)

	return corsHandler(mux)
}

// Run listens on the configured port and serves until ctx is canceled,
// then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info("server listening",
		slog.String("addr", ln.Addr().String()),
		slog.String("environment", s.cfg.Environment),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()

		s.logger.Info("shutting down")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
