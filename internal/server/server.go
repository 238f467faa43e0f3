// Package server exposes the normalizer over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/javajack/xlnest"
	"github.com/javajack/xlnest/internal/config"
	"github.com/javajack/xlnest/logging"
)

const shutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	Addr         string
	MaxBodyBytes int64
	// Options apply to every request before the request's own query parameters.
	Options []xlnest.Option
}

// Server routes normalize, validate and describe requests.
type Server struct {
	cfg    Config
	router *chi.Mux
}

// New creates a Server with its routes and middleware installed.
func New(cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultListenAddr
	}
	s := &Server{cfg: cfg, router: chi.NewRouter()}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestID)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/normalize", s.handleNormalize)
		r.Post("/validate", s.handleValidate)
		r.Post("/describe", s.handleDescribe)
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("listening", slog.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
