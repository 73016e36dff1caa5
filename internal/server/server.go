// Package server hosts the browser dashboard. Every request carries the
// uploaded file and the interaction state, and is answered by a fresh run of
// the aggregation pipeline; nothing is kept between requests.
package server

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
	"github.com/cleared-dev/catexplorer/internal/config"
	"github.com/cleared-dev/catexplorer/internal/importer"
)

//go:embed static/index.html
var indexHTML []byte

const shutdownTimeout = 5 * time.Second

// Server wires the HTTP routes to the pipeline.
type Server struct {
	app             *fiber.App
	addr            string
	pipeline        *aggregate.Pipeline
	registry        *importer.Registry
	includeIncoming bool
	log             zerolog.Logger
}

// New builds the fiber app from configuration.
func New(cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		addr:            cfg.Server.Addr,
		pipeline:        aggregate.New(cfg.PipelineOptions()),
		registry:        importer.DefaultRegistry(),
		includeIncoming: cfg.Filter.IncludeIncoming,
		log:             log.With().Str("component", "server").Logger(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "catexplorer",
		BodyLimit:             cfg.Server.MaxUploadMB * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	app.Use(s.accessLog())
	app.Use(recover.New())

	app.Get("/", s.handleIndex)
	app.Get("/healthz", s.handleHealth)
	app.Post("/api/explore", s.handleExplore)

	s.app = app
	return s
}

// App exposes the fiber app, mainly for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.addr)
	}()
	s.log.Info().Str("addr", s.addr).Msg("dashboard listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}
