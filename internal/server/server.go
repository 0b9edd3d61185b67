// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the converter over HTTP: upload a document,
// poll its status, download the Markdown. Uploads and outputs live on
// disk and are swept once they pass the retention window.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/doc2md/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Engine converts one file and reports the formats it handles.
// *convert.Converter implements it.
type Engine interface {
	Convert(inputPath, outputPath string) error
	SupportedInputFormats() []string
	SupportedOutputFormats() []string
}

// Store persists conversion records. *status.Store implements it.
type Store interface {
	Create(ctx context.Context, id, inputFile string, createdAt time.Time) error
	MarkCompleted(ctx context.Context, id, outputFile string) error
	MarkFailed(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (types.ConversionRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config holds the service settings that the handlers and sweeper need.
type Config struct {
	UploadDir     string
	ConvertedDir  string
	Retention     time.Duration
	SweepInterval time.Duration

	// Token, when non-empty, is required as a bearer token on every route
	// except /health.
	Token string
}

// Server serves the conversion API.
type Server struct {
	engine Engine
	store  Store
	cfg    Config
	log    zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New creates the upload and output directories and returns a server.
func New(engine Engine, store Store, cfg Config, log zerolog.Logger) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.ConvertedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return &Server{
		engine: engine,
		store:  store,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(s.cfg.Token))

		r.Post("/convert/", s.handleConvert)
		r.Get("/status/{id}", s.handleStatus)
		r.Get("/download/{id}", s.handleDownload)
		r.Get("/supported-formats", s.handleFormats)
	})

	return r
}

// ListenAndServe serves on addr and runs the retention sweeper until ctx
// is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.RunSweeper(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
