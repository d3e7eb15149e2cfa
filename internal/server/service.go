// Package server exposes the dashboard aggregates as a read-only JSON API.
// Every request re-reads both spreadsheets.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fileandclaim/fcidash/internal/logging"
	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config controls the server runtime behavior.
type Config struct {
	Sources pipeline.Sources
	Addr    string
	Logger  *slog.Logger
	Load    pipeline.LoadFunc // pipeline.Load when nil
}

// Info is served at /v1/info.
type Info struct {
	StartedAt    time.Time `json:"started_at"`
	DealsFile    string    `json:"deals_file"`
	TrackingFile string    `json:"tracking_file"`
	Loads        int64     `json:"loads"`
	LoadErrors   int64     `json:"load_errors"`
	LastLoadAt   time.Time `json:"last_load_at,omitzero"`
	LastError    string    `json:"last_error,omitempty"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config
	log *slog.Logger

	mu         sync.RWMutex
	startedAt  time.Time
	loads      int64
	loadErrors int64
	lastLoadAt time.Time
	lastError  string
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8790"
	}
	if cfg.Load == nil {
		cfg.Load = pipeline.Load
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger,
		startedAt: time.Now(),
	}
}

// Handler returns the routed API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/report", s.handleReport)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/info", s.handleInfo)
		r.Get("/stages", s.handleStages)
		r.Get("/stages/{stage}", s.handleStage)
		r.Get("/engineers", s.handleEngineers)
		r.Get("/engineers/{engineer}", s.handleEngineer)
		r.Get("/status", s.handleStatuses)
		r.Get("/status/{display}", s.handleStatus)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	return r
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("listening", "addr", s.cfg.Addr,
		logging.FieldComponent, logging.ComponentHTTP)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// load reads a fresh snapshot and records the outcome for /v1/info.
func (s *Service) load(ctx context.Context) (*pipeline.LoadResult, error) {
	res, err := s.cfg.Load(ctx, s.cfg.Sources)

	s.mu.Lock()
	s.loads++
	s.lastLoadAt = time.Now()
	if err != nil {
		s.loadErrors++
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.log.ErrorContext(ctx, "load failed",
			logging.FieldComponent, logging.ComponentLoader,
			logging.FieldError, err)
		return nil, err
	}
	s.log.DebugContext(ctx, "loaded deals",
		logging.FieldComponent, logging.ComponentLoader,
		logging.FieldFile, s.cfg.Sources.DealsPath,
		logging.FieldRows, len(res.Deals),
		logging.FieldDuration, res.LoadTime.Milliseconds())
	s.log.DebugContext(ctx, "loaded file tracking",
		logging.FieldComponent, logging.ComponentLoader,
		logging.FieldFile, s.cfg.Sources.TrackingPath,
		logging.FieldRows, len(res.Tracking))
	return res, nil
}

func (s *Service) info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Info{
		StartedAt:    s.startedAt,
		DealsFile:    s.cfg.Sources.DealsPath,
		TrackingFile: s.cfg.Sources.TrackingPath,
		Loads:        s.loads,
		LoadErrors:   s.loadErrors,
		LastLoadAt:   s.lastLoadAt,
		LastError:    s.lastError,
	}
}
