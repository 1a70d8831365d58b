// Package server exposes audit reports over HTTP.
//
// The server keeps the most recent report in memory and optionally
// persists every scan through a store backend. Scans are triggered via
// the API, so a long-lived instance can re-audit a tree on demand.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/errors"
	"github.com/licaudit/licaudit/pkg/store"
)

// Scanner produces a fresh report on demand.
type Scanner func(ctx context.Context) (audit.Report, error)

// Config holds the server dependencies.
type Config struct {
	Addr    string
	Logger  *log.Logger
	Scanner Scanner
	// Store persists scan results when set. The in-memory latest
	// report works without it.
	Store store.Store
}

// Server serves audit reports over HTTP.
type Server struct {
	cfg    Config
	router chi.Router

	mu     sync.RWMutex
	latest *audit.Report
}

// New creates a server with its routes registered.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Post("/scan", s.handleScan)
	})

	s.router = r
	return s
}

// SetLatest seeds the in-memory report, used when the server starts
// right after a scan.
func (s *Server) SetLatest(report audit.Report) {
	s.mu.Lock()
	s.latest = &report
	s.mu.Unlock()
}

// Handler returns the HTTP handler for testing and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReport returns the most recent report, preferring the
// in-memory copy and falling back to the store.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest != nil {
		writeJSON(w, http.StatusOK, latest)
		return
	}

	if s.cfg.Store != nil {
		entry, ok, err := s.cfg.Store.Latest(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		if ok {
			writeJSON(w, http.StatusOK, entry.Report)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"error": "no report available"})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Scanner == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "scanning not configured"})
		return
	}

	report, err := s.cfg.Scanner(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.SetLatest(report)
	if s.cfg.Store != nil {
		if _, err := s.cfg.Store.Save(r.Context(), report); err != nil {
			s.cfg.Logger.Warn("persisting report failed", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, report.Summary)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.cfg.Logger.Error("request failed", "err", err)
	body := map[string]string{"error": errors.UserMessage(err)}
	if code := errors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
