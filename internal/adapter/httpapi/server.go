// Package httpapi exposes the operational endpoints: liveness, readiness,
// status, and Prometheus metrics. The heatmap itself is served
// programmatically; a presentation layer in front of this service owns the
// public routes.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NayandG07/misinformation-heatmap-sub001/internal/storage"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// StatusSource provides the numbers behind /statusz.
type StatusSource interface {
	Stats(ctx context.Context) (storage.Stats, error)
}

// Server exposes the operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	status     StatusSource
}

// NewServer creates an HTTP server with /healthz, /readyz, /statusz, and
// /metrics routes. status may be nil, which disables /statusz.
func NewServer(addr string, ready ReadinessChecker, status StatusSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		status: status,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	if status != nil {
		mux.HandleFunc("GET /statusz", s.handleStatus)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// statusResponse is the /statusz payload: how much the store holds and how
// it is distributed. Intended for humans and dashboards, not for the UI.
type statusResponse struct {
	TotalEvents    int            `json:"total_events"`
	EventsByRegion map[string]int `json:"events_by_region"`
	EventsBySource map[string]int `json:"events_by_source"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := s.status.Stats(ctx)
	if err != nil {
		s.logger.Error("status query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
		return
	}

	resp := statusResponse{
		TotalEvents:    stats.TotalEvents,
		EventsByRegion: stats.EventsByRegion,
		EventsBySource: stats.EventsBySource,
	}
	if !stats.OldestEvent.IsZero() {
		resp.OldestEvent = &stats.OldestEvent
		resp.NewestEvent = &stats.NewestEvent
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort operational response
}
