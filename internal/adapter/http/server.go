package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flood-risk-engine/internal/domain"
	"github.com/couchcryptid/flood-risk-engine/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Assessor runs a risk assessment for a feature bundle. Implemented by
// domain.Engine.
type Assessor interface {
	Assess(b domain.FeatureBundle) (domain.RiskAssessment, error)
}

// Server exposes health, readiness, metrics, and on-demand assessment
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	assessor   Assessor
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /v1/assessments routes.
func NewServer(addr string, ready ReadinessChecker, assessor Assessor, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/assessments", s.handleAssess)

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

// handleAssess runs a synchronous assessment for ad-hoc requests. The Kafka
// pipeline remains the primary intake; this endpoint serves dashboards and
// operator tooling.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var bundle domain.FeatureBundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	assessment, err := s.assessor.Assess(bundle)
	if err != nil {
		status := statusForAssessError(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("assessment failed", "error", err)
		}
		writeError(w, status, err.Error())
		return
	}

	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	s.metrics.AssessmentsTotal.WithLabelValues(string(assessment.Level)).Inc()
	for src, f := range assessment.Factors {
		if f.Unavailable {
			s.metrics.SourcesDegraded.WithLabelValues(string(src)).Inc()
		}
	}

	writeJSON(w, http.StatusOK, assessment)
}

// statusForAssessError maps domain errors to HTTP statuses. Bad input is the
// caller's fault; everything else is ours.
func statusForAssessError(err error) int {
	var sensErr *domain.InvalidSensitivityError
	switch {
	case errors.Is(err, domain.ErrEmptyBundle),
		errors.As(err, &sensErr),
		errors.Is(err, domain.ErrInvalidBundle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
