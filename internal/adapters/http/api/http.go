// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/readability/internal/domain/model"
	"github.com/okian/readability/pkg/metrics"
)

// Analyzer scores a single document. *service.Service satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, doc model.Document) (model.Report, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	analyzeHandler *AnalyzeHandler
	metrics        *metrics.Manager
}

// NewServer creates a new API server with all handlers. Request bodies on
// /analyze are limited to maxBodyBytes. Requests are recorded on m, which
// defaults to the process-wide manager when nil.
func NewServer(analyzer Analyzer, statsProvider StatsProvider, maxBodyBytes int64, m *metrics.Manager) *Server {
	if m == nil {
		m = metrics.Default()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		analyzeHandler: NewAnalyzeHandler(analyzer, maxBodyBytes),
		metrics:        m,
	}
}

// Register attaches all HTTP routes to mux. /metrics is only served while
// the manager is enabled.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.metrics, s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.metrics, s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.metrics, s.analyzeHandler.HandleAnalyze, "analyze"))
	if s.metrics.Enabled() {
		mux.Handle("/metrics", NewMetricsHandler(s.metrics))
	}
}

// analyzeRequest is the JSON body of POST /analyze.
type analyzeRequest struct {
	Text *string `json:"text"`
	Name string  `json:"name"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
