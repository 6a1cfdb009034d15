// Package service composes text statistics and scoring into document reports
// and is the single entry point used by the CLI and HTTP adapters.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/readability/internal/domain/model"
	"github.com/okian/readability/internal/domain/scoring"
	"github.com/okian/readability/internal/domain/textstats"
	"github.com/okian/readability/pkg/logger"
	"github.com/okian/readability/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Service analyzes documents. It holds no per-document state and is safe for
// concurrent use.
type Service struct {
	workerCount int
	logger      logger.Logger
	metrics     *metrics.Manager
	now         func() time.Time

	analyzed atomic.Int64
	failed   atomic.Int64

	mu             sync.Mutex
	failuresByKind map[string]int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount bounds how many documents AnalyzeAll scores at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records on m instead of the process-wide manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service. Without WithLogger the global logger is used, so
// logger.Init must have been called.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU(),
		metrics:        metrics.Default(),
		now:            time.Now,
		failuresByKind: make(map[string]int64),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Analyze computes the metrics, the four scores and the average age of doc.
// Core failures are returned wrapped; errors.Is still matches
// textstats.ErrDegenerateInput and scoring.ErrOutOfRangeScore.
func (s *Service) Analyze(ctx context.Context, doc model.Document) (model.Report, error) {
	if err := ctx.Err(); err != nil {
		return model.Report{}, err
	}

	done := s.metrics.AnalysisStarted()
	defer done()
	start := time.Now()

	report, err := analyze(doc)
	if err != nil {
		s.recordFailure(ctx, doc, err)
		return model.Report{}, fmt.Errorf("analyze %s: %w", displayName(doc), err)
	}
	report.AnalyzedAt = s.now().UTC()

	elapsedMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	s.analyzed.Add(1)
	s.metrics.RecordDocumentAnalyzed(report.Metrics.Words, report.AverageAge, elapsedMs)
	for _, r := range report.Scores {
		s.metrics.RecordScore(r.Kind.String(), r.Score)
	}

	s.logger.Debug(ctx, "document analyzed",
		logger.String("document", displayName(doc)),
		logger.Int("words", report.Metrics.Words),
		logger.Int("sentences", report.Metrics.Sentences),
		logger.Float64("averageAge", report.AverageAge),
		logger.Float64("elapsedMs", elapsedMs),
	)
	return report, nil
}

func analyze(doc model.Document) (model.Report, error) {
	m, err := textstats.Compute(doc.Text)
	if err != nil {
		return model.Report{}, err
	}
	results, err := scoring.ComputeAll(m)
	if err != nil {
		return model.Report{}, err
	}
	return model.Report{
		DocumentID: doc.ID,
		Name:       doc.Name,
		Metrics:    m,
		Scores:     results,
		AverageAge: scoring.Average(results),
	}, nil
}

// Outcome pairs a document with its report or the error that prevented one.
type Outcome struct {
	Document model.Document
	Report   model.Report
	Err      error
}

// AnalyzeAll analyzes docs with at most WithWorkerCount running at once.
// Outcomes are returned in input order. A failing document does not stop the
// others; only cancellation of ctx aborts the batch and is returned as error.
func (s *Service) AnalyzeAll(ctx context.Context, docs []model.Document) ([]Outcome, error) {
	outcomes := make([]Outcome, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			report, err := s.Analyze(gctx, doc)
			if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
				return err
			}
			outcomes[i] = Outcome{Document: doc, Report: report, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Service) recordFailure(ctx context.Context, doc model.Document, err error) {
	kind := ErrorKind(err)
	s.failed.Add(1)
	s.mu.Lock()
	s.failuresByKind[kind]++
	s.mu.Unlock()

	if mErr := s.metrics.RecordAnalysisError(kind); mErr != nil {
		s.logger.Error(ctx, "failed to record analysis error", logger.Error(mErr))
	}
	s.logger.Warn(ctx, "document analysis failed",
		logger.String("document", displayName(doc)),
		logger.String("kind", kind),
		logger.Error(err),
	)
}

// ErrorKind classifies an analysis error for metrics and API responses.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, textstats.ErrDegenerateInput):
		return metrics.ErrorKindDegenerateInput
	case errors.Is(err, scoring.ErrOutOfRangeScore):
		return metrics.ErrorKindOutOfRangeScore
	default:
		return metrics.ErrorKindInternal
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	byKind := make(map[string]int64, len(s.failuresByKind))
	for k, v := range s.failuresByKind {
		byKind[k] = v
	}
	s.mu.Unlock()

	return map[string]interface{}{
		"workerCount":       s.workerCount,
		"documentsAnalyzed": s.analyzed.Load(),
		"documentsFailed":   s.failed.Load(),
		"failuresByKind":    byKind,
	}
}

func displayName(doc model.Document) string {
	if doc.Name != "" {
		return doc.Name
	}
	return doc.ID
}
