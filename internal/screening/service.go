// Package screening implements the matching and decision engine: it applies
// every matching strategy to one candidate against the active watchlist and
// classifies the aggregate risk into an auditable decision.
package screening

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vigil/internal/matching"
	"vigil/internal/screening/metrics"
	"vigil/internal/screening/models"
	"vigil/internal/watchlist"
	dErrors "vigil/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ResultStore

// ResultStore persists screening results. Persistence is fire-and-forget:
// failures are logged, never surfaced to the screening caller.
type ResultStore interface {
	SaveScreening(ctx context.Context, result *models.ScreeningResult) error
}

// Service is the screening engine. Construct it once with its dependencies;
// it is safe for concurrent use.
type Service struct {
	watchlist  watchlist.Store
	evaluator  *matching.Evaluator
	thresholds matching.Thresholds
	decision   DecisionThresholds
	results    ResultStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithResultStore(store ResultStore) Option {
	return func(s *Service) { s.results = store }
}

func WithDecisionThresholds(th DecisionThresholds) Option {
	return func(s *Service) { s.decision = th }
}

func New(store watchlist.Store, evaluator *matching.Evaluator, thresholds matching.Thresholds, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("watchlist store is required")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}

	svc := &Service{
		watchlist:  store,
		evaluator:  evaluator,
		thresholds: thresholds,
		decision:   DefaultDecisionThresholds,
		tracer:     otel.Tracer("vigil/screening"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ScreenOption adjusts a single screening call.
type ScreenOption func(*matching.Thresholds)

// WithThresholdOverride replaces both the fuzzy and semantic acceptance
// thresholds for this call only.
func WithThresholdOverride(threshold float64) ScreenOption {
	return func(th *matching.Thresholds) {
		th.Fuzzy = threshold
		th.Semantic = threshold
	}
}

// Screen evaluates one candidate against every active watchlist record and
// returns an immutable result. Screening the same candidate twice against the
// same snapshot yields identical findings and score.
func (s *Service) Screen(ctx context.Context, candidate models.Candidate, opts ...ScreenOption) (*models.ScreeningResult, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "screening.Screen",
		trace.WithAttributes(attribute.String("candidate.type", string(candidate.Type))),
	)
	defer span.End()

	start := time.Now()

	thresholds := s.thresholds
	for _, opt := range opts {
		opt(&thresholds)
	}

	records, err := s.watchlist.ActiveRecords(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "load watchlist snapshot")
	}

	findings := s.collectFindings(ctx, candidate, records, thresholds)
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].RiskScore > findings[j].RiskScore
	})

	risk := AggregateRisk(findings)
	decision, confidence := Classify(risk, len(findings) > 0, s.decision)

	result := &models.ScreeningResult{
		ID:         uuid.NewString(),
		Candidate:  candidate,
		Findings:   findings,
		RiskScore:  risk,
		Decision:   decision,
		Confidence: confidence,
		Latency:    time.Since(start),
		ScreenedAt: start,
	}

	span.SetAttributes(
		attribute.Float64("screening.risk_score", risk),
		attribute.String("screening.decision", string(decision)),
		attribute.Int("screening.findings", len(findings)),
	)

	s.metrics.ObserveScreenLatency(result.Latency)
	s.metrics.IncrementDecision(string(decision))
	s.metrics.ObserveFindings(len(findings))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "screening completed",
			"screening_id", result.ID,
			"decision", decision,
			"risk_score", risk,
			"findings", len(findings),
			"latency_ms", result.Latency.Milliseconds(),
		)
	}

	s.persist(ctx, result)

	return result, nil
}

// collectFindings runs the entry evaluator across the snapshot. A malformed
// record or a failed strategy affects only that record; the rest of the
// snapshot is still evaluated.
func (s *Service) collectFindings(ctx context.Context, candidate models.Candidate, records []models.WatchlistRecord, thresholds matching.Thresholds) []models.MatchFinding {
	var findings []models.MatchFinding
	for _, record := range records {
		if record.Name == "" {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "skipping watchlist record without a name", "record_id", record.ID)
			}
			continue
		}
		finding, ok := s.evaluator.Evaluate(ctx, candidate, record, thresholds)
		if !ok {
			continue
		}
		s.metrics.IncrementStrategy(string(finding.Strategy))
		findings = append(findings, *finding)
	}
	return findings
}

func (s *Service) persist(ctx context.Context, result *models.ScreeningResult) {
	if s.results == nil {
		return
	}
	if err := s.results.SaveScreening(ctx, result); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to persist screening result",
			"screening_id", result.ID,
			"error", err,
		)
	}
}
