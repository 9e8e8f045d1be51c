// Package payments implements the streaming payment screening pipeline:
// consume payment events, screen both parties concurrently, and publish
// exactly one screening outcome per payment.
package payments

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"vigil/internal/payments/metrics"
	"vigil/internal/payments/models"
	"vigil/internal/screening"
	smodels "vigil/internal/screening/models"
)

//go:generate mockgen -source=orchestrator.go -destination=mocks/mocks.go -package=mocks Screener,Publisher

// Screener screens one candidate. Satisfied by the screening service.
type Screener interface {
	Screen(ctx context.Context, candidate smodels.Candidate, opts ...screening.ScreenOption) (*smodels.ScreeningResult, error)
}

// Publisher delivers one screening outcome downstream.
type Publisher interface {
	PublishOutcome(ctx context.Context, outcome *models.ScreeningOutcome) error
}

// Orchestrator screens both parties of each payment and publishes the
// combined outcome. A screening failure never drops a payment silently: the
// payment is published blocked with an error status instead.
type Orchestrator struct {
	screener  Screener
	publisher Publisher
	stats     *Stats
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

const defaultScreenTimeout = 10 * time.Second

func NewOrchestrator(screener Screener, publisher Publisher, stats *Stats, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		screener:  screener,
		publisher: publisher,
		stats:     stats,
		timeout:   defaultScreenTimeout,
		tracer:    otel.Tracer("vigil/payments"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process screens one payment end to end and publishes exactly one outcome.
// The returned outcome is what was published. Publish failures are logged and
// counted but do not fail the call; the consumer still commits the offset.
func (o *Orchestrator) Process(ctx context.Context, event models.PaymentEvent) *models.ScreeningOutcome {
	ctx, span := o.tracer.Start(ctx, "payments.Process",
		trace.WithAttributes(attribute.String("payment.id", event.PaymentID)),
	)
	defer span.End()

	start := time.Now()

	if o.logger != nil {
		o.logger.DebugContext(ctx, "screening payment parties",
			"payment_id", event.PaymentID,
			"status", models.StatusScreening,
		)
	}

	outcome := o.screenParties(ctx, event)
	outcome.LatencyMS = time.Since(start).Milliseconds()
	outcome.ScreenedAt = start
	outcome.Metadata = event.Metadata

	o.stats.Record(outcome.Status, time.Since(start))
	o.metrics.IncrementPayment(string(outcome.Status))
	o.metrics.ObservePipelineLatency(time.Since(start))

	if err := o.publisher.PublishOutcome(ctx, outcome); err != nil {
		o.metrics.IncrementPublishFailure()
		if o.logger != nil {
			o.logger.ErrorContext(ctx, "failed to publish screening outcome",
				"payment_id", event.PaymentID,
				"error", err,
			)
		}
	}
	return outcome
}

// screenParties runs both screenings concurrently under a shared deadline.
// Any failure fails closed: the whole payment is blocked.
func (o *Orchestrator) screenParties(ctx context.Context, event models.PaymentEvent) *models.ScreeningOutcome {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var sender, recipient *smodels.ScreeningResult

	g.Go(func() error {
		res, err := o.screener.Screen(ctx, partyCandidate(event.Sender))
		if err != nil {
			return err
		}
		sender = res
		return nil
	})
	g.Go(func() error {
		res, err := o.screener.Screen(ctx, partyCandidate(event.Recipient))
		if err != nil {
			return err
		}
		recipient = res
		return nil
	})

	if err := g.Wait(); err != nil {
		if o.logger != nil {
			o.logger.ErrorContext(ctx, "payment screening failed, blocking payment",
				"payment_id", event.PaymentID,
				"error", err,
			)
		}
		return &models.ScreeningOutcome{
			PaymentID:     event.PaymentID,
			TransactionID: event.TransactionID,
			Status:        models.StatusError,
			Sender:        models.PartyResult{Name: event.Sender.Name},
			Recipient:     models.PartyResult{Name: event.Recipient.Name},
			CombinedRisk:  1.0,
			Decision:      smodels.DecisionBlock,
			Error:         err.Error(),
		}
	}

	combined := sender.RiskScore
	if recipient.RiskScore > combined {
		combined = recipient.RiskScore
	}
	decision := worseDecision(sender.Decision, recipient.Decision)

	return &models.ScreeningOutcome{
		PaymentID:     event.PaymentID,
		TransactionID: event.TransactionID,
		Status:        statusFor(decision),
		Sender:        partyResult(event.Sender, sender),
		Recipient:     partyResult(event.Recipient, recipient),
		CombinedRisk:  combined,
		Decision:      decision,
	}
}

func partyCandidate(p models.Party) smodels.Candidate {
	return smodels.Candidate{
		Name:        p.Name,
		Nationality: p.Country,
		Type:        smodels.EntityIndividual,
	}
}

func partyResult(p models.Party, res *smodels.ScreeningResult) models.PartyResult {
	return models.PartyResult{
		Name:       p.Name,
		RiskScore:  res.RiskScore,
		Decision:   res.Decision,
		Confidence: res.Confidence,
		Findings:   res.Findings,
	}
}

var decisionRank = map[smodels.Decision]int{
	smodels.DecisionClear:  0,
	smodels.DecisionReview: 1,
	smodels.DecisionBlock:  2,
}

func worseDecision(a, b smodels.Decision) smodels.Decision {
	if decisionRank[b] > decisionRank[a] {
		return b
	}
	return a
}

func statusFor(d smodels.Decision) models.Status {
	switch d {
	case smodels.DecisionBlock:
		return models.StatusBlocked
	case smodels.DecisionReview:
		return models.StatusReview
	default:
		return models.StatusCleared
	}
}
