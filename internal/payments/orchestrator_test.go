package payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vigil/internal/payments/models"
	"vigil/internal/screening"
	smodels "vigil/internal/screening/models"
)

type stubScreener struct {
	mu      sync.Mutex
	results map[string]*smodels.ScreeningResult
	errs    map[string]error
	delay   time.Duration
	calls   []string
}

func newStubScreener() *stubScreener {
	return &stubScreener{
		results: make(map[string]*smodels.ScreeningResult),
		errs:    make(map[string]error),
	}
}

func (s *stubScreener) Screen(ctx context.Context, candidate smodels.Candidate, _ ...screening.ScreenOption) (*smodels.ScreeningResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, candidate.Name)
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := s.errs[candidate.Name]; err != nil {
		return nil, err
	}
	if res, ok := s.results[candidate.Name]; ok {
		return res, nil
	}
	return &smodels.ScreeningResult{
		Candidate:  candidate,
		Decision:   smodels.DecisionClear,
		Confidence: 1.0,
	}, nil
}

func (s *stubScreener) setResult(name string, risk float64, decision smodels.Decision) {
	s.results[name] = &smodels.ScreeningResult{
		Candidate: smodels.Candidate{Name: name},
		RiskScore: risk,
		Decision:  decision,
	}
}

type capturePublisher struct {
	mu       sync.Mutex
	outcomes []*models.ScreeningOutcome
	err      error
}

func (p *capturePublisher) PublishOutcome(ctx context.Context, outcome *models.ScreeningOutcome) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outcomes = append(p.outcomes, outcome)
	return p.err
}

func (p *capturePublisher) published() []*models.ScreeningOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*models.ScreeningOutcome(nil), p.outcomes...)
}

type OrchestratorSuite struct {
	suite.Suite
	screener  *stubScreener
	publisher *capturePublisher
	stats     *Stats
	ctx       context.Context
}

func (s *OrchestratorSuite) SetupTest() {
	s.screener = newStubScreener()
	s.publisher = &capturePublisher{}
	s.stats = NewStats(10)
	s.ctx = context.Background()
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) newOrchestrator(opts ...Option) *Orchestrator {
	return NewOrchestrator(s.screener, s.publisher, s.stats, opts...)
}

func (s *OrchestratorSuite) event() models.PaymentEvent {
	return models.PaymentEvent{
		PaymentID:     "pay-001",
		TransactionID: "txn-9001",
		Sender:        models.Party{Name: "Alice Johnson"},
		Recipient:     models.Party{Name: "Bob Brown"},
		Amount:        250.00,
		Currency:      "EUR",
		Timestamp:     time.Now(),
	}
}

// TestCombinedRiskIsMax verifies the combined score takes the riskier party,
// never an average.
func (s *OrchestratorSuite) TestCombinedRiskIsMax() {
	s.screener.setResult("Alice Johnson", 0.1, smodels.DecisionClear)
	s.screener.setResult("Bob Brown", 0.95, smodels.DecisionBlock)

	outcome := s.newOrchestrator().Process(s.ctx, s.event())

	s.Equal(0.95, outcome.CombinedRisk)
	s.Equal(smodels.DecisionBlock, outcome.Decision)
	s.Equal(models.StatusBlocked, outcome.Status)
}

// TestBothPartiesScreened verifies both sides are always screened.
func (s *OrchestratorSuite) TestBothPartiesScreened() {
	s.newOrchestrator().Process(s.ctx, s.event())

	s.ElementsMatch([]string{"Alice Johnson", "Bob Brown"}, s.screener.calls)
}

// TestCleanPaymentClears verifies two clean parties clear the payment.
func (s *OrchestratorSuite) TestCleanPaymentClears() {
	outcome := s.newOrchestrator().Process(s.ctx, s.event())

	s.Equal(models.StatusCleared, outcome.Status)
	s.Equal(smodels.DecisionClear, outcome.Decision)
	s.Zero(outcome.CombinedRisk)
}

// TestReviewOutranksClear verifies a review on either side marks the payment.
func (s *OrchestratorSuite) TestReviewOutranksClear() {
	s.screener.setResult("Alice Johnson", 0.75, smodels.DecisionReview)

	outcome := s.newOrchestrator().Process(s.ctx, s.event())

	s.Equal(models.StatusReview, outcome.Status)
	s.Equal(smodels.DecisionReview, outcome.Decision)
}

// TestFailClosed verifies a screening failure on one party blocks the whole
// payment with an error status and maximum risk.
func (s *OrchestratorSuite) TestFailClosed() {
	s.screener.errs["Bob Brown"] = errors.New("watchlist unavailable")

	outcome := s.newOrchestrator().Process(s.ctx, s.event())

	s.Equal(models.StatusError, outcome.Status)
	s.Equal(smodels.DecisionBlock, outcome.Decision)
	s.Equal(1.0, outcome.CombinedRisk)
	s.Contains(outcome.Error, "watchlist unavailable")
}

// TestTimeoutFailsClosed verifies a slow screen hits the deadline and blocks.
func (s *OrchestratorSuite) TestTimeoutFailsClosed() {
	s.screener.delay = 200 * time.Millisecond

	outcome := s.newOrchestrator(WithTimeout(20 * time.Millisecond)).Process(s.ctx, s.event())

	s.Equal(models.StatusError, outcome.Status)
	s.Equal(smodels.DecisionBlock, outcome.Decision)
	s.Equal(1.0, outcome.CombinedRisk)
}

// TestExactlyOnePublish verifies each processed payment publishes exactly one
// outcome, on success and on failure alike.
func (s *OrchestratorSuite) TestExactlyOnePublish() {
	orch := s.newOrchestrator()

	orch.Process(s.ctx, s.event())
	s.Len(s.publisher.published(), 1)

	s.screener.errs["Bob Brown"] = errors.New("boom")
	orch.Process(s.ctx, s.event())
	s.Len(s.publisher.published(), 2)
}

// TestPublishFailureDoesNotPanic verifies a publish failure is absorbed; the
// outcome is still returned and counted.
func (s *OrchestratorSuite) TestPublishFailureDoesNotPanic() {
	s.publisher.err = errors.New("broker down")

	outcome := s.newOrchestrator().Process(s.ctx, s.event())

	s.NotNil(outcome)
	s.Equal(models.StatusCleared, outcome.Status)
	s.Equal(uint64(1), s.stats.Snapshot().Total)
}

// TestTransactionIDCarried verifies the transaction identifier reaches the
// outcome on the success and failure paths alike, so downstream consumers can
// correlate results.
func (s *OrchestratorSuite) TestTransactionIDCarried() {
	orch := s.newOrchestrator()

	outcome := orch.Process(s.ctx, s.event())
	s.Equal("txn-9001", outcome.TransactionID)

	s.screener.errs["Bob Brown"] = errors.New("watchlist unavailable")
	outcome = orch.Process(s.ctx, s.event())
	s.Equal(models.StatusError, outcome.Status)
	s.Equal("txn-9001", outcome.TransactionID)
}

// TestMetadataPassthrough verifies inbound metadata is carried to the outcome
// untouched.
func (s *OrchestratorSuite) TestMetadataPassthrough() {
	event := s.event()
	event.Metadata = []byte(`{"batch":"b-7","channel":"swift"}`)

	outcome := s.newOrchestrator().Process(s.ctx, event)

	s.JSONEq(`{"batch":"b-7","channel":"swift"}`, string(outcome.Metadata))
}

// TestStatsRecorded verifies counters and the latency window advance.
func (s *OrchestratorSuite) TestStatsRecorded() {
	orch := s.newOrchestrator()
	orch.Process(s.ctx, s.event())
	orch.Process(s.ctx, s.event())

	snap := s.stats.Snapshot()
	s.Equal(uint64(2), snap.Total)
	s.Equal(uint64(2), snap.ByStatus[models.StatusCleared])
	s.Equal(2, snap.LatencySamples)
}
