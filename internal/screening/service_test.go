package screening

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"vigil/internal/matching"
	"vigil/internal/screening/models"
	"vigil/internal/similarity"
	"vigil/internal/watchlist"
)

type ScreeningServiceSuite struct {
	suite.Suite
	store   *watchlist.MemoryStore
	fake    *similarity.Fake
	service *Service
	ctx     context.Context
}

func (s *ScreeningServiceSuite) SetupTest() {
	s.store = watchlist.NewMemoryStore()
	s.store.Add(watchlist.SampleRecords()...)
	s.fake = similarity.NewFake()
	s.service = s.newService()
	s.ctx = context.Background()
}

func (s *ScreeningServiceSuite) newService(opts ...Option) *Service {
	lexical := matching.NewLexicalMatcher()
	evaluator := matching.NewEvaluator(
		lexical,
		matching.NewSemanticMatcher(s.fake),
		matching.NewFieldMatcher(lexical),
		nil,
	)
	svc, err := New(s.store, evaluator, matching.Thresholds{Fuzzy: 0.8, Semantic: 0.85}, opts...)
	s.Require().NoError(err)
	return svc
}

func TestScreeningServiceSuite(t *testing.T) {
	suite.Run(t, new(ScreeningServiceSuite))
}

func (s *ScreeningServiceSuite) candidate(name string) models.Candidate {
	return models.Candidate{Name: name, Type: models.EntityIndividual}
}

// TestExactHit verifies that an exact watchlist name yields a blocked result
// with maximum risk.
func (s *ScreeningServiceSuite) TestExactHit() {
	result, err := s.service.Screen(s.ctx, s.candidate("John Smith"))
	s.Require().NoError(err)

	s.Equal(models.DecisionBlock, result.Decision)
	s.InDelta(1.0, result.RiskScore, 1e-9)
	s.Require().NotEmpty(result.Findings)
	s.Equal(models.StrategyExact, result.Findings[0].Strategy)
	s.Equal(1.0, result.Findings[0].Confidence)
}

// TestAliasHit verifies aliases participate in exact matching.
func (s *ScreeningServiceSuite) TestAliasHit() {
	result, err := s.service.Screen(s.ctx, s.candidate("Johnny Smith"))
	s.Require().NoError(err)

	s.NotEqual(models.DecisionClear, result.Decision)
	s.NotEmpty(result.Findings)
}

// TestCleanCandidate verifies that an unrelated name clears with zero risk,
// zero findings, and full confidence.
func (s *ScreeningServiceSuite) TestCleanCandidate() {
	result, err := s.service.Screen(s.ctx, s.candidate("Alice Johnson"))
	s.Require().NoError(err)

	s.Equal(models.DecisionClear, result.Decision)
	s.Zero(result.RiskScore)
	s.Empty(result.Findings)
	s.Equal(1.0, result.Confidence)
}

// TestIdempotence verifies that screening the same candidate twice against
// the same snapshot produces identical scores and decisions.
func (s *ScreeningServiceSuite) TestIdempotence() {
	first, err := s.service.Screen(s.ctx, s.candidate("Jon Smith"))
	s.Require().NoError(err)
	second, err := s.service.Screen(s.ctx, s.candidate("Jon Smith"))
	s.Require().NoError(err)

	s.Equal(first.Decision, second.Decision)
	s.Equal(first.RiskScore, second.RiskScore)
	s.Equal(len(first.Findings), len(second.Findings))
	s.NotEqual(first.ID, second.ID)
}

// TestFindingsSorted verifies findings come back ordered by descending risk.
func (s *ScreeningServiceSuite) TestFindingsSorted() {
	result, err := s.service.Screen(s.ctx, s.candidate("John Smith"))
	s.Require().NoError(err)

	for i := 1; i < len(result.Findings); i++ {
		s.GreaterOrEqual(result.Findings[i-1].RiskScore, result.Findings[i].RiskScore)
	}
}

// TestValidation verifies malformed candidates are rejected before any
// matching runs.
func (s *ScreeningServiceSuite) TestValidation() {
	s.Run("empty name", func() {
		_, err := s.service.Screen(s.ctx, models.Candidate{Type: models.EntityIndividual})
		s.Require().Error(err)
	})

	s.Run("bad date of birth", func() {
		c := s.candidate("Some Name")
		c.DateOfBirth = "15-06-1975"
		_, err := s.service.Screen(s.ctx, c)
		s.Require().Error(err)
	})

	s.Run("unknown entity type", func() {
		_, err := s.service.Screen(s.ctx, models.Candidate{Name: "Some Name", Type: "vessel"})
		s.Require().Error(err)
	})
}

// TestSemanticFailureDegrades verifies that a broken similarity provider
// never fails the screening call; exact hits still land.
func (s *ScreeningServiceSuite) TestSemanticFailureDegrades() {
	s.fake.Err = errors.New("model backend down")

	result, err := s.service.Screen(s.ctx, s.candidate("John Smith"))
	s.Require().NoError(err)
	s.Equal(models.DecisionBlock, result.Decision)

	clean, err := s.service.Screen(s.ctx, s.candidate("Alice Johnson"))
	s.Require().NoError(err)
	s.Equal(models.DecisionClear, clean.Decision)
}

// TestThresholdOverride verifies the per-call override loosens acceptance for
// that call only.
func (s *ScreeningServiceSuite) TestThresholdOverride() {
	strict, err := s.service.Screen(s.ctx, s.candidate("Jo Smith"))
	s.Require().NoError(err)

	loose, err := s.service.Screen(s.ctx, s.candidate("Jo Smith"), WithThresholdOverride(0.3))
	s.Require().NoError(err)
	s.GreaterOrEqual(len(loose.Findings), len(strict.Findings))

	again, err := s.service.Screen(s.ctx, s.candidate("Jo Smith"))
	s.Require().NoError(err)
	s.Equal(len(strict.Findings), len(again.Findings))
}

// TestResultStoreFailureIsSwallowed verifies persistence is fire-and-forget.
func (s *ScreeningServiceSuite) TestResultStoreFailureIsSwallowed() {
	svc := s.newService(WithResultStore(failingResultStore{}))

	result, err := svc.Screen(s.ctx, s.candidate("John Smith"))
	s.Require().NoError(err)
	s.Equal(models.DecisionBlock, result.Decision)
}

type failingResultStore struct{}

func (failingResultStore) SaveScreening(context.Context, *models.ScreeningResult) error {
	return errors.New("database unavailable")
}

// TestClassifyBoundaries verifies the decision cutoffs are inclusive.
func TestClassifyBoundaries(t *testing.T) {
	th := DefaultDecisionThresholds

	for _, tc := range []struct {
		name       string
		risk       float64
		want       models.Decision
		confidence float64
	}{
		{"block at boundary", 0.9, models.DecisionBlock, 0.95},
		{"review at boundary", 0.7, models.DecisionReview, 0.85},
		{"review below block", 0.89, models.DecisionReview, 0.85},
		{"clear below review", 0.69, models.DecisionClear, 0.90},
	} {
		t.Run(tc.name, func(t *testing.T) {
			decision, confidence := Classify(tc.risk, true, th)
			if decision != tc.want {
				t.Fatalf("risk %.2f: got %s, want %s", tc.risk, decision, tc.want)
			}
			if confidence != tc.confidence {
				t.Fatalf("risk %.2f: got confidence %.2f, want %.2f", tc.risk, confidence, tc.confidence)
			}
		})
	}
}

// TestAggregateRisk verifies the risk-weighted aggregation.
func TestAggregateRisk(t *testing.T) {
	if got := AggregateRisk(nil); got != 0 {
		t.Fatalf("no findings: got %.2f, want 0", got)
	}

	findings := []models.MatchFinding{
		{RiskScore: 1.0},
		{RiskScore: 0.5},
	}
	// (1.0*1.0 + 0.5*0.5) / (1.0 + 0.5) = 1.25 / 1.5
	want := 1.25 / 1.5
	if got := AggregateRisk(findings); got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("got %.4f, want %.4f", got, want)
	}
}
