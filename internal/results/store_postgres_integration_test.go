//go:build integration

package results_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vigil/internal/results"
	"vigil/internal/screening/models"
	"vigil/pkg/testutil/containers"
)

type ResultsStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *results.PostgresStore
}

func TestResultsStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ResultsStoreSuite))
}

func (s *ResultsStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = results.NewPostgres(s.postgres.DB)
}

func (s *ResultsStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "screening_matches", "screening_results"))
}

func (s *ResultsStoreSuite) result(decision models.Decision) *models.ScreeningResult {
	return &models.ScreeningResult{
		ID:         uuid.NewString(),
		Candidate:  models.Candidate{Name: "Viktor Petrov", Type: models.EntityIndividual},
		RiskScore:  0.96,
		Decision:   decision,
		Confidence: 0.95,
		Latency:    12 * time.Millisecond,
		ScreenedAt: time.Now().UTC().Truncate(time.Millisecond),
		Findings: []models.MatchFinding{
			{
				RecordID:      1,
				RecordName:    "Viktor Petrov",
				ListName:      "OFAC SDN List",
				Source:        "OFAC",
				MatchedFields: []models.MatchedField{models.FieldName},
				Strategy:      models.StrategyExact,
				Confidence:    1.0,
				RiskScore:     1.0,
			},
		},
	}
}

// TestSaveAndRecent verifies a result and its findings persist atomically.
func (s *ResultsStoreSuite) TestSaveAndRecent() {
	ctx := context.Background()

	saved := s.result(models.DecisionBlock)
	s.Require().NoError(s.store.SaveScreening(ctx, saved))

	recent, err := s.store.RecentScreenings(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(saved.ID, recent[0].ID)
	s.Equal(models.DecisionBlock, recent[0].Decision)
	s.InDelta(0.96, recent[0].RiskScore, 1e-9)

	var matches int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM screening_matches WHERE screening_id = $1`, saved.ID).Scan(&matches))
	s.Equal(1, matches)
}

// TestRecentOrdering verifies newest results come first and limit applies.
func (s *ResultsStoreSuite) TestRecentOrdering() {
	ctx := context.Background()

	older := s.result(models.DecisionClear)
	older.ScreenedAt = time.Now().UTC().Add(-time.Hour)
	older.Findings = nil
	newer := s.result(models.DecisionReview)
	newer.Findings = nil

	s.Require().NoError(s.store.SaveScreening(ctx, older))
	s.Require().NoError(s.store.SaveScreening(ctx, newer))

	recent, err := s.store.RecentScreenings(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(newer.ID, recent[0].ID)
}

// TestDuplicateIDRollsBack verifies the transaction leaves no partial rows.
func (s *ResultsStoreSuite) TestDuplicateIDRollsBack() {
	ctx := context.Background()

	first := s.result(models.DecisionBlock)
	s.Require().NoError(s.store.SaveScreening(ctx, first))

	dup := s.result(models.DecisionBlock)
	dup.ID = first.ID
	s.Require().Error(s.store.SaveScreening(ctx, dup))

	var matches int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM screening_matches`).Scan(&matches))
	s.Equal(1, matches)
}
