package matching

import (
	"context"
	"log/slog"

	"vigil/internal/screening/models"
)

// Thresholds are the acceptance cutoffs for the non-exact strategies. They
// come from configuration and may be overridden per screening call.
type Thresholds struct {
	Fuzzy    float64
	Semantic float64
}

// strategyOutcome carries either a score or a failure for one strategy.
// Failures are aggregated explicitly instead of aborting the record.
type strategyOutcome struct {
	score float64
	err   error
}

// Evaluator runs the matching strategies against one (candidate, record) pair
// in fixed priority order: cheap lexical checks before the semantic call, and
// an exact hit never needs semantic confirmation.
type Evaluator struct {
	lexical  *LexicalMatcher
	semantic *SemanticMatcher
	fields   *FieldMatcher
	logger   *slog.Logger
}

func NewEvaluator(lexical *LexicalMatcher, semantic *SemanticMatcher, fields *FieldMatcher, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		lexical:  lexical,
		semantic: semantic,
		fields:   fields,
		logger:   logger,
	}
}

// Evaluate returns at most one finding for the pair: the first strategy whose
// score clears its threshold wins. A strategy failure counts as a zero score
// for that strategy only; evaluation continues with the remaining strategies.
func (e *Evaluator) Evaluate(ctx context.Context, candidate models.Candidate, record models.WatchlistRecord, th Thresholds) (*models.MatchFinding, bool) {
	if e.lexical.ExactMatch(candidate, record) {
		return e.newFinding(candidate, record, models.StrategyExact, 1.0), true
	}

	if fuzzy := e.lexical.FuzzyScore(candidate, record); fuzzy >= th.Fuzzy {
		return e.newFinding(candidate, record, models.StrategyFuzzy, fuzzy), true
	}

	semantic := e.semanticOutcome(ctx, candidate, record)
	if semantic.score >= th.Semantic {
		return e.newFinding(candidate, record, models.StrategySemantic, semantic.score), true
	}

	// Field-only matches are not name-based; they report under the fuzzy tag.
	if fieldScore := e.fields.Score(candidate, record); fieldScore >= th.Semantic {
		return e.newFinding(candidate, record, models.StrategyFuzzy, fieldScore), true
	}

	return nil, false
}

func (e *Evaluator) semanticOutcome(ctx context.Context, candidate models.Candidate, record models.WatchlistRecord) strategyOutcome {
	score, err := e.semantic.Score(ctx, candidate, record)
	if err != nil {
		if e.logger != nil {
			e.logger.WarnContext(ctx, "semantic similarity unavailable, scoring 0",
				"record_id", record.ID,
				"error", err,
			)
		}
		return strategyOutcome{err: err}
	}
	return strategyOutcome{score: score}
}

func (e *Evaluator) newFinding(candidate models.Candidate, record models.WatchlistRecord, strategy models.Strategy, confidence float64) *models.MatchFinding {
	return &models.MatchFinding{
		RecordID:      record.ID,
		RecordName:    record.Name,
		ListName:      record.ListName,
		Source:        record.Source,
		MatchedFields: e.fields.MatchedFields(candidate, record),
		Strategy:      strategy,
		Confidence:    confidence,
		RiskScore:     confidence,
		Details: models.MatchDetails{
			DesignationDate: record.DesignationDate,
			Reason:          record.Reason,
			Country:         record.Country,
			EntityType:      string(record.Type),
		},
	}
}
