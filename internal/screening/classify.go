package screening

import "vigil/internal/screening/models"

// DecisionThresholds classify an aggregate risk score. Values come from
// configuration and may differ per deployment.
type DecisionThresholds struct {
	Review float64 // inclusive lower bound for review
	Block  float64 // inclusive lower bound for block
}

// DefaultDecisionThresholds mirror the standard compliance posture.
var DefaultDecisionThresholds = DecisionThresholds{Review: 0.7, Block: 0.9}

// Classify maps an aggregate risk score to a decision and its confidence.
// This is pure domain logic: the decision is a deterministic, total function
// of the score with no hidden state.
func Classify(risk float64, hadFindings bool, th DecisionThresholds) (models.Decision, float64) {
	switch {
	case risk >= th.Block:
		return models.DecisionBlock, 0.95
	case risk >= th.Review:
		return models.DecisionReview, 0.85
	case !hadFindings:
		return models.DecisionClear, 1.0
	default:
		return models.DecisionClear, 0.90
	}
}

// AggregateRisk computes the findings' risk-contribution-weighted average of
// themselves: each finding's weight is its own risk contribution, so a single
// near-1.0 finding dominates a crowd of weak ones.
func AggregateRisk(findings []models.MatchFinding) float64 {
	var weightedSum, totalWeight float64
	for _, f := range findings {
		weightedSum += f.RiskScore * f.RiskScore
		totalWeight += f.RiskScore
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
