package matching

import (
	"vigil/internal/screening/models"
)

// Risk contributions for secondary-attribute matches. A DOB or document match
// is strong corroboration but not conclusive on its own, hence < 1.0.
const (
	dobMatchScore      = 0.90
	passportMatchScore = 0.95
	nationalityWeight  = 0.70
)

// FieldMatcher compares secondary identity attributes when both sides carry a
// value for the attribute. Absence of any comparable field scores 0.
type FieldMatcher struct {
	lexical *LexicalMatcher
}

func NewFieldMatcher(lexical *LexicalMatcher) *FieldMatcher {
	return &FieldMatcher{lexical: lexical}
}

// Score returns the maximum of the computable sub-scores.
func (m *FieldMatcher) Score(candidate models.Candidate, record models.WatchlistRecord) float64 {
	best := 0.0

	if candidate.DateOfBirth != "" && record.DateOfBirth != "" &&
		candidate.DateOfBirth == record.DateOfBirth {
		best = max(best, dobMatchScore)
	}

	if candidate.Nationality != "" && record.Nationality != "" {
		best = max(best, m.lexical.Score(candidate.Nationality, record.Nationality)*nationalityWeight)
	}

	if candidate.PassportNumber != "" && record.PassportNumber != "" &&
		candidate.PassportNumber == record.PassportNumber {
		best = max(best, passportMatchScore)
	}

	return best
}

// MatchedFields lists the attributes that matched exactly, used for audit on
// findings regardless of which strategy produced them.
func (m *FieldMatcher) MatchedFields(candidate models.Candidate, record models.WatchlistRecord) []models.MatchedField {
	var fields []models.MatchedField
	if Normalize(candidate.Name) == Normalize(record.Name) {
		fields = append(fields, models.FieldName)
	}
	if candidate.DateOfBirth != "" && candidate.DateOfBirth == record.DateOfBirth {
		fields = append(fields, models.FieldDateOfBirth)
	}
	if candidate.Nationality != "" && record.Nationality != "" &&
		Normalize(candidate.Nationality) == Normalize(record.Nationality) {
		fields = append(fields, models.FieldNationality)
	}
	if candidate.PassportNumber != "" && candidate.PassportNumber == record.PassportNumber {
		fields = append(fields, models.FieldPassportNumber)
	}
	return fields
}
