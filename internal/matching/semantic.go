package matching

import (
	"context"

	"vigil/internal/screening/models"
	"vigil/internal/similarity"
)

// SemanticMatcher scores name pairs through an injected embedding-based
// similarity provider. It is only consulted when the lexical matcher did not
// already resolve an exact hit.
type SemanticMatcher struct {
	provider similarity.Provider
}

func NewSemanticMatcher(provider similarity.Provider) *SemanticMatcher {
	return &SemanticMatcher{provider: provider}
}

// Score returns the maximum similarity observed across the candidate's
// primary name and aliases against the record's primary name and aliases.
// The cartesian max deliberately favors catching one strong alias
// correspondence over averaging it away.
func (m *SemanticMatcher) Score(ctx context.Context, candidate models.Candidate, record models.WatchlistRecord) (float64, error) {
	recordNames := append([]string{record.Name}, record.Aliases...)

	best := 0.0
	for _, name := range append([]string{candidate.Name}, candidate.Aliases...) {
		if name == "" {
			continue
		}
		scores, err := m.provider.BatchSimilarity(ctx, name, recordNames)
		if err != nil {
			return 0, err
		}
		for _, s := range scores {
			if s > best {
				best = s
			}
		}
	}
	return best, nil
}
