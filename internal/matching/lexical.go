package matching

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"vigil/internal/screening/models"
)

// Ratio weights for the combined lexical score: simple, partial, token-sort,
// token-set. They must sum to 1 so the combined score stays in [0,100].
const (
	weightSimple    = 0.30
	weightPartial   = 0.20
	weightTokenSort = 0.25
	weightTokenSet  = 0.25
)

// LexicalMatcher performs exact and fuzzy string comparison between candidate
// and watchlist names. It has no external dependencies and is safe for
// concurrent use.
type LexicalMatcher struct{}

func NewLexicalMatcher() *LexicalMatcher {
	return &LexicalMatcher{}
}

// WeightedRatio combines four classical similarity ratios into a single score
// in [0,100]. Empty inputs always score 0.
func (m *LexicalMatcher) WeightedRatio(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return 0
	}

	simple := float64(fuzzy.Ratio(a, b))
	partial := float64(fuzzy.PartialRatio(a, b))
	tokenSort := float64(fuzzy.TokenSortRatio(a, b))
	tokenSet := float64(fuzzy.TokenSetRatio(a, b))

	return weightSimple*simple +
		weightPartial*partial +
		weightTokenSort*tokenSort +
		weightTokenSet*tokenSet
}

// Score is WeightedRatio normalized to [0,1].
func (m *LexicalMatcher) Score(a, b string) float64 {
	return m.WeightedRatio(a, b) / 100
}

// ExactMatch reports whether the candidate and record share a name after
// case/whitespace normalization, cross-comparing both alias lists.
func (m *LexicalMatcher) ExactMatch(candidate models.Candidate, record models.WatchlistRecord) bool {
	candidateName := Normalize(candidate.Name)
	recordName := Normalize(record.Name)
	if candidateName == "" || recordName == "" {
		return false
	}
	if candidateName == recordName {
		return true
	}

	recordAliases := normalizeAll(record.Aliases)
	for _, alias := range normalizeAll(candidate.Aliases) {
		if alias == recordName || contains(recordAliases, alias) {
			return true
		}
	}
	for _, alias := range recordAliases {
		if alias == candidateName {
			return true
		}
	}
	return false
}

// FuzzyScore returns the best weighted ratio across the candidate's name
// variations against the record name, plus every candidate-alias/record-alias
// pair, in [0,1]. Variations cover reversed and initialed orderings so
// "Smith, John" scores against "John Smith".
func (m *LexicalMatcher) FuzzyScore(candidate models.Candidate, record models.WatchlistRecord) float64 {
	best := 0.0
	for _, variant := range Variations(candidate.Name) {
		if s := m.Score(variant, record.Name); s > best {
			best = s
		}
	}
	for _, ca := range candidate.Aliases {
		for _, ra := range record.Aliases {
			if s := m.Score(ca, ra); s > best {
				best = s
			}
		}
	}
	return best
}

func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if nn := Normalize(n); nn != "" {
			out = append(out, nn)
		}
	}
	return out
}
