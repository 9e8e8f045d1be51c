package similarity

import (
	"context"
	"strings"
)

// Fake is a deterministic in-process provider for tests and local runs
// without a model bundle. It scores token overlap (Jaccard), which mimics the
// shape of embedding similarity well enough for wiring tests: identical
// strings score 1, disjoint strings score 0.
type Fake struct {
	// Scores overrides the computed score for specific "a|b" pairs.
	Scores map[string]float64
	// Err, when set, is returned from every call.
	Err error
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Similarity(ctx context.Context, a, b string) (float64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	if f.Scores != nil {
		if s, ok := f.Scores[a+"|"+b]; ok {
			return s, nil
		}
	}
	return jaccard(a, b), nil
}

func (f *Fake) BatchSimilarity(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		s, err := f.Similarity(ctx, query, c)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

func jaccard(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	intersect := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			intersect++
		}
	}
	union := len(ta) + len(tb) - intersect
	return float64(intersect) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(s)) {
		set[t] = struct{}{}
	}
	return set
}
