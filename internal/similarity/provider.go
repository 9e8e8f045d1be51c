// Package similarity defines the semantic similarity port consumed by the
// matching layer, plus local implementations of it. Scores are cosine-style
// similarities in [0,1] and must be deterministic for fixed model weights.
package similarity

import "context"

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks Provider

// Provider computes semantic similarity between name strings, typically
// backed by a sentence-embedding model.
type Provider interface {
	// Similarity returns a score in [0,1] for one pair of strings.
	Similarity(ctx context.Context, a, b string) (float64, error)

	// BatchSimilarity scores one query against many candidates in a single
	// call. The result is ordered identically to the input candidates.
	BatchSimilarity(ctx context.Context, query string, candidates []string) ([]float64, error)
}
