package similarity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeSimilarity(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	t.Run("identical strings score 1", func(t *testing.T) {
		s, err := f.Similarity(ctx, "john smith", "John Smith")
		require.NoError(t, err)
		assert.Equal(t, 1.0, s)
	})

	t.Run("disjoint strings score 0", func(t *testing.T) {
		s, err := f.Similarity(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.Zero(t, s)
	})

	t.Run("partial overlap scores between", func(t *testing.T) {
		s, err := f.Similarity(ctx, "john smith", "john doe")
		require.NoError(t, err)
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, 1.0)
	})

	t.Run("override wins", func(t *testing.T) {
		f := &Fake{Scores: map[string]float64{"a|b": 0.42}}
		s, err := f.Similarity(ctx, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, 0.42, s)
	})

	t.Run("configured error surfaces", func(t *testing.T) {
		f := &Fake{Err: errors.New("down")}
		_, err := f.Similarity(ctx, "a", "b")
		assert.Error(t, err)
	})
}

func TestFakeBatchSimilarity(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	scores, err := f.BatchSimilarity(ctx, "john smith", []string{"john smith", "nobody"})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 1.0, scores[0])
	assert.Zero(t, scores[1])
}
