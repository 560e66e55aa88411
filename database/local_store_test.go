package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projeto-bia/bia-be/types"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "index.bin"))
	require.NoError(t, err)
	return store
}

func TestLocalStoreSearchOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunks := []types.DocumentChunk{
		{ID: "a", Content: "primeiro"},
		{ID: "b", Content: "segundo"},
		{ID: "c", Content: "terceiro"},
	}
	vectors := [][]float32{
		{1, 0},
		{0, 1},
		{0.9, 0.1},
	}
	require.NoError(t, store.Add(ctx, chunks, vectors))

	results, err := store.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Chunk.ID)
	assert.Equal(t, "c", results[1].Chunk.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestLocalStoreSearchKLargerThanStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx,
		[]types.DocumentChunk{{ID: "a", Content: "único"}},
		[][]float32{{1, 0}}))

	results, err := store.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestLocalStoreSearchEmpty(t *testing.T) {
	store := newTestStore(t)
	results, err := store.Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLocalStoreAddValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Add(ctx, []types.DocumentChunk{{ID: "a"}, {ID: "b"}}, [][]float32{{1, 0}})
	assert.ErrorContains(t, err, "mismatch")

	require.NoError(t, store.Add(ctx, []types.DocumentChunk{{ID: "a"}}, [][]float32{{1, 0}}))
	err = store.Add(ctx, []types.DocumentChunk{{ID: "b"}}, [][]float32{{1, 0, 0}})
	assert.ErrorContains(t, err, "dimension")
}

func TestLocalStorePersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	ctx := context.Background()

	store, err := NewLocalStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx,
		[]types.DocumentChunk{
			{ID: "a", Content: "primeiro", Source: "guia.pdf"},
			{ID: "b", Content: "segundo", Source: "guia.pdf"},
		},
		[][]float32{{1, 0}, {0, 1}}))
	require.NoError(t, store.Persist())

	reloaded, err := NewLocalStore(path)
	require.NoError(t, err)

	count, err := reloaded.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	results, err := reloaded.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "segundo", results[0].Chunk.Content)
}

func TestLocalStoreCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a gob artifact"), 0644))

	store, err := NewLocalStore(path)
	assert.Nil(t, store)
	assert.ErrorContains(t, err, "decode")
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}
