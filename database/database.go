package database

import (
	"context"

	"github.com/projeto-bia/bia-be/types"
)

// ScoredChunk is a search hit with its similarity score, higher is closer.
type ScoredChunk struct {
	Chunk types.DocumentChunk `json:"chunk"`
	Score float32             `json:"score"`
}

// VectorStore persists document chunks with their embedding vectors and
// answers nearest-neighbor queries. Implementations are read-safe for
// concurrent Search calls once the index is built.
type VectorStore interface {
	// Add stores chunks paired 1:1 with their embedding vectors.
	Add(ctx context.Context, chunks []types.DocumentChunk, vectors [][]float32) error

	// Search returns up to k chunks ordered by descending similarity.
	Search(ctx context.Context, vector []float32, k int) ([]ScoredChunk, error)

	// Count reports how many chunks the store currently holds. A zero
	// count at startup selects the build path.
	Count(ctx context.Context) (int, error)

	// Persist writes the store to its durable form, if it has one.
	Persist() error
}
