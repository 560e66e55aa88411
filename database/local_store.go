package database

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/projeto-bia/bia-be/types"
)

// LocalStore keeps chunk/vector pairs in memory and searches them by cosine
// similarity. The store is mirrored to a gob artifact on disk; if the
// artifact exists at construction it is loaded as-is, without re-embedding.
// The artifact format is private to this store.
type LocalStore struct {
	mu      sync.RWMutex
	path    string
	dim     int
	chunks  []types.DocumentChunk
	vectors [][]float32
}

type localStoreFile struct {
	Dim     int
	Chunks  []types.DocumentChunk
	Vectors [][]float32
}

// NewLocalStore opens the store at path. A missing artifact yields an empty
// store; an unreadable artifact is an error the caller must treat as fatal.
func NewLocalStore(path string) (*LocalStore, error) {
	s := &LocalStore{path: path}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open index artifact: %w", err)
	}
	defer f.Close()

	var file localStoreFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode index artifact %s: %w", path, err)
	}
	s.dim = file.Dim
	s.chunks = file.Chunks
	s.vectors = file.Vectors
	log.Printf("Loaded %d chunks from index artifact %s", len(s.chunks), path)
	return s, nil
}

func (s *LocalStore) Add(ctx context.Context, chunks []types.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, vec := range vectors {
		if s.dim == 0 {
			s.dim = len(vec)
		}
		if len(vec) != s.dim {
			return fmt.Errorf("invalid embedding dimension: expected %d, got %d", s.dim, len(vec))
		}
		s.chunks = append(s.chunks, chunks[i])
		s.vectors = append(s.vectors, vec)
	}
	return nil
}

func (s *LocalStore) Search(ctx context.Context, vector []float32, k int) ([]ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]ScoredChunk, 0, len(s.chunks))
	for i, chunk := range s.chunks {
		results = append(results, ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(vector, s.vectors[i]),
		})
	}

	// Stable sort keeps insertion order as the tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *LocalStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Persist rewrites the on-disk artifact. Writes go through a temp file so a
// crash mid-write cannot corrupt a previously good artifact.
func (s *LocalStore) Persist() error {
	s.mu.RLock()
	file := localStoreFile{Dim: s.dim, Chunks: s.chunks, Vectors: s.vectors}
	s.mu.RUnlock()

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create index artifact: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(file); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode index artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.path)
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
