package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/projeto-bia/bia-be/database"
	"github.com/projeto-bia/bia-be/types"
)

const DefaultContextK = 3

// IndexService owns the document index lifecycle: build it from the PDF
// folder when no index exists yet, otherwise reuse what the store already
// holds. After EnsureReady the index is read-only for the process lifetime
// and safe for concurrent queries; only Ingest (admin upload) appends.
type IndexService struct {
	store    database.VectorStore
	embedder Embedder
	pdf      *PDFService
	docDir   string
}

func NewIndexService(store database.VectorStore, embedder Embedder, pdf *PDFService, docDir string) *IndexService {
	return &IndexService{
		store:    store,
		embedder: embedder,
		pdf:      pdf,
		docDir:   docDir,
	}
}

// EnsureReady builds the index unless the store already carries one.
func (s *IndexService) EnsureReady(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect vector store: %w", err)
	}
	if count > 0 {
		log.Printf("Reusing existing index with %d chunks", count)
		return nil
	}
	return s.Build(ctx)
}

// Build reads the document folder, chunks and embeds its text and persists
// the result. A folder with no extractable text still produces an index,
// degenerate over a single empty placeholder chunk.
func (s *IndexService) Build(ctx context.Context) error {
	log.Println("Building document index...")
	raw := s.pdf.ExtractFolderText(s.docDir)

	var chunks []types.DocumentChunk
	if strings.TrimSpace(raw) == "" {
		log.Println("Warning: no extractable text found in document folder")
		chunks = []types.DocumentChunk{{ID: uuid.NewString(), Content: ""}}
	} else {
		chunks = s.pdf.ChunkText(raw, "")
	}

	if err := s.embedAndStore(ctx, chunks); err != nil {
		return err
	}
	log.Printf("Indexed %d chunks", len(chunks))
	return nil
}

// IngestFile chunks, embeds and stores a single document, then re-persists
// the index. Used by the admin upload path.
func (s *IndexService) IngestFile(ctx context.Context, path, source string) (int, error) {
	text, err := s.pdf.ExtractFileText(path)
	if err != nil {
		return 0, fmt.Errorf("failed to extract %s: %w", source, err)
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("no extractable text in %s", source)
	}
	chunks := s.pdf.ChunkText(text, source)
	if err := s.embedAndStore(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

func (s *IndexService) embedAndStore(ctx context.Context, chunks []types.DocumentChunk) error {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}
	if err := s.store.Add(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}
	if err := s.store.Persist(); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	return nil
}

// RelevantContext returns the text of the k most similar chunks, most
// similar first, joined by blank lines. There is no minimum-similarity
// threshold: low-signal context is returned as-is.
func (s *IndexService) RelevantContext(ctx context.Context, query string, k int) (string, error) {
	results, err := s.Search(ctx, query, k)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, result.Chunk.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}

// Search exposes raw scored chunks for the document search endpoint.
func (s *IndexService) Search(ctx context.Context, query string, k int) ([]database.ScoredChunk, error) {
	if k <= 0 {
		k = DefaultContextK
	}
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	results, err := s.store.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	return results, nil
}
