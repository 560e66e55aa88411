package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/projeto-bia/bia-be/config"
	"github.com/projeto-bia/bia-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

var (
	GUIDE_CHUNK_CLASS        = "GuideChunk"
	GUIDE_CHUNK_CLASS_OBJECT = &models.Class{
		Class: GUIDE_CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "chunkId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "page", DataType: []string{"int"}},
		},
		// Vectors are supplied by the embedding service, not a Weaviate module.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore is the VectorStore backend for deployments that run a
// Weaviate instance instead of the local artifact. Durability is the
// server's concern, so Persist is a no-op and Count asks the server
// whether an index already exists.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	wc := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		wc.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(wc)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %w", err)
	}

	hasClass := false
	for _, class := range schema.Classes {
		if class.Class == GUIDE_CHUNK_CLASS {
			hasClass = true
			break
		}
	}
	if !hasClass {
		err = client.Schema().ClassCreator().WithClass(GUIDE_CHUNK_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create GuideChunk class: %w", err)
		}
	}
	return &WeaviateStore{client: client}, nil
}

// ReInit drops and recreates the chunk class, discarding the stored index.
func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(GUIDE_CHUNK_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete GuideChunk class: %w", err)
	}
	err = s.client.Schema().ClassCreator().WithClass(GUIDE_CHUNK_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create GuideChunk class: %w", err)
	}
	return nil
}

func (s *WeaviateStore) Add(ctx context.Context, chunks []types.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class: GUIDE_CHUNK_CLASS,
				Properties: map[string]interface{}{
					"chunkId": chunks[j].ID,
					"content": chunks[j].Content,
					"source":  chunks[j].Source,
					"page":    chunks[j].Page,
				},
				Vector: vectors[j],
			})
		}
		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %w", i, end, err)
		}
		log.Printf("Inserted batch %d-%d of %d chunks", i, end, total)
	}
	return nil
}

func (s *WeaviateStore) Search(ctx context.Context, vector []float32, k int) ([]ScoredChunk, error) {
	fields := []graphql.Field{
		{Name: "chunkId"},
		{Name: "content"},
		{Name: "source"},
		{Name: "page"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}}},
	}
	response, err := s.client.GraphQL().Get().
		WithClassName(GUIDE_CHUNK_CLASS).
		WithFields(fields...).
		WithNearVector((&graphql.NearVectorArgumentBuilder{}).WithVector(vector)).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("graphql query failed: %s", response.Errors[0].Message)
	}

	var results []ScoredChunk
	data, ok := response.Data["Get"].(map[string]interface{})[GUIDE_CHUNK_CLASS].([]interface{})
	if !ok {
		return results, nil
	}
	for _, item := range data {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		sc := ScoredChunk{}
		if v, ok := obj["chunkId"].(string); ok {
			sc.Chunk.ID = v
		}
		if v, ok := obj["content"].(string); ok {
			sc.Chunk.Content = v
		}
		if v, ok := obj["source"].(string); ok {
			sc.Chunk.Source = v
		}
		if v, ok := obj["page"].(float64); ok {
			sc.Chunk.Page = int(v)
		}
		if add, ok := obj["_additional"].(map[string]interface{}); ok {
			if d, ok := add["distance"].(float64); ok {
				sc.Score = float32(1 - d)
			}
		}
		results = append(results, sc)
	}
	return results, nil
}

func (s *WeaviateStore) Count(ctx context.Context) (int, error) {
	response, err := s.client.GraphQL().Aggregate().
		WithClassName(GUIDE_CHUNK_CLASS).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		Do(ctx)
	if err != nil {
		return 0, err
	}
	if len(response.Errors) > 0 {
		return 0, fmt.Errorf("aggregate query failed: %s", response.Errors[0].Message)
	}
	agg, ok := response.Data["Aggregate"].(map[string]interface{})[GUIDE_CHUNK_CLASS].([]interface{})
	if !ok || len(agg) == 0 {
		return 0, nil
	}
	meta, ok := agg[0].(map[string]interface{})["meta"].(map[string]interface{})
	if !ok {
		return 0, nil
	}
	count, _ := meta["count"].(float64)
	return int(count), nil
}

// Persist is a no-op: Weaviate owns durability.
func (s *WeaviateStore) Persist() error {
	return nil
}
