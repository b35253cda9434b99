package contract

import (
	"context"

	"sushi-ordering-be/internal/entity"
)

// ScoredMenuEmbedding pairs an indexed document with its cosine similarity
// to the query vector (1 - cosine distance, so higher is closer).
type ScoredMenuEmbedding struct {
	Embedding  *entity.MenuEmbedding
	Similarity float64
}

// MenuEmbeddingRepository is the vector index of the knowledge base.
//
// ReplaceAll swaps the whole index to a new generation atomically: no reader
// ever observes a mix of old and new documents.
type MenuEmbeddingRepository interface {
	ReplaceAll(ctx context.Context, embeddings []*entity.MenuEmbedding) error
	SearchSimilarWithScore(ctx context.Context, vector []float32, limit int) ([]*ScoredMenuEmbedding, error)
	Count(ctx context.Context) (int64, error)
}
