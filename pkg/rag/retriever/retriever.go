package retriever

import (
	"context"
	"fmt"
	"strings"

	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/contract"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/rag"
)

// Retriever embeds a query and returns the top-K nearest documents from the
// vector index, with similarity scores in [0,1].
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	index             contract.MenuEmbeddingRepository
	logger            logger.ILogger
}

func New(
	embeddingProvider embedding.EmbeddingProvider,
	index contract.MenuEmbeddingRepository,
	log logger.ILogger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		index:             index,
		logger:            log,
	}
}

// Search returns at most k results ordered by descending similarity. Ties
// keep store order; that ordering is deterministic but not meaningful.
//
// An empty index yields an empty slice, not an error. An unreachable index
// also degrades to an empty slice so the assistant can answer "I don't have
// that information" instead of crashing the conversation.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]rag.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		// An empty query carries no signal for embedding
		return nil, fmt.Errorf("%w: empty query", rag.ErrInvalidQuery)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", rag.ErrInvalidQuery, k)
	}

	// Exactly one embedding call per query
	res, err := r.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrProviderUnavailable, err)
	}

	scored, err := r.index.SearchSimilarWithScore(ctx, res.Embedding.Values, k)
	if err != nil {
		r.logger.Warn("retriever", "vector index unreachable, degrading to empty results", map[string]interface{}{
			"error": err.Error(),
		})
		return []rag.RetrievalResult{}, nil
	}

	results := make([]rag.RetrievalResult, 0, len(scored))
	for _, s := range scored {
		results = append(results, rag.RetrievalResult{
			Id:          s.Embedding.MenuItemId.String(),
			Name:        s.Embedding.ItemName,
			Description: s.Embedding.ItemDesc,
			Price:       s.Embedding.ItemPrice,
			Category:    s.Embedding.Category,
			Dietary:     s.Embedding.Dietary,
			SpiceLevel:  s.Embedding.SpiceLevel,
			Document:    s.Embedding.Document,
			Similarity:  clamp01(s.Similarity),
		})
	}
	return results, nil
}

// Count exposes the index size for status probes.
func (r *Retriever) Count(ctx context.Context) (int64, error) {
	return r.index.Count(ctx)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
