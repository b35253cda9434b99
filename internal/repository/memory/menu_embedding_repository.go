package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/repository/contract"
)

// MenuEmbeddingRepository is a brute-force in-memory vector index using
// cosine similarity. Used by tests and for database-less development.
// Vectors are assumed L2-normalized, so the dot product is the cosine.
type MenuEmbeddingRepository struct {
	mu         sync.RWMutex
	embeddings []*entity.MenuEmbedding
	generation int64
}

var _ contract.MenuEmbeddingRepository = &MenuEmbeddingRepository{}

func NewMenuEmbeddingRepository() *MenuEmbeddingRepository {
	return &MenuEmbeddingRepository{}
}

// ReplaceAll swaps the stored generation under the write lock; readers see
// either the old slice or the new one, never a mix.
func (r *MenuEmbeddingRepository) ReplaceAll(ctx context.Context, embeddings []*entity.MenuEmbedding) error {
	generation := time.Now().UnixNano()

	replacement := make([]*entity.MenuEmbedding, len(embeddings))
	for i, e := range embeddings {
		e.Generation = generation
		replacement[i] = e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.embeddings = replacement
	r.generation = generation
	return nil
}

func (r *MenuEmbeddingRepository) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int) ([]*contract.ScoredMenuEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	r.mu.RLock()
	scored := make([]*contract.ScoredMenuEmbedding, 0, len(r.embeddings))
	for _, e := range r.embeddings {
		scored = append(scored, &contract.ScoredMenuEmbedding{
			Embedding:  e,
			Similarity: dot(e.EmbeddingValue, vector),
		})
	}
	r.mu.RUnlock()

	// Stable sort keeps insertion order on ties, matching the documented
	// deterministic-but-not-meaningful tie break.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	return scored[:limit], nil
}

func (r *MenuEmbeddingRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.embeddings)), nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
