package implementation

import (
	"context"
	"time"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/mapper"
	"sushi-ordering-be/internal/model"
	"sushi-ordering-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type MenuEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MenuEmbeddingMapper
}

func NewMenuEmbeddingRepository(db *gorm.DB) contract.MenuEmbeddingRepository {
	return &MenuEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewMenuEmbeddingMapper(),
	}
}

// ReplaceAll inserts the new generation and removes every prior one inside a
// single transaction, so concurrent readers see either the old index or the
// new one, never a mix.
func (r *MenuEmbeddingRepositoryImpl) ReplaceAll(ctx context.Context, embeddings []*entity.MenuEmbedding) error {
	generation := time.Now().UnixNano()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(embeddings) > 0 {
			models := make([]*model.MenuEmbedding, len(embeddings))
			for i, e := range embeddings {
				e.Generation = generation
				models[i] = r.mapper.ToModel(e)
			}
			if err := tx.Create(models).Error; err != nil {
				return err
			}
		}

		return tx.Where("generation <> ?", generation).
			Delete(&model.MenuEmbedding{}).Error
	})
}

func (r *MenuEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int) ([]*contract.ScoredMenuEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query) gives the similarity score.
	// Secondary ordering by created_at keeps ties deterministic.
	type result struct {
		model.MenuEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("menu_embeddings").
		Select("menu_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC, created_at ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredMenuEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredMenuEmbedding{
			Embedding:  r.mapper.ToEntity(&res.MenuEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *MenuEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MenuEmbedding{}).Count(&count).Error
	return count, err
}
