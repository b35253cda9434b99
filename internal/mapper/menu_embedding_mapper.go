package mapper

import (
	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type MenuEmbeddingMapper struct{}

func NewMenuEmbeddingMapper() *MenuEmbeddingMapper {
	return &MenuEmbeddingMapper{}
}

func (m *MenuEmbeddingMapper) ToEntity(e *model.MenuEmbedding) *entity.MenuEmbedding {
	if e == nil {
		return nil
	}

	return &entity.MenuEmbedding{
		Id:             e.Id,
		MenuItemId:     e.MenuItemId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		Generation:     e.Generation,
		ItemName:       e.ItemName,
		ItemDesc:       e.ItemDesc,
		ItemPrice:      e.ItemPrice,
		Category:       e.Category,
		Dietary:        fromJSONList(e.Dietary),
		SpiceLevel:     e.SpiceLevel,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *MenuEmbeddingMapper) ToModel(e *entity.MenuEmbedding) *model.MenuEmbedding {
	if e == nil {
		return nil
	}

	return &model.MenuEmbedding{
		Id:             e.Id,
		MenuItemId:     e.MenuItemId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Generation:     e.Generation,
		ItemName:       e.ItemName,
		ItemDesc:       e.ItemDesc,
		ItemPrice:      e.ItemPrice,
		Category:       e.Category,
		Dietary:        toJSONList(e.Dietary),
		SpiceLevel:     e.SpiceLevel,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *MenuEmbeddingMapper) ToEntities(embeddings []*model.MenuEmbedding) []*entity.MenuEmbedding {
	entities := make([]*entity.MenuEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *MenuEmbeddingMapper) ToModels(embeddings []*entity.MenuEmbedding) []*model.MenuEmbedding {
	models := make([]*model.MenuEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
