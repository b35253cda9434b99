package mapper

import (
	"encoding/json"
	"time"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/model"

	"gorm.io/datatypes"
)

type MenuItemMapper struct{}

func NewMenuItemMapper() *MenuItemMapper {
	return &MenuItemMapper{}
}

func (m *MenuItemMapper) ToEntity(e *model.MenuItem) *entity.MenuItem {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.MenuItem{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Ingredients: fromJSONList(e.Ingredients),
		Category:    e.Category,
		Dietary:     fromJSONList(e.Dietary),
		SpiceLevel:  e.SpiceLevel,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *MenuItemMapper) ToModel(e *entity.MenuItem) *model.MenuItem {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.MenuItem{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Ingredients: toJSONList(e.Ingredients),
		Category:    e.Category,
		Dietary:     toJSONList(e.Dietary),
		SpiceLevel:  e.SpiceLevel,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *MenuItemMapper) ToEntities(items []*model.MenuItem) []*entity.MenuItem {
	entities := make([]*entity.MenuItem, len(items))
	for i, e := range items {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *MenuItemMapper) ToModels(items []*entity.MenuItem) []*model.MenuItem {
	models := make([]*model.MenuItem, len(items))
	for i, e := range items {
		models[i] = m.ToModel(e)
	}
	return models
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func fromJSONList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}
