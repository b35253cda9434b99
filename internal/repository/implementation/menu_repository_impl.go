package implementation

import (
	"context"
	"errors"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/mapper"
	"sushi-ordering-be/internal/model"
	"sushi-ordering-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MenuItemMapper
}

func NewMenuRepository(db *gorm.DB) contract.MenuRepository {
	return &MenuRepositoryImpl{
		db:     db,
		mapper: mapper.NewMenuItemMapper(),
	}
}

func (r *MenuRepositoryImpl) UpsertBulk(ctx context.Context, items []*entity.MenuItem) error {
	if len(items) == 0 {
		return nil
	}

	models := r.mapper.ToModels(items)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "price", "ingredients", "category", "dietary", "spice_level", "updated_at",
			}),
		}).
		Create(models).Error
	if err != nil {
		return err
	}

	// Write generated IDs back to the entities
	for i, m := range models {
		*items[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *MenuRepositoryImpl) FindAll(ctx context.Context) ([]*entity.MenuItem, error) {
	var models []*model.MenuItem
	err := r.db.WithContext(ctx).
		Order("category ASC, name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MenuRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MenuRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Count(&count).Error
	return count, err
}

func (r *MenuRepositoryImpl) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Distinct().
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
