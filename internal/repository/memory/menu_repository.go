package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/repository/contract"

	"github.com/google/uuid"
)

// MenuRepository keeps the catalog in memory, keyed by item name like the
// unique index on the database implementation.
type MenuRepository struct {
	mu     sync.RWMutex
	byName map[string]*entity.MenuItem
}

var _ contract.MenuRepository = &MenuRepository{}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{
		byName: make(map[string]*entity.MenuItem),
	}
}

func (r *MenuRepository) UpsertBulk(ctx context.Context, items []*entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, item := range items {
		if existing, ok := r.byName[item.Name]; ok {
			item.Id = existing.Id
			item.CreatedAt = existing.CreatedAt
			t := now
			item.UpdatedAt = &t
		} else {
			if item.Id == uuid.Nil {
				item.Id = uuid.New()
			}
			item.CreatedAt = now
		}
		copied := *item
		r.byName[item.Name] = &copied
	}
	return nil
}

func (r *MenuRepository) FindAll(ctx context.Context) ([]*entity.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entity.MenuItem, 0, len(r.byName))
	for _, item := range r.byName {
		copied := *item
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *MenuRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byName {
		if item.Id == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byName)), nil
}

func (r *MenuRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, item := range r.byName {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories, nil
}
