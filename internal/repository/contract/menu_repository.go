package contract

import (
	"context"

	"sushi-ordering-be/internal/entity"

	"github.com/google/uuid"
)

// MenuRepository stores the menu catalog (the source records of the
// knowledge base).
type MenuRepository interface {
	UpsertBulk(ctx context.Context, items []*entity.MenuItem) error
	FindAll(ctx context.Context) ([]*entity.MenuItem, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	Count(ctx context.Context) (int64, error)
	Categories(ctx context.Context) ([]string, error)
}
