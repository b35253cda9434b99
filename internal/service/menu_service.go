package service

import (
	"context"
	"encoding/json"
	"time"

	"sushi-ordering-be/internal/dto"
	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/contract"
	"sushi-ordering-be/pkg/menucache"
	"sushi-ordering-be/pkg/rag/indexer"

	"github.com/google/uuid"
)

type IMenuService interface {
	List(ctx context.Context) (*dto.ListMenuResponse, error)
	Replace(ctx context.Context, req *dto.ReplaceMenuRequest) (*dto.ReplaceMenuResponse, error)
	Reindex(ctx context.Context) (*dto.ReindexResponse, error)
	SeedIndex(ctx context.Context) error
}

type menuService struct {
	menuRepo      contract.MenuRepository
	embeddingRepo contract.MenuEmbeddingRepository
	cache         *menucache.Cache
	publisher     IPublisherService
	indexer       *indexer.Indexer
	logger        logger.ILogger
}

func NewMenuService(
	menuRepo contract.MenuRepository,
	embeddingRepo contract.MenuEmbeddingRepository,
	cache *menucache.Cache,
	publisher IPublisherService,
	ix *indexer.Indexer,
	log logger.ILogger,
) IMenuService {
	return &menuService{
		menuRepo:      menuRepo,
		embeddingRepo: embeddingRepo,
		cache:         cache,
		publisher:     publisher,
		indexer:       ix,
		logger:        log,
	}
}

// List serves the menu listing from cache when fresh, hitting the catalog
// otherwise. Mutations invalidate, so staleness is bounded by the TTL only
// for out-of-band writes.
func (s *menuService) List(ctx context.Context) (*dto.ListMenuResponse, error) {
	if cached, ok := s.cache.GetMenu(); ok {
		if items, ok := cached.([]dto.MenuItemResponse); ok {
			return &dto.ListMenuResponse{Items: items, Cached: true}, nil
		}
	}

	entities, err := s.menuRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MenuItemResponse, len(entities))
	for i, e := range entities {
		items[i] = dto.MenuItemResponse{
			Id:          e.Id,
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Ingredients: e.Ingredients,
			Category:    e.Category,
			Dietary:     e.Dietary,
			SpiceLevel:  e.SpiceLevel,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		}
	}

	s.cache.SetMenu(items)
	return &dto.ListMenuResponse{Items: items, Cached: false}, nil
}

// Replace upserts the incoming items by name, invalidates the listing cache
// and publishes a menu-updated event so the consumer rebuilds the index in
// the background. The HTTP request returns before re-embedding finishes.
func (s *menuService) Replace(ctx context.Context, req *dto.ReplaceMenuRequest) (*dto.ReplaceMenuResponse, error) {
	now := time.Now()
	entities := make([]*entity.MenuItem, len(req.Items))
	for i, item := range req.Items {
		entities[i] = &entity.MenuItem{
			Id:          uuid.New(),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Ingredients: item.Ingredients,
			Category:    item.Category,
			Dietary:     item.Dietary,
			SpiceLevel:  item.SpiceLevel,
			CreatedAt:   now,
		}
	}

	if err := s.menuRepo.UpsertBulk(ctx, entities); err != nil {
		return nil, err
	}

	s.cache.Invalidate()

	payload, err := json.Marshal(dto.MenuUpdatedMessage{Reason: "menu_replaced"})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("menu", "failed to publish menu-updated event", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("menu", "menu replaced", map[string]any{
		"items": len(entities),
	})
	return &dto.ReplaceMenuResponse{Upserted: len(entities)}, nil
}

// SeedIndex publishes one menu-updated event when the catalog has items but
// the index has none, so a fresh process against an existing catalog does
// not sit empty until an operator triggers a rebuild. Called once at
// startup, after the consumer has subscribed.
func (s *menuService) SeedIndex(ctx context.Context) error {
	menuCount, err := s.menuRepo.Count(ctx)
	if err != nil {
		return err
	}
	indexed, err := s.embeddingRepo.Count(ctx)
	if err != nil {
		return err
	}
	if menuCount == 0 || indexed > 0 {
		return nil
	}

	s.logger.Info("menu", "catalog present but index empty, seeding rebuild", map[string]any{
		"menu_items": menuCount,
	})

	payload, err := json.Marshal(dto.MenuUpdatedMessage{Reason: "startup_seed"})
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, payload)
}

// Reindex rebuilds the knowledge base synchronously from the current
// catalog. Used by operators after provider outages or model changes; the
// normal path is the event-driven rebuild.
func (s *menuService) Reindex(ctx context.Context) (*dto.ReindexResponse, error) {
	items, err := s.menuRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.indexer.Index(ctx, items); err != nil {
		return nil, err
	}

	return &dto.ReindexResponse{IndexedItems: len(items)}, nil
}
