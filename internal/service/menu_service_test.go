package service

import (
	"context"
	"testing"
	"time"

	"sushi-ordering-be/internal/dto"
	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/memory"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/menucache"
	"sushi-ordering-be/pkg/rag/indexer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
)

type unitEmbedder struct{}

func (unitEmbedder) Generate(context.Context, string, string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

func (unitEmbedder) Ping(context.Context) error {
	return nil
}

func menuFixture() *dto.ReplaceMenuRequest {
	return &dto.ReplaceMenuRequest{
		Items: []dto.MenuItemPayload{
			{Name: "Salmon Nigiri", Price: 6.5, Category: "nigiri"},
			{Name: "Avocado Roll", Price: 5.5, Category: "maki", Dietary: []string{"vegan"}},
		},
	}
}

// Replace must upsert the catalog, invalidate the listing cache, and (via
// the event bus) trigger a background index rebuild.
func TestReplacePublishesAndReindexes(t *testing.T) {
	ctx := context.Background()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	menuRepo := memory.NewMenuRepository()
	embeddingRepo := memory.NewMenuEmbeddingRepository()
	cache := menucache.New(time.Minute)
	ix := indexer.New(unitEmbedder{}, embeddingRepo, cache, logger.NewNopLogger())

	consumer := NewConsumerService(pubSub, "MENU_UPDATED", menuRepo, ix, logger.NewNopLogger())
	if err := consumer.Consume(ctx); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	publisher := NewPublisherService("MENU_UPDATED", pubSub)
	menuService := NewMenuService(menuRepo, embeddingRepo, cache, publisher, ix, logger.NewNopLogger())

	// Prime the cache so we can observe the invalidation.
	if _, err := menuService.List(ctx); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	res, err := menuService.Replace(ctx, menuFixture())
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	assert.Equal(t, 2, res.Upserted)

	listing, err := menuService.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	assert.False(t, listing.Cached, "cache should have been invalidated by Replace")
	assert.Len(t, listing.Items, 2)

	// The rebuild happens on the consumer goroutine; poll with a deadline.
	deadline := time.After(2 * time.Second)
	for {
		count, err := embeddingRepo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("index not rebuilt in time, count = %d", count)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestListServesFromCache(t *testing.T) {
	ctx := context.Background()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	menuRepo := memory.NewMenuRepository()
	embeddingRepo := memory.NewMenuEmbeddingRepository()
	cache := menucache.New(time.Minute)
	ix := indexer.New(unitEmbedder{}, embeddingRepo, cache, logger.NewNopLogger())
	menuService := NewMenuService(menuRepo, embeddingRepo, cache, NewPublisherService("MENU_UPDATED", pubSub), ix, logger.NewNopLogger())

	if _, err := menuService.Replace(ctx, menuFixture()); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	first, err := menuService.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	assert.False(t, first.Cached)

	second, err := menuService.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	assert.True(t, second.Cached)
	assert.Equal(t, first.Items, second.Items)
}

func TestReindexSynchronous(t *testing.T) {
	ctx := context.Background()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	menuRepo := memory.NewMenuRepository()
	embeddingRepo := memory.NewMenuEmbeddingRepository()
	cache := menucache.New(time.Minute)
	ix := indexer.New(unitEmbedder{}, embeddingRepo, cache, logger.NewNopLogger())
	menuService := NewMenuService(menuRepo, embeddingRepo, cache, NewPublisherService("MENU_UPDATED", pubSub), ix, logger.NewNopLogger())

	if _, err := menuService.Replace(ctx, menuFixture()); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	res, err := menuService.Reindex(ctx)
	if err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}
	assert.Equal(t, 2, res.IndexedItems)

	count, err := embeddingRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	assert.EqualValues(t, 2, count)
}

// countingPublisher records publishes without a broker, for asserting
// that seeding stays silent when there is nothing to do.
type countingPublisher struct {
	published int
}

func (p *countingPublisher) Publish(context.Context, []byte) error {
	p.published++
	return nil
}

// A fresh process pointed at a populated catalog with no embeddings must
// trigger one rebuild on its own.
func TestSeedIndexRebuildsEmptyIndex(t *testing.T) {
	ctx := context.Background()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	menuRepo := memory.NewMenuRepository()
	embeddingRepo := memory.NewMenuEmbeddingRepository()
	cache := menucache.New(time.Minute)
	ix := indexer.New(unitEmbedder{}, embeddingRepo, cache, logger.NewNopLogger())

	if err := menuRepo.UpsertBulk(ctx, []*entity.MenuItem{
		{Name: "Salmon Nigiri", Price: 6.5, Category: "nigiri"},
		{Name: "Avocado Roll", Price: 5.5, Category: "maki"},
	}); err != nil {
		t.Fatalf("UpsertBulk() error = %v", err)
	}

	consumer := NewConsumerService(pubSub, "MENU_UPDATED", menuRepo, ix, logger.NewNopLogger())
	if err := consumer.Consume(ctx); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	menuService := NewMenuService(menuRepo, embeddingRepo, cache, NewPublisherService("MENU_UPDATED", pubSub), ix, logger.NewNopLogger())
	if err := menuService.SeedIndex(ctx); err != nil {
		t.Fatalf("SeedIndex() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		count, err := embeddingRepo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("index not seeded in time, count = %d", count)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestSeedIndexNoops(t *testing.T) {
	ctx := context.Background()

	t.Run("index already populated", func(t *testing.T) {
		menuRepo := memory.NewMenuRepository()
		embeddingRepo := memory.NewMenuEmbeddingRepository()
		cache := menucache.New(time.Minute)
		ix := indexer.New(unitEmbedder{}, embeddingRepo, cache, logger.NewNopLogger())
		publisher := &countingPublisher{}

		items := []*entity.MenuItem{{Name: "Salmon Nigiri", Price: 6.5, Category: "nigiri"}}
		if err := menuRepo.UpsertBulk(ctx, items); err != nil {
			t.Fatalf("UpsertBulk() error = %v", err)
		}
		if err := ix.Index(ctx, items); err != nil {
			t.Fatalf("Index() error = %v", err)
		}

		menuService := NewMenuService(menuRepo, embeddingRepo, cache, publisher, ix, logger.NewNopLogger())
		if err := menuService.SeedIndex(ctx); err != nil {
			t.Fatalf("SeedIndex() error = %v", err)
		}
		assert.Zero(t, publisher.published)
	})

	t.Run("empty catalog", func(t *testing.T) {
		menuRepo := memory.NewMenuRepository()
		embeddingRepo := memory.NewMenuEmbeddingRepository()
		cache := menucache.New(time.Minute)
		ix := indexer.New(unitEmbedder{}, embeddingRepo, cache, logger.NewNopLogger())
		publisher := &countingPublisher{}

		menuService := NewMenuService(menuRepo, embeddingRepo, cache, publisher, ix, logger.NewNopLogger())
		if err := menuService.SeedIndex(ctx); err != nil {
			t.Fatalf("SeedIndex() error = %v", err)
		}
		assert.Zero(t, publisher.published)
	})
}
