package indexer

import (
	"context"
	"errors"
	"testing"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/memory"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/menucache"
	"sushi-ordering-be/pkg/rag"

	"github.com/google/uuid"
)

type countingEmbedder struct {
	failAfter int // fail on the Nth call, 0 = never
	calls     int
}

func (c *countingEmbedder) Generate(_ context.Context, _ string, _ string) (*embedding.EmbeddingResponse, error) {
	c.calls++
	if c.failAfter > 0 && c.calls >= c.failAfter {
		return nil, errors.New("model not loaded")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

func (c *countingEmbedder) Ping(context.Context) error {
	return nil
}

func sampleItems() []*entity.MenuItem {
	return []*entity.MenuItem{
		{
			Id:          uuid.New(),
			Name:        "Spicy Tuna Roll",
			Description: "Minced tuna tossed in spicy mayo.",
			Price:       9.5,
			Ingredients: []string{"tuna", "spicy mayo"},
			Category:    "maki",
			SpiceLevel:  2,
		},
		{
			Id:         uuid.New(),
			Name:       "Avocado Roll",
			Price:      5.5,
			Dietary:    []string{"vegetarian", "vegan"},
			SpiceLevel: 0,
		},
	}
}

func TestBuildDocument(t *testing.T) {
	tests := []struct {
		name string
		item *entity.MenuItem
		want string
	}{
		{
			name: "all fields",
			item: &entity.MenuItem{
				Name:        "Spicy Tuna Roll",
				Description: "Minced tuna tossed in spicy mayo.",
				Price:       9.5,
				Ingredients: []string{"tuna", "spicy mayo", "cucumber"},
				Category:    "maki",
				Dietary:     []string{"pescatarian"},
				SpiceLevel:  2,
			},
			want: "Name: Spicy Tuna Roll. Description: Minced tuna tossed in spicy mayo. Price: $9.50. Ingredients: tuna, spicy mayo, cucumber. Category: maki. Dietary: pescatarian. Spice level: 2/3.",
		},
		{
			name: "optional fields dropped whole",
			item: &entity.MenuItem{
				Name:  "Miso Soup",
				Price: 3.5,
			},
			want: "Name: Miso Soup. Price: $3.50. Spice level: 0/3.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDocument(tt.item)
			if got != tt.want {
				t.Errorf("BuildDocument() =\n%q\nwant\n%q", got, tt.want)
			}
			// Same input must render the same text every time.
			if again := BuildDocument(tt.item); again != got {
				t.Error("BuildDocument() is not deterministic")
			}
		})
	}
}

func TestIndexBuildsAllItems(t *testing.T) {
	embedder := &countingEmbedder{}
	index := memory.NewMenuEmbeddingRepository()
	cache := menucache.New(0)
	cache.SetMenu([]string{"stale"})

	ix := New(embedder, index, cache, logger.NewNopLogger())
	if err := ix.Index(context.Background(), sampleItems()); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	count, err := index.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("indexed documents = %d, want 2", count)
	}
	if embedder.calls != 2 {
		t.Errorf("embedding calls = %d, want 2", embedder.calls)
	}
	if _, ok := cache.GetMenu(); ok {
		t.Error("menu cache not invalidated after rebuild")
	}
}

func TestIndexAbortsOnEmbedFailure(t *testing.T) {
	embedder := &countingEmbedder{failAfter: 2}
	index := memory.NewMenuEmbeddingRepository()

	// Existing generation must survive a failed rebuild.
	previous := []*entity.MenuEmbedding{
		{Id: uuid.New(), MenuItemId: uuid.New(), ItemName: "Old Roll", EmbeddingValue: []float32{1, 0, 0}},
	}
	if err := index.ReplaceAll(context.Background(), previous); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	ix := New(embedder, index, menucache.New(0), logger.NewNopLogger())
	err := ix.Index(context.Background(), sampleItems())
	if !errors.Is(err, rag.ErrProviderUnavailable) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}

	count, _ := index.Count(context.Background())
	if count != 1 {
		t.Errorf("index count = %d, want previous generation intact (1)", count)
	}
}

func TestIndexEmptyCatalog(t *testing.T) {
	index := memory.NewMenuEmbeddingRepository()
	if err := index.ReplaceAll(context.Background(), []*entity.MenuEmbedding{
		{Id: uuid.New(), MenuItemId: uuid.New(), ItemName: "Old Roll", EmbeddingValue: []float32{1, 0, 0}},
	}); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	ix := New(&countingEmbedder{}, index, menucache.New(0), logger.NewNopLogger())
	if err := ix.Index(context.Background(), nil); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	count, _ := index.Count(context.Background())
	if count != 0 {
		t.Errorf("index count = %d, want 0 after indexing empty catalog", count)
	}
}
