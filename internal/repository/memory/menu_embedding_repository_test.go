package memory

import (
	"context"
	"testing"

	"sushi-ordering-be/internal/entity"

	"github.com/google/uuid"
)

func embeddingFixture(name string, vec []float32) *entity.MenuEmbedding {
	return &entity.MenuEmbedding{
		Id:             uuid.New(),
		MenuItemId:     uuid.New(),
		ItemName:       name,
		EmbeddingValue: vec,
	}
}

func TestSearchSimilarWithScoreOrdering(t *testing.T) {
	repo := NewMenuEmbeddingRepository()
	err := repo.ReplaceAll(context.Background(), []*entity.MenuEmbedding{
		embeddingFixture("far", []float32{0, 1, 0}),
		embeddingFixture("near", []float32{1, 0, 0}),
		embeddingFixture("middle", []float32{0.7071, 0.7071, 0}),
	})
	if err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	scored, err := repo.SearchSimilarWithScore(context.Background(), []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("SearchSimilarWithScore() error = %v", err)
	}

	wantOrder := []string{"near", "middle", "far"}
	if len(scored) != len(wantOrder) {
		t.Fatalf("len(scored) = %d, want %d", len(scored), len(wantOrder))
	}
	for i, want := range wantOrder {
		if scored[i].Embedding.ItemName != want {
			t.Errorf("scored[%d] = %q, want %q", i, scored[i].Embedding.ItemName, want)
		}
	}
}

func TestSearchSimilarWithScoreLimit(t *testing.T) {
	repo := NewMenuEmbeddingRepository()
	err := repo.ReplaceAll(context.Background(), []*entity.MenuEmbedding{
		embeddingFixture("a", []float32{1, 0, 0}),
		embeddingFixture("b", []float32{0, 1, 0}),
		embeddingFixture("c", []float32{0, 0, 1}),
	})
	if err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	scored, err := repo.SearchSimilarWithScore(context.Background(), []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchSimilarWithScore() error = %v", err)
	}
	if len(scored) != 2 {
		t.Errorf("len(scored) = %d, want 2", len(scored))
	}
}

func TestSearchSimilarTieOrderStable(t *testing.T) {
	repo := NewMenuEmbeddingRepository()
	err := repo.ReplaceAll(context.Background(), []*entity.MenuEmbedding{
		embeddingFixture("first", []float32{0, 1, 0}),
		embeddingFixture("second", []float32{0, 1, 0}),
	})
	if err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		scored, err := repo.SearchSimilarWithScore(context.Background(), []float32{0, 1, 0}, 2)
		if err != nil {
			t.Fatalf("SearchSimilarWithScore() error = %v", err)
		}
		if scored[0].Embedding.ItemName != "first" || scored[1].Embedding.ItemName != "second" {
			t.Fatalf("tie order changed on run %d: %q, %q", i, scored[0].Embedding.ItemName, scored[1].Embedding.ItemName)
		}
	}
}

func TestReplaceAllSwapsWholeGeneration(t *testing.T) {
	repo := NewMenuEmbeddingRepository()
	if err := repo.ReplaceAll(context.Background(), []*entity.MenuEmbedding{
		embeddingFixture("old-1", []float32{1, 0, 0}),
		embeddingFixture("old-2", []float32{0, 1, 0}),
	}); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	if err := repo.ReplaceAll(context.Background(), []*entity.MenuEmbedding{
		embeddingFixture("new-1", []float32{0, 0, 1}),
	}); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after swap", count)
	}

	scored, _ := repo.SearchSimilarWithScore(context.Background(), []float32{0, 0, 1}, 10)
	for _, s := range scored {
		if s.Embedding.ItemName == "old-1" || s.Embedding.ItemName == "old-2" {
			t.Errorf("old generation document %q still visible", s.Embedding.ItemName)
		}
	}
}
