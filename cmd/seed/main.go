package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"sushi-ordering-be/internal/config"
	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/implementation"
	"sushi-ordering-be/pkg/database"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/menucache"
	"sushi-ordering-be/pkg/rag/indexer"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type seedItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"ingredients"`
	Category    string   `json:"category"`
	Dietary     []string `json:"dietary"`
	SpiceLevel  int      `json:"spice_level"`
}

// Seeds the menu catalog from a JSON file and builds the knowledge base in
// one shot. Usage: go run ./cmd/seed [path/to/menu.json]
func main() {
	cfg := config.Load()

	seedPath := "data/menu.json"
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		log.Fatalf("Error: failed to read seed file %s: %v", seedPath, err)
	}

	var seedItems []seedItem
	if err := json.Unmarshal(raw, &seedItems); err != nil {
		log.Fatalf("Error: invalid seed file: %v", err)
	}

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: failed to connect to database: %v", err)
	}

	now := time.Now()
	entities := make([]*entity.MenuItem, len(seedItems))
	for i, item := range seedItems {
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

	ctx := context.Background()
	menuRepo := implementation.NewMenuRepository(db)
	if err := menuRepo.UpsertBulk(ctx, entities); err != nil {
		color.Red("✗ Failed to upsert menu items: %v", err)
		os.Exit(1)
	}
	color.Green("✓ Upserted %d menu items from %s", len(entities), seedPath)

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
	}

	embeddingRepo := implementation.NewMenuEmbeddingRepository(db)
	ix := indexer.New(embeddingProvider, embeddingRepo, menucache.New(0), logger.NewNopLogger())

	items, err := menuRepo.FindAll(ctx)
	if err != nil {
		color.Red("✗ Failed to reload catalog: %v", err)
		os.Exit(1)
	}

	color.Cyan("… Building knowledge base (%d items, provider=%s)", len(items), cfg.Ai.EmbeddingProvider)
	if err := ix.Index(ctx, items); err != nil {
		color.Red("✗ Index build failed: %v", err)
		os.Exit(1)
	}

	color.Green("✓ Knowledge base built: %d documents indexed", len(items))
}
