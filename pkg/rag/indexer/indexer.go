package indexer

import (
	"context"
	"fmt"
	"strings"

	"sushi-ordering-be/internal/entity"
	"sushi-ordering-be/internal/pkg/logger"
	"sushi-ordering-be/internal/repository/contract"
	"sushi-ordering-be/pkg/embedding"
	"sushi-ordering-be/pkg/menucache"
	"sushi-ordering-be/pkg/rag"

	"github.com/google/uuid"
)

// Indexer builds the knowledge base: it renders each menu item into a
// deterministic document blob, embeds it, and atomically replaces the prior
// index generation.
type Indexer struct {
	embeddingProvider embedding.EmbeddingProvider
	index             contract.MenuEmbeddingRepository
	cache             *menucache.Cache
	logger            logger.ILogger
}

func New(
	embeddingProvider embedding.EmbeddingProvider,
	index contract.MenuEmbeddingRepository,
	cache *menucache.Cache,
	log logger.ILogger,
) *Indexer {
	return &Indexer{
		embeddingProvider: embeddingProvider,
		index:             index,
		cache:             cache,
		logger:            log,
	}
}

// Index replaces the whole knowledge base with the given items. Any
// embedding failure aborts the build: an incomplete catalog is worse than a
// stale one. Retries are the caller's responsibility.
func (ix *Indexer) Index(ctx context.Context, items []*entity.MenuItem) error {
	embeddings := make([]*entity.MenuEmbedding, 0, len(items))

	for _, item := range items {
		document := BuildDocument(item)

		res, err := ix.embeddingProvider.Generate(ctx, document, embedding.TaskRetrievalDocument)
		if err != nil {
			ix.logger.Error("indexer", "embedding failed, aborting index build", map[string]interface{}{
				"item":  item.Name,
				"error": err.Error(),
			})
			return fmt.Errorf("%w: embed %q: %v", rag.ErrProviderUnavailable, item.Name, err)
		}

		embeddings = append(embeddings, &entity.MenuEmbedding{
			Id:             uuid.New(),
			MenuItemId:     item.Id,
			Document:       document,
			EmbeddingValue: res.Embedding.Values,
			ItemName:       item.Name,
			ItemDesc:       item.Description,
			ItemPrice:      item.Price,
			Category:       item.Category,
			Dietary:        item.Dietary,
			SpiceLevel:     item.SpiceLevel,
		})
	}

	if err := ix.index.ReplaceAll(ctx, embeddings); err != nil {
		return fmt.Errorf("%w: %v", rag.ErrIndexUnavailable, err)
	}

	if ix.cache != nil {
		ix.cache.Invalidate()
	}

	ix.logger.Info("indexer", "knowledge base rebuilt", map[string]interface{}{
		"documents": len(embeddings),
	})
	return nil
}

// BuildDocument renders a menu item into the embeddable text blob. Field
// order and punctuation are fixed so index text is deterministic; optional
// fields drop their whole segment when absent.
func BuildDocument(item *entity.MenuItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s.", item.Name)
	if item.Description != "" {
		fmt.Fprintf(&b, " Description: %s.", item.Description)
	}
	fmt.Fprintf(&b, " Price: $%.2f.", item.Price)
	if len(item.Ingredients) > 0 {
		fmt.Fprintf(&b, " Ingredients: %s.", strings.Join(item.Ingredients, ", "))
	}
	if item.Category != "" {
		fmt.Fprintf(&b, " Category: %s.", item.Category)
	}
	if len(item.Dietary) > 0 {
		fmt.Fprintf(&b, " Dietary: %s.", strings.Join(item.Dietary, ", "))
	}
	fmt.Fprintf(&b, " Spice level: %d/3.", item.SpiceLevel)

	return b.String()
}
