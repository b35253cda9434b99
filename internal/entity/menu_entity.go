package entity

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is the source record for the knowledge base. Immutable once
// embedded for a given indexing generation.
type MenuItem struct {
	Id          uuid.UUID
	Name        string
	Description string
	Price       float64
	Ingredients []string
	Category    string
	Dietary     []string
	SpiceLevel  int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// MenuEmbedding is an indexed document derived from a MenuItem: the
// embeddable document blob, its vector and a metadata copy of the item.
type MenuEmbedding struct {
	Id             uuid.UUID
	MenuItemId     uuid.UUID
	Document       string
	EmbeddingValue []float32
	Generation     int64
	ItemName       string
	ItemDesc       string
	ItemPrice      float64
	Category       string
	Dietary        []string
	SpiceLevel     int
	CreatedAt      time.Time
}
