package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// MenuEmbedding is one indexed document of the knowledge base. Metadata
// columns are denormalized copies of the menu item fields so retrieval
// results can be displayed without re-parsing the document blob.
type MenuEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuItemId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 use 768 dimensions
	Generation     int64           `gorm:"not null;index"`
	ItemName       string          `gorm:"type:varchar(160);not null"`
	ItemDesc       string          `gorm:"type:text"`
	ItemPrice      float64         `gorm:"not null"`
	Category       string          `gorm:"type:varchar(80)"`
	Dietary        datatypes.JSON  `gorm:"type:jsonb"`
	SpiceLevel     int             `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (MenuEmbedding) TableName() string {
	return "menu_embeddings"
}
