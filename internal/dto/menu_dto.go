package dto

import (
	"time"

	"github.com/google/uuid"
)

type MenuItemPayload struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Ingredients []string `json:"ingredients"`
	Category    string   `json:"category" validate:"max=100"`
	Dietary     []string `json:"dietary"`
	SpiceLevel  int      `json:"spice_level" validate:"gte=0,lte=3"`
}

type ReplaceMenuRequest struct {
	Items []MenuItemPayload `json:"items" validate:"required,min=1,dive"`
}

type ReplaceMenuResponse struct {
	Upserted int `json:"upserted"`
}

type MenuItemResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Ingredients []string   `json:"ingredients,omitempty"`
	Category    string     `json:"category,omitempty"`
	Dietary     []string   `json:"dietary,omitempty"`
	SpiceLevel  int        `json:"spice_level"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ListMenuResponse struct {
	Items  []MenuItemResponse `json:"items"`
	Cached bool               `json:"cached"`
}

type ReindexResponse struct {
	IndexedItems int `json:"indexed_items"`
}
