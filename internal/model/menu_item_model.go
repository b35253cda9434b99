package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuItem struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(160);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Price       float64        `gorm:"not null"`
	Ingredients datatypes.JSON `gorm:"type:jsonb"`
	Category    string         `gorm:"type:varchar(80);index"`
	Dietary     datatypes.JSON `gorm:"type:jsonb"`
	SpiceLevel  int            `gorm:"default:0"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
