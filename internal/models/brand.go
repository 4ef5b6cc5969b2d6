package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a product manufacturer.
type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;size:140;not null" json:"slug"`
	Logo      string         `gorm:"size:500" json:"logo"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (Brand) TableName() string {
	return "brands"
}
