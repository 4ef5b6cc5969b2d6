package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a user shipping address.
type Address struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	AddressType  string         `gorm:"size:16;default:home" json:"address_type"` // home / work
	FullName     string         `gorm:"size:120;not null" json:"full_name"`
	Phone        string         `gorm:"size:32;not null" json:"phone"`
	AddressLine1 string         `gorm:"size:255;not null" json:"address_line1"`
	AddressLine2 string         `gorm:"size:255" json:"address_line2"`
	City         string         `gorm:"size:80;not null" json:"city"`
	State        string         `gorm:"size:80;not null" json:"state"`
	Pincode      string         `gorm:"size:16;not null" json:"pincode"`
	IsDefault    bool           `gorm:"default:false" json:"is_default"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (Address) TableName() string {
	return "addresses"
}
