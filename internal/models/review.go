package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a product review. One review per user per product, and only
// buyers with a delivered order may write one.
type Review struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	ProductID          uint           `gorm:"index:idx_review_product_user,unique;not null" json:"product_id"`
	UserID             uint           `gorm:"index:idx_review_product_user,unique;not null" json:"user_id"`
	User               *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating             int            `gorm:"not null" json:"rating"` // 1..5
	Title              string         `gorm:"size:120" json:"title"`
	Comment            string         `gorm:"type:text" json:"comment"`
	IsVerifiedPurchase bool           `gorm:"default:false" json:"is_verified_purchase"`
	IsApproved         bool           `gorm:"default:false" json:"is_approved"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (Review) TableName() string {
	return "reviews"
}
