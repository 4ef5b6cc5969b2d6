package models

import (
	"time"
)

// WishlistItem marks a product a user wants to keep an eye on.
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index:idx_wishlist_user_product,unique;not null" json:"user_id"`
	ProductID uint      `gorm:"index:idx_wishlist_user_product,unique;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
