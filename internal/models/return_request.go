package models

import (
	"time"

	"gorm.io/gorm"
)

// ReturnRequest tracks a customer return for one delivered order item.
type ReturnRequest struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	OrderItemID uint       `gorm:"uniqueIndex;not null" json:"order_item_id"`
	OrderItem   *OrderItem `gorm:"foreignKey:OrderItemID" json:"order_item,omitempty"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Reason      string     `gorm:"type:text;not null" json:"reason"`
	Status      string     `gorm:"size:16;index;default:pending" json:"status"` // pending / approved / rejected / completed
	AdminNote   string     `gorm:"size:255" json:"admin_note"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (ReturnRequest) TableName() string {
	return "return_requests"
}
