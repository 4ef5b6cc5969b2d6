package models

import (
	"time"
)

// OrderStatusHistory is an append-only record of order status transitions.
type OrderStatusHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Status    string    `gorm:"size:24;not null" json:"status"`
	Note      string    `gorm:"size:255" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name.
func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
