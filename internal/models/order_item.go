package models

import (
	"time"
)

// OrderItem is a product line snapshotted at placement. ProductID is nullable
// so removing a product from the catalog keeps the sold line intact.
type OrderItem struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	OrderID        uint       `gorm:"index;not null" json:"order_id"`
	ProductID      *uint      `gorm:"index" json:"product_id,omitempty"`
	Product        *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName    string     `gorm:"size:255;not null" json:"product_name"`
	UnitPrice      Money      `gorm:"type:decimal(20,2);default:0" json:"unit_price"`
	Quantity       int        `gorm:"not null" json:"quantity"`
	LineTotal      Money      `gorm:"type:decimal(20,2);default:0" json:"line_total"`
	WarrantyMonths int        `gorm:"default:0" json:"warranty_months"`
	ReturnDeadline *time.Time `json:"return_deadline,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName overrides the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
