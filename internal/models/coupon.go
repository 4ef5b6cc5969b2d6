package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount code. MaxDiscountAmount of zero means no cap and
// applies to percentage coupons only.
type Coupon struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Code              string         `gorm:"uniqueIndex;size:40;not null" json:"code"`
	Description       string         `gorm:"size:255" json:"description"`
	DiscountType      string         `gorm:"size:16;not null" json:"discount_type"` // percentage / fixed
	DiscountValue     Money          `gorm:"type:decimal(20,2);default:0" json:"discount_value"`
	MinPurchaseAmount Money          `gorm:"type:decimal(20,2);default:0" json:"min_purchase_amount"`
	MaxDiscountAmount Money          `gorm:"type:decimal(20,2);default:0" json:"max_discount_amount"`
	ValidFrom         time.Time      `json:"valid_from"`
	ValidTo           time.Time      `json:"valid_to"`
	UsageLimit        int            `gorm:"default:0" json:"usage_limit"`
	UsedCount         int            `gorm:"default:0" json:"used_count"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (Coupon) TableName() string {
	return "coupons"
}
