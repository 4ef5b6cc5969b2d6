package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed order with its pricing snapshot.
type Order struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	OrderNo   string `gorm:"uniqueIndex;size:32;not null" json:"order_no"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	User      *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AddressID uint   `gorm:"index" json:"address_id"`
	Address   *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`

	Status        string `gorm:"size:24;index;default:pending" json:"status"`
	PaymentStatus string `gorm:"size:24;index;default:pending" json:"payment_status"`
	PaymentMethod string `gorm:"size:24;not null" json:"payment_method"`

	Subtotal       Money `gorm:"type:decimal(20,2);default:0" json:"subtotal"`
	TaxAmount      Money `gorm:"type:decimal(20,2);default:0" json:"tax_amount"`
	ShippingAmount Money `gorm:"type:decimal(20,2);default:0" json:"shipping_amount"`
	DiscountAmount Money `gorm:"type:decimal(20,2);default:0" json:"discount_amount"`
	TotalAmount    Money `gorm:"type:decimal(20,2);default:0" json:"total_amount"`

	CouponID   *uint   `gorm:"index" json:"coupon_id,omitempty"`
	Coupon     *Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	CouponCode string  `gorm:"size:40" json:"coupon_code"`

	RazorpayOrderID   string `gorm:"index;size:64" json:"razorpay_order_id"`
	RazorpayPaymentID string `gorm:"size:64" json:"razorpay_payment_id"`
	RazorpaySignature string `gorm:"size:128" json:"-"`

	TrackingNumber       string     `gorm:"size:64" json:"tracking_number"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	DeliveredAt          *time.Time `json:"delivered_at,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (Order) TableName() string {
	return "orders"
}
