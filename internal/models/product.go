package models

import (
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item.
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Slug           string         `gorm:"uniqueIndex;size:280;not null" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	CategoryID     uint           `gorm:"index;not null" json:"category_id"`
	Category       *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BrandID        *uint          `gorm:"index" json:"brand_id,omitempty"`
	Brand          *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Price          Money          `gorm:"type:decimal(20,2);default:0" json:"price"`
	DiscountPrice  *Money         `gorm:"type:decimal(20,2)" json:"discount_price,omitempty"`
	Stock          int            `gorm:"default:0" json:"stock"`
	WarrantyMonths int            `gorm:"default:0" json:"warranty_months"`
	MainImage      string         `gorm:"size:500" json:"main_image"`
	IsFeatured     bool           `gorm:"default:false" json:"is_featured"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	Images         []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Specifications []ProductSpecification `gorm:"foreignKey:ProductID" json:"specifications,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// FinalPrice is the price charged: the discount price when set and actually
// below the list price, otherwise the list price.
func (p *Product) FinalPrice() Money {
	if p.DiscountPrice != nil && p.DiscountPrice.GreaterThan(decimal.Zero) && p.DiscountPrice.LessThan(p.Price.Decimal) {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage is the rounded percentage saved against the list price.
func (p *Product) DiscountPercentage() int {
	if p.DiscountPrice == nil || p.Price.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	if p.DiscountPrice.GreaterThanOrEqual(p.Price.Decimal) {
		return 0
	}
	saved := p.Price.Sub(p.DiscountPrice.Decimal)
	pct := saved.Div(p.Price.Decimal).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// StockStatus derives the availability label from the quantity on hand.
func (p *Product) StockStatus() string {
	switch {
	case p.Stock <= 0:
		return constants.StockStatusOutOfStock
	case p.Stock < constants.LowStockThreshold:
		return constants.StockStatusLowStock
	default:
		return constants.StockStatusInStock
	}
}

// ProductImage is an additional gallery image.
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Image     string    `gorm:"size:500;not null" json:"image"`
	AltText   string    `gorm:"size:255" json:"alt_text"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name.
func (ProductImage) TableName() string {
	return "product_images"
}

// ProductSpecification is a name/value spec row shown on the detail page.
type ProductSpecification struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Value     string `gorm:"size:255;not null" json:"value"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// TableName overrides the table name.
func (ProductSpecification) TableName() string {
	return "product_specifications"
}
