package main

import (
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/config"
	"github.com/2063ti/flugede-gadgets-store/internal/logger"
	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Smartphones", Slug: "smartphones", Description: "Phones and foldables", SortOrder: 10, IsActive: true},
		{Name: "Laptops", Slug: "laptops", Description: "Notebooks and ultrabooks", SortOrder: 20, IsActive: true},
		{Name: "Audio", Slug: "audio", Description: "Headphones and speakers", SortOrder: 30, IsActive: true},
		{Name: "Accessories", Slug: "accessories", Description: "Chargers, cables and cases", SortOrder: 40, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	brands := []models.Brand{
		{Name: "Voltaris", Slug: "voltaris", IsActive: true},
		{Name: "Nexon Labs", Slug: "nexon-labs", IsActive: true},
		{Name: "Auralite", Slug: "auralite", IsActive: true},
	}
	for _, b := range brands {
		var existing models.Brand
		if err := models.DB.Where("slug = ?", b.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&b).Error; err != nil {
				stdLog.Printf("Failed to create brand %s: %v", b.Slug, err)
			} else {
				stdLog.Printf("Created brand: %s", b.Slug)
			}
		} else {
			stdLog.Printf("Brand already exists: %s", b.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Find(&brandList).Error; err != nil {
		stdLog.Printf("Failed to load brands: %v", err)
	}
	for _, b := range brandList {
		brandIDs[b.Slug] = b.ID
	}

	voltarisID := brandIDs["voltaris"]
	nexonID := brandIDs["nexon-labs"]
	auraliteID := brandIDs["auralite"]

	discount := func(v float64) *models.Money {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
		return &m
	}

	products := []models.Product{
		{
			Name:           "Voltaris V10 Pro",
			Slug:           "voltaris-v10-pro",
			Description:    "6.7-inch AMOLED flagship with a 5000mAh battery and 120W fast charging.",
			CategoryID:     categoryIDs["smartphones"],
			BrandID:        &voltarisID,
			Price:          models.NewMoneyFromDecimal(decimal.NewFromFloat(54999)),
			DiscountPrice:  discount(49999),
			Stock:          25,
			WarrantyMonths: 12,
			MainImage:      "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=800",
			IsFeatured:     true,
			IsActive:       true,
			Specifications: []models.ProductSpecification{
				{Name: "Display", Value: "6.7\" AMOLED 120Hz", SortOrder: 1},
				{Name: "Battery", Value: "5000mAh", SortOrder: 2},
				{Name: "Storage", Value: "256GB", SortOrder: 3},
			},
		},
		{
			Name:           "Nexon AirBook 14",
			Slug:           "nexon-airbook-14",
			Description:    "Lightweight 14-inch laptop with 16GB RAM and all-day battery life.",
			CategoryID:     categoryIDs["laptops"],
			BrandID:        &nexonID,
			Price:          models.NewMoneyFromDecimal(decimal.NewFromFloat(72999)),
			Stock:          10,
			WarrantyMonths: 24,
			MainImage:      "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800",
			IsFeatured:     true,
			IsActive:       true,
			Specifications: []models.ProductSpecification{
				{Name: "RAM", Value: "16GB LPDDR5", SortOrder: 1},
				{Name: "Storage", Value: "512GB NVMe", SortOrder: 2},
			},
		},
		{
			Name:           "Auralite Buds ANC",
			Slug:           "auralite-buds-anc",
			Description:    "True wireless earbuds with hybrid noise cancellation and 30h playtime.",
			CategoryID:     categoryIDs["audio"],
			BrandID:        &auraliteID,
			Price:          models.NewMoneyFromDecimal(decimal.NewFromFloat(3499)),
			DiscountPrice:  discount(2799),
			Stock:          120,
			WarrantyMonths: 6,
			MainImage:      "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			IsActive:       true,
		},
		{
			Name:        "Voltaris 65W GaN Charger",
			Slug:        "voltaris-65w-gan-charger",
			Description: "Compact dual-port GaN charger for phones and laptops.",
			CategoryID:  categoryIDs["accessories"],
			BrandID:     &voltarisID,
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(449)),
			Stock:       200,
			MainImage:   "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			IsActive:    true,
		},
	}
	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", p.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", p.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.Slug)
		}
	}

	now := time.Now()
	coupons := []models.Coupon{
		{
			Code:              "WELCOME10",
			Description:       "10% off on your first order above 5000",
			DiscountType:      "percentage",
			DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			ValidFrom:         now,
			ValidTo:           now.AddDate(0, 3, 0),
			UsageLimit:        1000,
			IsActive:          true,
		},
		{
			Code:              "MEGA20",
			Description:       "20% off capped at 2000",
			DiscountType:      "percentage",
			DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
			MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			ValidFrom:         now,
			ValidTo:           now.AddDate(0, 1, 0),
			UsageLimit:        500,
			IsActive:          true,
		},
		{
			Code:          "FLAT500",
			Description:   "Flat 500 off, no minimum",
			DiscountType:  "fixed",
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			ValidFrom:     now,
			ValidTo:       now.AddDate(0, 1, 0),
			UsageLimit:    200,
			IsActive:      true,
		},
	}
	for _, cp := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", cp.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cp).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", cp.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", cp.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", cp.Code)
		}
	}

	stdLog.Printf("Seed completed")
}
