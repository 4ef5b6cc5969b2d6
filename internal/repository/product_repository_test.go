package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepoDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestReserveStockGuard(t *testing.T) {
	db := setupProductRepoDB(t, "product_reserve")
	product := models.Product{
		Name:     "Guarded",
		Slug:     "guarded",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:    3,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	repo := NewProductRepository(db)

	ok, err := repo.ReserveStock(product.ID, 2)
	if err != nil || !ok {
		t.Fatalf("reserve 2 of 3 should succeed, ok=%v err=%v", ok, err)
	}

	ok, err = repo.ReserveStock(product.ID, 2)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if ok {
		t.Fatalf("reserve 2 of 1 should be refused")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("stock want 1 got %d", reloaded.Stock)
	}

	if _, err := repo.ReserveStock(product.ID, 0); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}
}

func TestReleaseStock(t *testing.T) {
	db := setupProductRepoDB(t, "product_release")
	product := models.Product{
		Name:     "Released",
		Slug:     "released",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:    1,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	repo := NewProductRepository(db)

	if err := repo.ReleaseStock(product.ID, 4); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 5 {
		t.Fatalf("stock want 5 got %d", reloaded.Stock)
	}

	if err := repo.ReleaseStock(product.ID, -1); err == nil {
		t.Fatalf("negative quantity should be rejected")
	}
}
