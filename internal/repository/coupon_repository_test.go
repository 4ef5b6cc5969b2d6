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

func setupCouponRepoDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestIncrementUsedCountExhaustion(t *testing.T) {
	db := setupCouponRepoDB(t, "coupon_increment")
	now := time.Now()
	coupon := models.Coupon{
		Code:          "LIMIT2",
		DiscountType:  "fixed",
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now,
		ValidTo:       now.Add(time.Hour),
		UsageLimit:    2,
		IsActive:      true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	repo := NewCouponRepository(db)

	for i := 0; i < 2; i++ {
		ok, err := repo.IncrementUsedCount(coupon.ID)
		if err != nil || !ok {
			t.Fatalf("increment %d should succeed, ok=%v err=%v", i, ok, err)
		}
	}

	ok, err := repo.IncrementUsedCount(coupon.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if ok {
		t.Fatalf("exhausted coupon must refuse another use")
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("used count want 2 got %d", reloaded.UsedCount)
	}
}

func TestIncrementUsedCountUnlimited(t *testing.T) {
	db := setupCouponRepoDB(t, "coupon_unlimited")
	now := time.Now()
	coupon := models.Coupon{
		Code:          "FOREVER",
		DiscountType:  "fixed",
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now,
		ValidTo:       now.Add(time.Hour),
		UsageLimit:    0,
		IsActive:      true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	repo := NewCouponRepository(db)

	for i := 0; i < 3; i++ {
		ok, err := repo.IncrementUsedCount(coupon.ID)
		if err != nil || !ok {
			t.Fatalf("unlimited increment %d should succeed, ok=%v err=%v", i, ok, err)
		}
	}
}

func TestDecrementUsedCountFloorsAtZero(t *testing.T) {
	db := setupCouponRepoDB(t, "coupon_decrement")
	now := time.Now()
	coupon := models.Coupon{
		Code:          "BACK",
		DiscountType:  "fixed",
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now,
		ValidTo:       now.Add(time.Hour),
		UsageLimit:    5,
		UsedCount:     1,
		IsActive:      true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	repo := NewCouponRepository(db)

	if err := repo.DecrementUsedCount(coupon.ID); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if err := repo.DecrementUsedCount(coupon.ID); err != nil {
		t.Fatalf("decrement at zero failed: %v", err)
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("used count must not go negative, got %d", reloaded.UsedCount)
	}
}

func TestGetByCodeNormalization(t *testing.T) {
	db := setupCouponRepoDB(t, "coupon_getbycode")
	now := time.Now()
	coupon := models.Coupon{
		Code:          "SAVE10",
		DiscountType:  "fixed",
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now,
		ValidTo:       now.Add(time.Hour),
		IsActive:      true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	repo := NewCouponRepository(db)

	got, err := repo.GetByCode("SAVE10")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if got == nil || got.ID != coupon.ID {
		t.Fatalf("unexpected coupon: %+v", got)
	}

	missing, err := repo.GetByCode("NOPE")
	if err != nil {
		t.Fatalf("get missing code failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing code should return nil, got %+v", missing)
	}
}
