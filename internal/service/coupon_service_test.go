package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceDB(t *testing.T, name string) *gorm.DB {
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

func createCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) models.Coupon {
	t.Helper()
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func TestQuotePercentageWithCap(t *testing.T) {
	db := setupCouponServiceDB(t, "coupon_quote_pct")
	now := time.Now()
	createCoupon(t, db, models.Coupon{
		Code:              "MEGA20",
		DiscountType:      constants.CouponTypePercentage,
		DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		ValidFrom:         now.Add(-time.Hour),
		ValidTo:           now.Add(time.Hour),
		UsageLimit:        10,
		IsActive:          true,
	})
	svc := NewCouponService(repository.NewCouponRepository(db))

	// 20% of 2000 is 400, under the cap.
	discount, coupon, err := svc.Quote(money(2000), "mega20")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if coupon == nil || coupon.Code != "MEGA20" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
	if discount.String() != "400.00" {
		t.Fatalf("discount want 400.00 got %s", discount.String())
	}

	// 20% of 5000 is 1000, capped at 500.
	discount, _, err = svc.Quote(money(5000), "MEGA20")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if discount.String() != "500.00" {
		t.Fatalf("capped discount want 500.00 got %s", discount.String())
	}
}

func TestQuoteFixedNeverExceedsSubtotal(t *testing.T) {
	db := setupCouponServiceDB(t, "coupon_quote_fixed")
	now := time.Now()
	createCoupon(t, db, models.Coupon{
		Code:          "FLAT500",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		ValidFrom:     now.Add(-time.Hour),
		ValidTo:       now.Add(time.Hour),
		IsActive:      true,
	})
	svc := NewCouponService(repository.NewCouponRepository(db))

	discount, _, err := svc.Quote(money(300), "FLAT500")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if discount.String() != "300.00" {
		t.Fatalf("discount should clamp to subtotal, want 300.00 got %s", discount.String())
	}
}

func TestQuoteFailureOrder(t *testing.T) {
	db := setupCouponServiceDB(t, "coupon_quote_fail")
	now := time.Now()
	svc := NewCouponService(repository.NewCouponRepository(db))

	if _, _, err := svc.Quote(money(100), "NOPE"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	createCoupon(t, db, models.Coupon{
		Code:         "OFF",
		DiscountType: constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(
			decimal.NewFromInt(10)),
		ValidFrom: now.Add(-time.Hour),
		ValidTo:   now.Add(time.Hour),
		IsActive:  false,
	})
	if _, _, err := svc.Quote(money(100), "OFF"); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected inactive, got %v", err)
	}

	createCoupon(t, db, models.Coupon{
		Code:          "SOON",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now.Add(time.Hour),
		ValidTo:       now.Add(2 * time.Hour),
		IsActive:      true,
	})
	if _, _, err := svc.Quote(money(100), "SOON"); !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}

	createCoupon(t, db, models.Coupon{
		Code:          "GONE",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now.Add(-2 * time.Hour),
		ValidTo:       now.Add(-time.Hour),
		IsActive:      true,
	})
	if _, _, err := svc.Quote(money(100), "GONE"); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected expired, got %v", err)
	}

	createCoupon(t, db, models.Coupon{
		Code:          "USED",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now.Add(-time.Hour),
		ValidTo:       now.Add(time.Hour),
		UsageLimit:    1,
		UsedCount:     1,
		IsActive:      true,
	})
	if _, _, err := svc.Quote(money(100), "USED"); !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected usage limit, got %v", err)
	}

	createCoupon(t, db, models.Coupon{
		Code:              "BIG",
		DiscountType:      constants.CouponTypeFixed,
		DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
		ValidFrom:         now.Add(-time.Hour),
		ValidTo:           now.Add(time.Hour),
		IsActive:          true,
	})
	if _, _, err := svc.Quote(money(999), "BIG"); !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("expected min amount, got %v", err)
	}
}

func TestQuoteDoesNotMutateUsage(t *testing.T) {
	db := setupCouponServiceDB(t, "coupon_quote_idem")
	now := time.Now()
	coupon := createCoupon(t, db, models.Coupon{
		Code:          "KEEP",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		ValidFrom:     now.Add(-time.Hour),
		ValidTo:       now.Add(time.Hour),
		UsageLimit:    5,
		IsActive:      true,
	})
	svc := NewCouponService(repository.NewCouponRepository(db))

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Quote(money(100), "KEEP"); err != nil {
			t.Fatalf("quote %d failed: %v", i, err)
		}
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("quote must not burn usage, used_count got %d", reloaded.UsedCount)
	}
}
