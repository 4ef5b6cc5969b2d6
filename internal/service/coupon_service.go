package service

import (
	"strings"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService validates coupons and computes discounts. Quote never
// mutates state; redemption happens inside the order placement transaction.
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates the coupon service.
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// NormalizeCode canonicalizes a coupon code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Quote validates the coupon against the subtotal and returns the discount
// it would grant. The checks run in a fixed order so callers get the most
// specific failure.
func (s *CouponService) Quote(subtotal models.Money, code string) (models.Money, *models.Coupon, error) {
	zero := models.NewMoneyFromDecimal(decimal.Zero)

	coupon, err := s.couponRepo.GetByCode(NormalizeCode(code))
	if err != nil {
		return zero, nil, err
	}
	if coupon == nil {
		return zero, nil, ErrCouponNotFound
	}
	if !coupon.IsActive {
		return zero, nil, ErrCouponInactive
	}

	now := time.Now()
	if now.Before(coupon.ValidFrom) {
		return zero, nil, ErrCouponNotStarted
	}
	if now.After(coupon.ValidTo) {
		return zero, nil, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return zero, nil, ErrCouponUsageLimit
	}
	if subtotal.LessThan(coupon.MinPurchaseAmount.Decimal) {
		return zero, nil, ErrCouponMinAmount
	}

	return calculateDiscount(coupon, subtotal), coupon, nil
}

// calculateDiscount applies the coupon maths: percentage with an optional
// cap, or a fixed amount. The discount never exceeds the subtotal.
func calculateDiscount(coupon *models.Coupon, subtotal models.Money) models.Money {
	discount := decimal.Zero
	switch coupon.DiscountType {
	case constants.CouponTypePercentage:
		discount = subtotal.Mul(coupon.DiscountValue.Decimal).Div(decimal.NewFromInt(100)).Round(2)
		if coupon.MaxDiscountAmount.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscountAmount.Decimal) {
			discount = coupon.MaxDiscountAmount.Decimal
		}
	case constants.CouponTypeFixed:
		discount = coupon.DiscountValue.Decimal
	}
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}
