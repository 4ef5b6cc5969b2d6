package service

import (
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService manages coupon definitions for staff.
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService creates the coupon admin service.
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// CouponInput is the typed coupon create/update command.
type CouponInput struct {
	Code              string
	Description       string
	DiscountType      string
	DiscountValue     models.Money
	MinPurchaseAmount models.Money
	MaxDiscountAmount models.Money
	ValidFrom         time.Time
	ValidTo           time.Time
	UsageLimit        int
	IsActive          bool
}

func (input CouponInput) validate() error {
	switch input.DiscountType {
	case constants.CouponTypePercentage:
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) || input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return ErrCouponInvalid
		}
	case constants.CouponTypeFixed:
		if input.DiscountValue.LessThanOrEqual(decimal.Zero) {
			return ErrCouponInvalid
		}
	default:
		return ErrCouponInvalid
	}
	if !input.ValidTo.IsZero() && !input.ValidFrom.IsZero() && input.ValidTo.Before(input.ValidFrom) {
		return ErrCouponInvalid
	}
	return nil
}

// List lists coupon definitions.
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// Get fetches one coupon.
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create adds a coupon definition.
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	code := NormalizeCode(input.Code)
	existing, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	coupon := &models.Coupon{
		Code:              code,
		Description:       input.Description,
		DiscountType:      input.DiscountType,
		DiscountValue:     input.DiscountValue,
		MinPurchaseAmount: input.MinPurchaseAmount,
		MaxDiscountAmount: input.MaxDiscountAmount,
		ValidFrom:         input.ValidFrom,
		ValidTo:           input.ValidTo,
		UsageLimit:        input.UsageLimit,
		IsActive:          input.IsActive,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update edits a coupon definition. UsedCount is managed by redemption only.
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	coupon, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	code := NormalizeCode(input.Code)
	if code != coupon.Code {
		existing, err := s.couponRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCouponCodeTaken
		}
	}

	coupon.Code = code
	coupon.Description = input.Description
	coupon.DiscountType = input.DiscountType
	coupon.DiscountValue = input.DiscountValue
	coupon.MinPurchaseAmount = input.MinPurchaseAmount
	coupon.MaxDiscountAmount = input.MaxDiscountAmount
	coupon.ValidFrom = input.ValidFrom
	coupon.ValidTo = input.ValidTo
	coupon.UsageLimit = input.UsageLimit
	coupon.IsActive = input.IsActive
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon definition.
func (s *CouponAdminService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.couponRepo.Delete(id)
}
