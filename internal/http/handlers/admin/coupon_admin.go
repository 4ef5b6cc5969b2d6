package admin

import (
	"errors"
	"strconv"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
	"github.com/2063ti/flugede-gadgets-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest is the coupon create/update payload.
type CouponRequest struct {
	Code              string  `json:"code" binding:"required"`
	Description       string  `json:"description"`
	DiscountType      string  `json:"discount_type" binding:"required"`
	DiscountValue     float64 `json:"discount_value" binding:"required"`
	MinPurchaseAmount float64 `json:"min_purchase_amount"`
	MaxDiscountAmount float64 `json:"max_discount_amount"`
	ValidFrom         string  `json:"valid_from" binding:"required"`
	ValidTo           string  `json:"valid_to" binding:"required"`
	UsageLimit        int     `json:"usage_limit"`
	IsActive          *bool   `json:"is_active"`
}

func respondCouponAdminError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeConflict, "coupon code already in use", nil)
	case errors.Is(err, service.ErrCouponInvalid):
		respondError(c, response.CodeBadRequest, "coupon definition invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

func (h *Handler) bindCouponInput(c *gin.Context) (service.CouponInput, bool) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return service.CouponInput{}, false
	}
	validFrom, err := parseTimeNullable(req.ValidFrom)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid valid_from", err)
		return service.CouponInput{}, false
	}
	validTo, err := parseTimeNullable(req.ValidTo)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid valid_to", err)
		return service.CouponInput{}, false
	}
	input := service.CouponInput{
		Code:              req.Code,
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     models.NewMoneyFromDecimal(decimal.NewFromFloat(req.DiscountValue)),
		MinPurchaseAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MinPurchaseAmount)),
		MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MaxDiscountAmount)),
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		UsageLimit:        req.UsageLimit,
		IsActive:          true,
	}
	if req.IsActive != nil {
		input.IsActive = *req.IsActive
	}
	return input, true
}

// ListCoupons lists coupon definitions.
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "coupon list failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CreateCoupon adds a coupon definition.
func (h *Handler) CreateCoupon(c *gin.Context) {
	input, ok := h.bindCouponInput(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		respondCouponAdminError(c, err, "coupon create failed")
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon edits a coupon definition.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "invalid coupon id", nil)
		return
	}
	input, ok := h.bindCouponInput(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Update(uint(couponID), input)
	if err != nil {
		respondCouponAdminError(c, err, "coupon update failed")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes a coupon definition.
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "invalid coupon id", nil)
		return
	}
	if err := h.CouponAdminService.Delete(uint(couponID)); err != nil {
		respondCouponAdminError(c, err, "coupon delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
