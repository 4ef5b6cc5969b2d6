package service

import "errors"

// Catalog and cart errors.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrStockInsufficient   = errors.New("stock insufficient")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemNotFound    = errors.New("cart item not found")
)

// Coupon errors, ordered the way validation reports them.
var (
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon inactive")
	ErrCouponNotStarted = errors.New("coupon not started")
	ErrCouponExpired    = errors.New("coupon expired")
	ErrCouponUsageLimit = errors.New("coupon usage limit reached")
	ErrCouponMinAmount  = errors.New("coupon minimum purchase not met")
)

// Order errors.
var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderCancelNotAllowed  = errors.New("order cannot be cancelled in its current status")
	ErrOrderTransitionInvalid = errors.New("order status transition not allowed")
	ErrOrderStatusInvalid     = errors.New("order status invalid")
	ErrAddressNotFound        = errors.New("address not found")
	ErrPaymentMethodInvalid   = errors.New("payment method invalid")
)

// Payment verification errors.
var (
	ErrPaymentSignatureInvalid = errors.New("payment signature invalid")
	ErrPaymentGatewayConfig    = errors.New("payment gateway not configured")
	ErrPaymentGatewayFailed    = errors.New("payment gateway request failed")
)

// Return and review errors.
var (
	ErrOrderItemNotFound      = errors.New("order item not found")
	ErrReturnNotAllowed       = errors.New("return not allowed for this item")
	ErrReturnWindowClosed     = errors.New("return window closed")
	ErrReturnAlreadyRequested = errors.New("return already requested")
	ErrReturnNotFound         = errors.New("return request not found")
	ErrReturnStatusInvalid    = errors.New("return request status invalid")
	ErrReviewNotAllowed       = errors.New("review allowed only after delivery")
	ErrReviewExists           = errors.New("review already exists")
	ErrReviewRatingInvalid    = errors.New("review rating out of range")
	ErrReviewNotFound         = errors.New("review not found")
)

// Admin catalog and coupon management errors.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrCouponCodeTaken  = errors.New("coupon code already in use")
	ErrCouponInvalid    = errors.New("coupon definition invalid")
)

// Auth errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrPasswordTooWeak    = errors.New("password does not meet policy")
	ErrNotAdmin           = errors.New("admin privileges required")
)
