package public

import (
	"errors"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"
	"github.com/2063ti/flugede-gadgets-store/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon is not active"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon is not valid yet"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon has expired"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, msg: "coupon usage limit reached"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, msg: "order amount below coupon minimum"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "invalid quantity"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var placeOrderErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "unsupported payment method"},
	{target: service.ErrPaymentGatewayConfig, code: response.CodeInternal, msg: "payment gateway is not configured"},
	{target: service.ErrPaymentGatewayFailed, code: response.CodeInternal, msg: "payment gateway request failed"},
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, msg: "address not found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "insufficient stock"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, msg: "order can no longer be cancelled"},
}

var paymentVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrPaymentSignatureInvalid, code: response.CodeBadRequest, msg: "payment signature verification failed"},
	{target: service.ErrPaymentGatewayConfig, code: response.CodeInternal, msg: "payment gateway is not configured"},
}

var returnErrorRules = []mappedHandlerError{
	{target: service.ErrOrderItemNotFound, code: response.CodeNotFound, msg: "order item not found"},
	{target: service.ErrReturnNotAllowed, code: response.CodeBadRequest, msg: "item is not eligible for return"},
	{target: service.ErrReturnWindowClosed, code: response.CodeBadRequest, msg: "return window has closed"},
	{target: service.ErrReturnAlreadyRequested, code: response.CodeBadRequest, msg: "return already requested for this item"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrReviewRatingInvalid, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
	{target: service.ErrReviewNotAllowed, code: response.CodeForbidden, msg: "only delivered purchases can be reviewed"},
	{target: service.ErrReviewExists, code: response.CodeBadRequest, msg: "product already reviewed"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrEmailTaken, code: response.CodeBadRequest, msg: "email is already registered"},
	{target: service.ErrPasswordTooWeak, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account is disabled"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "user not found"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartErrorRules, couponErrorRules), response.CodeInternal, "cart operation failed")
}

func respondPlaceOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(placeOrderErrorRules, couponErrorRules), response.CodeInternal, "order creation failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order operation failed")
}

func respondPaymentVerifyError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentVerifyErrorRules, response.CodeInternal, "payment verification failed")
}

func respondReturnError(c *gin.Context, err error) {
	respondWithMappedError(c, err, returnErrorRules, response.CodeInternal, "return request failed")
}

func respondReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review submission failed")
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "authentication failed")
}
