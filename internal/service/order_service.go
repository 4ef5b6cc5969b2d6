package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/logger"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/payment/razorpay"
	"github.com/2063ti/flugede-gadgets-store/internal/queue"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"gorm.io/gorm"
)

const (
	orderNoPrefix        = "FLG"
	orderNoRandomDigits  = 6
	orderNoMaxAttempts   = 5
	deliveryEstimateDays = 7
	returnWindowDays     = 7
)

// PaymentGateway is the slice of the gateway client order placement and
// verification need.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*razorpay.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) error
}

// OrderService owns the order lifecycle.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	addressRepo repository.AddressRepository
	couponSvc   *CouponService
	gateway     PaymentGateway
	currency    string
	queueClient *queue.Client
	expireAfter time.Duration
}

// NewOrderService creates the order service. A nil gateway disables online
// payment; COD keeps working.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	addressRepo repository.AddressRepository,
	couponSvc *CouponService,
	gateway PaymentGateway,
	currency string,
	queueClient *queue.Client,
	expireAfter time.Duration,
) *OrderService {
	if currency == "" {
		currency = "INR"
	}
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		addressRepo: addressRepo,
		couponSvc:   couponSvc,
		gateway:     gateway,
		currency:    currency,
		queueClient: queueClient,
		expireAfter: expireAfter,
	}
}

// PlaceOrderInput is the typed place-order command.
type PlaceOrderInput struct {
	UserID        uint
	AddressID     uint
	PaymentMethod string
	CouponCode    string
}

// PlaceOrder turns the user's cart into an order. Stock reservation, coupon
// redemption and the order insert commit or roll back together.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if !constants.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}
	// Online payment requires a configured gateway before anything persists.
	if input.PaymentMethod == constants.PaymentMethodRazorpay && s.gateway == nil {
		return nil, ErrPaymentGatewayConfig
	}

	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	lines := make([]PricingLine, 0, len(cartItems))
	for i := range cartItems {
		item := &cartItems[i]
		if item.Product == nil || !item.Product.IsActive {
			return nil, ErrProductNotAvailable
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		lines = append(lines, PricingLine{UnitPrice: item.Product.FinalPrice(), Quantity: item.Quantity})
	}
	subtotal := ComputeSubtotal(lines)

	discount := models.Money{}
	var coupon *models.Coupon
	if input.CouponCode != "" {
		discount, coupon, err = s.couponSvc.Quote(subtotal, input.CouponCode)
		if err != nil {
			return nil, err
		}
	}
	totals := ComputeTotals(subtotal, discount)

	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expectedDelivery := now.AddDate(0, 0, deliveryEstimateDays)
	returnDeadline := now.AddDate(0, 0, returnWindowDays)

	order := &models.Order{
		OrderNo:              orderNo,
		UserID:               input.UserID,
		AddressID:            address.ID,
		Status:               constants.OrderStatusPending,
		PaymentStatus:        constants.PaymentStatusPending,
		PaymentMethod:        input.PaymentMethod,
		Subtotal:             totals.Subtotal,
		TaxAmount:            totals.Tax,
		ShippingAmount:       totals.Shipping,
		DiscountAmount:       totals.Discount,
		TotalAmount:          totals.Total,
		ExpectedDeliveryDate: &expectedDelivery,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}

	items := make([]models.OrderItem, 0, len(cartItems))
	for i := range cartItems {
		item := &cartItems[i]
		productID := item.ProductID
		deadline := returnDeadline
		unit := item.Product.FinalPrice()
		items = append(items, models.OrderItem{
			ProductID:      &productID,
			ProductName:    item.Product.Name,
			UnitPrice:      unit,
			Quantity:       item.Quantity,
			LineTotal:      ComputeSubtotal([]PricingLine{{UnitPrice: unit, Quantity: item.Quantity}}),
			WarrantyMonths: item.Product.WarrantyMonths,
			ReturnDeadline: &deadline,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		for i := range cartItems {
			ok, err := productRepo.ReserveStock(cartItems[i].ProductID, cartItems[i].Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrStockInsufficient
			}
		}

		if coupon != nil {
			ok, err := s.couponRepo.WithTx(tx).IncrementUsedCount(coupon.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCouponUsageLimit
			}
		}

		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		if err := orderRepo.AppendStatusHistory(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  constants.OrderStatusPending,
			Note:    "Order placed",
		}); err != nil {
			return err
		}

		// Cash on delivery confirms immediately and empties the cart. Online
		// payment keeps the cart until the payment verifies.
		if input.PaymentMethod == constants.PaymentMethodCOD {
			if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusConfirmed, nil); err != nil {
				return err
			}
			order.Status = constants.OrderStatusConfirmed
			if err := orderRepo.AppendStatusHistory(&models.OrderStatusHistory{
				OrderID: order.ID,
				Status:  constants.OrderStatusConfirmed,
				Note:    "Order confirmed (cash on delivery)",
			}); err != nil {
				return err
			}
			if err := s.cartRepo.WithTx(tx).ClearByUser(input.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.PaymentMethod == constants.PaymentMethodRazorpay {
		if err := s.attachGatewayOrder(ctx, order); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetByID(order.ID)
}

// attachGatewayOrder creates the gateway-side order. A gateway failure after
// the local commit compensates: the order is cancelled, stock restored and
// the coupon use returned.
func (s *OrderService) attachGatewayOrder(ctx context.Context, order *models.Order) error {
	amountMinor := AmountMinorUnits(order.TotalAmount)
	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency, order.OrderNo)
	if err != nil {
		logger.Errorw("order_gateway_create_failed",
			"order_no", order.OrderNo,
			"amount_minor", amountMinor,
			"error", err,
		)
		if cancelErr := s.cancelAndRestore(order.ID, "Order cancelled: payment gateway unavailable", true,
			constants.OrderStatusPending); cancelErr != nil {
			logger.Errorw("order_gateway_compensation_failed", "order_id", order.ID, "error", cancelErr)
		}
		return fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}

	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
		"razorpay_order_id": gatewayOrder.ID,
	}); err != nil {
		return err
	}
	order.RazorpayOrderID = gatewayOrder.ID

	if s.queueClient != nil && s.expireAfter > 0 {
		if err := s.queueClient.EnqueueOrderExpire(queue.OrderExpirePayload{OrderID: order.ID}, s.expireAfter); err != nil {
			logger.Warnw("order_expire_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}
	return nil
}

// CancelOrder cancels the user's own order. Allowed only before fulfilment
// starts; stock goes back, the coupon use stays burned.
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isCancellable(order.Status) {
		return nil, ErrOrderCancelNotAllowed
	}
	err = s.cancelAndRestore(order.ID, "Order cancelled by user", false,
		constants.OrderStatusPending, constants.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// CancelExpired reclaims an unpaid online-payment order after the payment
// window closes. Paid or advanced orders are left alone. The coupon use is
// returned because the sale never completed.
func (s *OrderService) CancelExpired(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	if order.Status != constants.OrderStatusPending ||
		order.PaymentMethod != constants.PaymentMethodRazorpay ||
		order.PaymentStatus == constants.PaymentStatusCompleted {
		return nil
	}
	err = s.cancelAndRestore(order.ID, "Order cancelled: payment window expired", true,
		constants.OrderStatusPending)
	if errors.Is(err, ErrOrderCancelNotAllowed) {
		// Lost the race to a payment or another cancellation; nothing to do.
		return nil
	}
	return err
}

// cancelAndRestore is the shared cancellation transaction. The status flip
// is conditional on the order still being in one of from; losing that race
// aborts the whole restore so stock is never released twice.
func (s *OrderService) cancelAndRestore(orderID uint, note string, rollbackCoupon bool, from ...string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		ok, err := orderRepo.TransitionStatus(order.ID, from, constants.OrderStatusCancelled, map[string]interface{}{
			"cancelled_at": now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderCancelNotAllowed
		}

		productRepo := s.productRepo.WithTx(tx)
		for i := range order.Items {
			item := &order.Items[i]
			// Items whose product was removed from the catalog keep the
			// snapshot but have nothing to restock.
			if item.ProductID == nil {
				continue
			}
			if err := productRepo.ReleaseStock(*item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if rollbackCoupon && order.CouponID != nil {
			if err := s.couponRepo.WithTx(tx).DecrementUsedCount(*order.CouponID); err != nil {
				return err
			}
		}

		return orderRepo.AppendStatusHistory(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  constants.OrderStatusCancelled,
			Note:    note,
		})
	})
}

// UpdateOrderStatusInput is the typed admin status command. Force bypasses
// the transition table as the operational escape hatch; every change still
// lands in the history.
type UpdateOrderStatusInput struct {
	OrderID        uint
	Status         string
	Note           string
	Force          bool
	TrackingNumber string
}

// UpdateOrderStatus moves an order along the lifecycle on behalf of staff.
func (s *OrderService) UpdateOrderStatus(input UpdateOrderStatusInput) (*models.Order, error) {
	if !constants.IsValidOrderStatus(input.Status) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == input.Status && input.TrackingNumber == "" {
		return order, nil
	}
	if !input.Force && order.Status != input.Status && !isTransitionAllowed(order.Status, input.Status) {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{}
	if input.TrackingNumber != "" {
		updates["tracking_number"] = input.TrackingNumber
	}
	switch input.Status {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	note := input.Note
	if note == "" {
		note = fmt.Sprintf("Status changed from %s to %s", order.Status, input.Status)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateStatus(order.ID, input.Status, updates); err != nil {
			return err
		}
		if order.Status == input.Status {
			return nil
		}
		return orderRepo.AppendStatusHistory(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  input.Status,
			Note:    note,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// GetUserOrder fetches one order owned by the user.
func (s *OrderService) GetUserOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders lists the user's orders.
func (s *OrderService) ListUserOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// GetOrder fetches any order for staff.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders lists orders across users for staff.
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// generateOrderNo builds FLG + YYYYMMDD + 6 random digits, retrying on the
// rare collision. The unique index is the final guard.
func (s *OrderService) generateOrderNo() (string, error) {
	for attempt := 0; attempt < orderNoMaxAttempts; attempt++ {
		suffix, err := randNumeric(orderNoRandomDigits)
		if err != nil {
			return "", err
		}
		orderNo := orderNoPrefix + time.Now().Format("20060102") + suffix
		exists, err := s.orderRepo.ExistsByOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if !exists {
			return orderNo, nil
		}
	}
	return "", fmt.Errorf("order number generation exhausted after %d attempts", orderNoMaxAttempts)
}

func randNumeric(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
