package service

import (
	"errors"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/logger"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/payment/razorpay"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"gorm.io/gorm"
)

// PaymentService verifies gateway callbacks and settles orders.
type PaymentService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	gateway   PaymentGateway
}

// NewPaymentService creates the payment service.
func NewPaymentService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, gateway PaymentGateway) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		gateway:   gateway,
	}
}

// VerifyPaymentInput is the typed verification command carrying the gateway
// callback fields.
type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// VerifyPayment checks the callback signature against the order bound to the
// gateway order id.
//
// Valid signature: payment completed, order confirmed, cart cleared, history
// appended, all in one transaction. Invalid signature: payment marked failed,
// order status and cart untouched. Re-verifying an already completed payment
// is a no-op success.
func (s *PaymentService) VerifyPayment(input VerifyPaymentInput) (*models.Order, error) {
	if s.gateway == nil {
		return nil, ErrPaymentGatewayConfig
	}

	order, err := s.orderRepo.GetByRazorpayOrderID(input.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	// Gateways retry callbacks; a settled payment must not clear the cart or
	// append history a second time.
	if order.PaymentStatus == constants.PaymentStatusCompleted {
		logger.Infow("payment_verify_replayed",
			"order_no", order.OrderNo,
			"gateway_order_id", input.GatewayOrderID,
		)
		return order, nil
	}

	if err := s.gateway.VerifySignature(input.GatewayOrderID, input.PaymentID, input.Signature); err != nil {
		if !errors.Is(err, razorpay.ErrSignatureMismatch) {
			return nil, err
		}
		logger.Warnw("payment_signature_mismatch",
			"order_no", order.OrderNo,
			"gateway_order_id", input.GatewayOrderID,
			"gateway_payment_id", input.PaymentID,
		)
		if markErr := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
			"payment_status": constants.PaymentStatusFailed,
		}); markErr != nil {
			return nil, markErr
		}
		return nil, ErrPaymentSignatureInvalid
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		// The guard on the pending payment status makes settlement
		// exactly-once when gateway retries race each other.
		settled, err := orderRepo.SettlePayment(order.ID, map[string]interface{}{
			"payment_status":      constants.PaymentStatusCompleted,
			"status":              constants.OrderStatusConfirmed,
			"razorpay_payment_id": input.PaymentID,
			"razorpay_signature":  input.Signature,
			"updated_at":          time.Now(),
		})
		if err != nil {
			return err
		}
		if !settled {
			return nil
		}
		if err := s.cartRepo.WithTx(tx).ClearByUser(order.UserID); err != nil {
			return err
		}
		return orderRepo.AppendStatusHistory(&models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  constants.OrderStatusConfirmed,
			Note:    "Payment completed via Razorpay",
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_verified",
		"order_no", order.OrderNo,
		"gateway_payment_id", input.PaymentID,
	)
	return s.orderRepo.GetByID(order.ID)
}
