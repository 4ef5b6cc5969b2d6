package service

import (
	"context"
	"errors"
	"testing"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/payment/razorpay"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
)

const testGatewaySecret = "test_secret_key"

// stubGateway verifies signatures with a fixed secret and never talks to the
// network.
type stubGateway struct{}

func (stubGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*razorpay.GatewayOrder, error) {
	return &razorpay.GatewayOrder{ID: "order_stub", Amount: amountMinor, Currency: currency, Receipt: receipt}, nil
}

func (stubGateway) VerifySignature(orderID, paymentID, signature string) error {
	if !razorpay.VerifySignature(testGatewaySecret, orderID, paymentID, signature) {
		return razorpay.ErrSignatureMismatch
	}
	return nil
}

type paymentServiceFixture struct {
	*orderServiceFixture
	paySvc *PaymentService
	order  *models.Order
}

func setupPaymentService(t *testing.T, name string) *paymentServiceFixture {
	t.Helper()
	f := setupOrderService(t, name)

	orderRepo := repository.NewOrderRepository(f.db)
	paySvc := NewPaymentService(orderRepo, repository.NewCartRepository(f.db), stubGateway{})

	// A pending online order bound to a known gateway order id, with the cart
	// still holding the purchase.
	f.addToCart(t, f.product.ID, 1)
	order := &models.Order{
		OrderNo:         "FLG20250101123456",
		UserID:          f.user.ID,
		AddressID:       f.address.ID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
		PaymentMethod:   constants.PaymentMethodRazorpay,
		RazorpayOrderID: "order_rzp_1",
	}
	if err := f.db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	return &paymentServiceFixture{orderServiceFixture: f, paySvc: paySvc, order: order}
}

func TestVerifyPaymentSuccess(t *testing.T) {
	f := setupPaymentService(t, "payment_verify_ok")
	signature := razorpay.SignPayload(testGatewaySecret, "order_rzp_1", "pay_1")

	order, err := f.paySvc.VerifyPayment(VerifyPaymentInput{
		GatewayOrderID: "order_rzp_1",
		PaymentID:      "pay_1",
		Signature:      signature,
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if order.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed got %s", order.PaymentStatus)
	}
	if order.Status != constants.OrderStatusConfirmed {
		t.Fatalf("order status want confirmed got %s", order.Status)
	}
	if order.RazorpayPaymentID != "pay_1" {
		t.Fatalf("payment id not stored: %s", order.RazorpayPaymentID)
	}
	if len(order.StatusHistory) != 1 {
		t.Fatalf("history want 1 entry got %d", len(order.StatusHistory))
	}

	var cartCount int64
	f.db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("cart should be cleared after settlement, got %d items", cartCount)
	}
}

func TestVerifyPaymentTamperedSignature(t *testing.T) {
	f := setupPaymentService(t, "payment_verify_bad")
	signature := razorpay.SignPayload("wrong_secret", "order_rzp_1", "pay_1")

	_, err := f.paySvc.VerifyPayment(VerifyPaymentInput{
		GatewayOrderID: "order_rzp_1",
		PaymentID:      "pay_1",
		Signature:      signature,
	})
	if !errors.Is(err, ErrPaymentSignatureInvalid) {
		t.Fatalf("expected signature invalid, got %v", err)
	}

	var reloaded models.Order
	if err := f.db.First(&reloaded, f.order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.PaymentStatus != constants.PaymentStatusFailed {
		t.Fatalf("payment status want failed got %s", reloaded.PaymentStatus)
	}
	// The order itself must not advance on a failed payment.
	if reloaded.Status != constants.OrderStatusPending {
		t.Fatalf("order status want pending got %s", reloaded.Status)
	}

	var cartCount int64
	f.db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	if cartCount != 1 {
		t.Fatalf("cart must stay intact on failed payment, got %d items", cartCount)
	}
}

func TestVerifyPaymentReplayIsIdempotent(t *testing.T) {
	f := setupPaymentService(t, "payment_verify_replay")
	signature := razorpay.SignPayload(testGatewaySecret, "order_rzp_1", "pay_1")
	input := VerifyPaymentInput{
		GatewayOrderID: "order_rzp_1",
		PaymentID:      "pay_1",
		Signature:      signature,
	}

	if _, err := f.paySvc.VerifyPayment(input); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	order, err := f.paySvc.VerifyPayment(input)
	if err != nil {
		t.Fatalf("replayed verify failed: %v", err)
	}
	if order.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed got %s", order.PaymentStatus)
	}

	var historyCount int64
	f.db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", f.order.ID).Count(&historyCount)
	if historyCount != 1 {
		t.Fatalf("replay must not append history, got %d entries", historyCount)
	}
}

func TestVerifyPaymentUnknownGatewayOrder(t *testing.T) {
	f := setupPaymentService(t, "payment_verify_unknown")
	signature := razorpay.SignPayload(testGatewaySecret, "order_rzp_other", "pay_1")

	_, err := f.paySvc.VerifyPayment(VerifyPaymentInput{
		GatewayOrderID: "order_rzp_other",
		PaymentID:      "pay_1",
		Signature:      signature,
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}
}
