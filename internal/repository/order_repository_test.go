package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepoDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func createOrder(t *testing.T, db *gorm.DB, orderNo, status, paymentStatus string) *models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:       orderNo,
		UserID:        1,
		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: constants.PaymentMethodRazorpay,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return &order
}

func TestTransitionStatusGuard(t *testing.T) {
	db := setupOrderRepoDB(t, "order_transition")
	repo := NewOrderRepository(db)
	order := createOrder(t, db, "FLG20260828000001", constants.OrderStatusConfirmed, constants.PaymentStatusCompleted)

	now := time.Now()
	ok, err := repo.TransitionStatus(order.ID,
		[]string{constants.OrderStatusPending, constants.OrderStatusConfirmed},
		constants.OrderStatusCancelled, map[string]interface{}{"cancelled_at": now})
	if err != nil || !ok {
		t.Fatalf("transition from confirmed should win, ok=%v err=%v", ok, err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCancelled || reloaded.CancelledAt == nil {
		t.Fatalf("unexpected state after transition: %s cancelled_at=%v", reloaded.Status, reloaded.CancelledAt)
	}

	// The same flip from a state no longer in the from set must lose.
	ok, err = repo.TransitionStatus(order.ID,
		[]string{constants.OrderStatusPending, constants.OrderStatusConfirmed},
		constants.OrderStatusCancelled, nil)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if ok {
		t.Fatalf("transition from cancelled should be refused")
	}
}

func TestSettlePaymentExactlyOnce(t *testing.T) {
	db := setupOrderRepoDB(t, "order_settle")
	repo := NewOrderRepository(db)
	order := createOrder(t, db, "FLG20260828000002", constants.OrderStatusPending, constants.PaymentStatusPending)

	updates := map[string]interface{}{
		"payment_status":      constants.PaymentStatusCompleted,
		"status":              constants.OrderStatusConfirmed,
		"razorpay_payment_id": "pay_settle_1",
	}
	ok, err := repo.SettlePayment(order.ID, updates)
	if err != nil || !ok {
		t.Fatalf("first settlement should win, ok=%v err=%v", ok, err)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.PaymentStatus != constants.PaymentStatusCompleted ||
		reloaded.Status != constants.OrderStatusConfirmed ||
		reloaded.RazorpayPaymentID != "pay_settle_1" {
		t.Fatalf("unexpected state after settlement: %+v", reloaded)
	}

	// The replayed settlement finds the payment already completed.
	ok, err = repo.SettlePayment(order.ID, map[string]interface{}{
		"payment_status":      constants.PaymentStatusCompleted,
		"razorpay_payment_id": "pay_settle_2",
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if ok {
		t.Fatalf("settling a completed payment should be refused")
	}
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.RazorpayPaymentID != "pay_settle_1" {
		t.Fatalf("payment id must not change on replay, got %s", reloaded.RazorpayPaymentID)
	}
}

func TestSettlePaymentRetriesAfterFailure(t *testing.T) {
	db := setupOrderRepoDB(t, "order_settle_retry")
	repo := NewOrderRepository(db)
	order := createOrder(t, db, "FLG20260828000003", constants.OrderStatusPending, constants.PaymentStatusFailed)

	// A failed payment may settle on a later valid attempt.
	ok, err := repo.SettlePayment(order.ID, map[string]interface{}{
		"payment_status": constants.PaymentStatusCompleted,
		"status":         constants.OrderStatusConfirmed,
	})
	if err != nil || !ok {
		t.Fatalf("settlement after failure should win, ok=%v err=%v", ok, err)
	}
}
