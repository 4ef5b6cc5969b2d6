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
	"gorm.io/gorm"
)

type returnServiceFixture struct {
	db   *gorm.DB
	svc  *ReturnService
	user models.User
}

func setupReturnService(t *testing.T, name string) *returnServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Order{}, &models.OrderItem{},
		&models.OrderStatusHistory{}, &models.ReturnRequest{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	user := models.User{Email: name + "@example.com", PasswordHash: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	svc := NewReturnService(
		repository.NewReturnRequestRepository(db),
		repository.NewOrderRepository(db),
	)
	return &returnServiceFixture{db: db, svc: svc, user: user}
}

func (f *returnServiceFixture) createDeliveredOrder(t *testing.T, orderNo string, deadline time.Time) (models.Order, models.OrderItem) {
	t.Helper()
	order := models.Order{
		OrderNo:       orderNo,
		UserID:        f.user.ID,
		Status:        constants.OrderStatusDelivered,
		PaymentStatus: constants.PaymentStatusCompleted,
		PaymentMethod: constants.PaymentMethodCOD,
	}
	if err := f.db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:        order.ID,
		ProductName:    "Returned Phone",
		Quantity:       1,
		ReturnDeadline: &deadline,
	}
	if err := f.db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}
	return order, item
}

func TestRequestReturnOpensPending(t *testing.T) {
	f := setupReturnService(t, "return_request")
	_, item := f.createDeliveredOrder(t, "FLG20260828100001", time.Now().Add(24*time.Hour))

	request, err := f.svc.RequestReturn(f.user.ID, item.ID, "Dead pixels")
	if err != nil {
		t.Fatalf("request return failed: %v", err)
	}
	if request.Status != constants.ReturnStatusPending {
		t.Fatalf("status want pending got %s", request.Status)
	}

	// The stored row carries the pending state, not some other spelling.
	var reloaded models.ReturnRequest
	if err := f.db.First(&reloaded, request.ID).Error; err != nil {
		t.Fatalf("reload request failed: %v", err)
	}
	if reloaded.Status != "pending" {
		t.Fatalf("stored status want pending got %s", reloaded.Status)
	}

	if _, err := f.svc.RequestReturn(f.user.ID, item.ID, "Again"); !errors.Is(err, ErrReturnAlreadyRequested) {
		t.Fatalf("expected already requested, got %v", err)
	}
}

func TestRequestReturnWindowAndStatusGuards(t *testing.T) {
	f := setupReturnService(t, "return_guards")

	_, expired := f.createDeliveredOrder(t, "FLG20260828100002", time.Now().Add(-time.Hour))
	if _, err := f.svc.RequestReturn(f.user.ID, expired.ID, "Too late"); !errors.Is(err, ErrReturnWindowClosed) {
		t.Fatalf("expected window closed, got %v", err)
	}

	shippedOrder, item := f.createDeliveredOrder(t, "FLG20260828100003", time.Now().Add(24*time.Hour))
	if err := f.db.Model(&models.Order{}).Where("id = ?", shippedOrder.ID).
		Update("status", constants.OrderStatusShipped).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}
	if _, err := f.svc.RequestReturn(f.user.ID, item.ID, "Not delivered"); !errors.Is(err, ErrReturnNotAllowed) {
		t.Fatalf("expected return not allowed, got %v", err)
	}
}

func TestReviewReturnCompletionFlipsOrder(t *testing.T) {
	f := setupReturnService(t, "return_review")
	order, item := f.createDeliveredOrder(t, "FLG20260828100004", time.Now().Add(24*time.Hour))

	request, err := f.svc.RequestReturn(f.user.ID, item.ID, "Wrong colour")
	if err != nil {
		t.Fatalf("request return failed: %v", err)
	}

	reviewed, err := f.svc.ReviewReturn(ReviewReturnInput{
		RequestID: request.ID,
		Status:    constants.ReturnStatusCompleted,
		AdminNote: "Refund issued",
	})
	if err != nil {
		t.Fatalf("review return failed: %v", err)
	}
	if reviewed.Status != constants.ReturnStatusCompleted || reviewed.ResolvedAt == nil {
		t.Fatalf("unexpected review state: %+v", reviewed)
	}

	// The last completed item flips the whole order to returned.
	var reloaded models.Order
	if err := f.db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusReturned {
		t.Fatalf("order status want returned got %s", reloaded.Status)
	}

	// Completed requests cannot be re-reviewed.
	if _, err := f.svc.ReviewReturn(ReviewReturnInput{
		RequestID: request.ID,
		Status:    constants.ReturnStatusRejected,
	}); !errors.Is(err, ErrReturnStatusInvalid) {
		t.Fatalf("expected status invalid, got %v", err)
	}
}
