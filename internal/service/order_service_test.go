package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var orderNoPattern = regexp.MustCompile(`^FLG\d{14}$`)

type orderServiceFixture struct {
	db      *gorm.DB
	svc     *OrderService
	user    models.User
	address models.Address
	product models.Product
}

func setupOrderServiceDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Brand{},
		&models.Product{}, &models.Address{}, &models.CartItem{},
		&models.Coupon{}, &models.Order{}, &models.OrderItem{},
		&models.OrderStatusHistory{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
	return db
}

func setupOrderService(t *testing.T, name string) *orderServiceFixture {
	t.Helper()
	db := setupOrderServiceDB(t, name)

	user := models.User{Email: name + "@example.com", PasswordHash: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	category := models.Category{Name: "Phones", Slug: name + "-phones", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product := models.Product{
		Name:       "Test Phone",
		Slug:       name + "-phone",
		CategoryID: category.ID,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(600)),
		Stock:      10,
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	address := models.Address{
		UserID:       user.ID,
		FullName:     "Test User",
		Phone:        "9999999999",
		AddressLine1: "1 Test Street",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	couponRepo := repository.NewCouponRepository(db)
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		couponRepo,
		repository.NewAddressRepository(db),
		NewCouponService(couponRepo),
		nil,
		"INR",
		nil,
		0,
	)
	return &orderServiceFixture{db: db, svc: svc, user: user, address: address, product: product}
}

func (f *orderServiceFixture) addToCart(t *testing.T, productID uint, qty int) {
	t.Helper()
	item := models.CartItem{UserID: f.user.ID, ProductID: productID, Quantity: qty}
	if err := f.db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func (f *orderServiceFixture) productStock(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	if err := f.db.First(&p, id).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return p.Stock
}

func TestPlaceOrderCOD(t *testing.T) {
	f := setupOrderService(t, "order_place_cod")
	f.addToCart(t, f.product.ID, 1)

	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if !orderNoPattern.MatchString(order.OrderNo) {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", order.Status)
	}
	if order.Subtotal.String() != "600.00" || order.TaxAmount.String() != "108.00" ||
		order.ShippingAmount.String() != "0.00" || order.TotalAmount.String() != "708.00" {
		t.Fatalf("unexpected totals: %s %s %s %s",
			order.Subtotal, order.TaxAmount, order.ShippingAmount, order.TotalAmount)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 1 {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
	if len(order.StatusHistory) != 2 {
		t.Fatalf("history want 2 entries got %d", len(order.StatusHistory))
	}
	if got := f.productStock(t, f.product.ID); got != 9 {
		t.Fatalf("stock want 9 got %d", got)
	}

	var cartCount int64
	f.db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("cart should be empty after COD order, got %d items", cartCount)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	f := setupOrderService(t, "order_place_nostock")

	scarce := models.Product{
		Name:       "Scarce Item",
		Slug:       "order-place-nostock-scarce",
		CategoryID: f.product.CategoryID,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:      1,
		IsActive:   true,
	}
	if err := f.db.Create(&scarce).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	f.addToCart(t, f.product.ID, 2)
	f.addToCart(t, scarce.ID, 3)

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got %v", err)
	}

	// The first reservation must roll back with the transaction.
	if got := f.productStock(t, f.product.ID); got != 10 {
		t.Fatalf("stock want 10 after rollback got %d", got)
	}
	var orderCount int64
	f.db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("no order should persist, got %d", orderCount)
	}
}

func TestPlaceOrderCouponRedeemedOnce(t *testing.T) {
	f := setupOrderService(t, "order_place_coupon")
	now := time.Now()
	coupon := models.Coupon{
		Code:          "ONCE",
		DiscountType:  constants.CouponTypeFixed,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		ValidFrom:     now.Add(-time.Hour),
		ValidTo:       now.Add(time.Hour),
		UsageLimit:    1,
		IsActive:      true,
	}
	if err := f.db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	f.addToCart(t, f.product.ID, 1)
	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
		CouponCode:    "once",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.DiscountAmount.String() != "100.00" || order.TotalAmount.String() != "608.00" {
		t.Fatalf("unexpected discount/total: %s %s", order.DiscountAmount, order.TotalAmount)
	}

	var reloaded models.Coupon
	if err := f.db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("used count want 1 got %d", reloaded.UsedCount)
	}

	// Exhausted coupon rejects the next order.
	f.addToCart(t, f.product.ID, 1)
	_, err = f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
		CouponCode:    "ONCE",
	})
	if !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected usage limit, got %v", err)
	}
}

func TestPlaceOrderRazorpayRequiresGateway(t *testing.T) {
	f := setupOrderService(t, "order_place_nogateway")
	f.addToCart(t, f.product.ID, 1)

	_, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodRazorpay,
	})
	if !errors.Is(err, ErrPaymentGatewayConfig) {
		t.Fatalf("expected gateway config error, got %v", err)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := setupOrderService(t, "order_cancel")
	f.addToCart(t, f.product.ID, 2)

	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if got := f.productStock(t, f.product.ID); got != 8 {
		t.Fatalf("stock want 8 got %d", got)
	}

	cancelled, err := f.svc.CancelOrder(f.user.ID, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want cancelled got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("cancelled_at should be set")
	}
	if got := f.productStock(t, f.product.ID); got != 10 {
		t.Fatalf("stock want 10 after cancel got %d", got)
	}
}

func TestCancelAfterCancelDoesNotRestoreTwice(t *testing.T) {
	f := setupOrderService(t, "order_cancel_race")
	f.addToCart(t, f.product.ID, 2)

	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if _, err := f.svc.CancelOrder(f.user.ID, order.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got := f.productStock(t, f.product.ID); got != 10 {
		t.Fatalf("stock want 10 after cancel got %d", got)
	}

	// A second canceller that already passed its pre-check must lose the
	// conditional status flip and leave stock alone.
	err = f.svc.cancelAndRestore(order.ID, "Order cancelled by user", false,
		constants.OrderStatusPending, constants.OrderStatusConfirmed)
	if !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected cancel not allowed, got %v", err)
	}
	if got := f.productStock(t, f.product.ID); got != 10 {
		t.Fatalf("stock must not be restored twice, want 10 got %d", got)
	}

	// The expiry path treats the lost race as already handled.
	if err := f.svc.CancelExpired(order.ID); err != nil {
		t.Fatalf("cancel expired after cancel should be nil, got %v", err)
	}
	if got := f.productStock(t, f.product.ID); got != 10 {
		t.Fatalf("stock want 10 after expiry no-op got %d", got)
	}

	var historyCount int64
	f.db.Model(&models.OrderStatusHistory{}).
		Where("order_id = ? AND status = ?", order.ID, constants.OrderStatusCancelled).
		Count(&historyCount)
	if historyCount != 1 {
		t.Fatalf("cancellation history want 1 entry got %d", historyCount)
	}
}

func TestCancelOrderRejectedAfterShipping(t *testing.T) {
	f := setupOrderService(t, "order_cancel_shipped")
	f.addToCart(t, f.product.ID, 1)

	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if err := f.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusShipped).Error; err != nil {
		t.Fatalf("force status failed: %v", err)
	}

	if _, err := f.svc.CancelOrder(f.user.ID, order.ID); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected cancel not allowed, got %v", err)
	}
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	f := setupOrderService(t, "order_transitions")
	f.addToCart(t, f.product.ID, 1)

	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// confirmed -> delivered skips steps and must be rejected.
	_, err = f.svc.UpdateOrderStatus(UpdateOrderStatusInput{
		OrderID: order.ID,
		Status:  constants.OrderStatusDelivered,
	})
	if !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected transition invalid, got %v", err)
	}

	updated, err := f.svc.UpdateOrderStatus(UpdateOrderStatusInput{
		OrderID: order.ID,
		Status:  constants.OrderStatusPacked,
	})
	if err != nil {
		t.Fatalf("packed transition failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPacked {
		t.Fatalf("status want packed got %s", updated.Status)
	}

	updated, err = f.svc.UpdateOrderStatus(UpdateOrderStatusInput{
		OrderID:        order.ID,
		Status:         constants.OrderStatusShipped,
		TrackingNumber: "TRK123",
	})
	if err != nil {
		t.Fatalf("shipped transition failed: %v", err)
	}
	if updated.TrackingNumber != "TRK123" {
		t.Fatalf("tracking number not stored: %s", updated.TrackingNumber)
	}

	// Force jumps straight to delivered and stamps the delivery time.
	updated, err = f.svc.UpdateOrderStatus(UpdateOrderStatusInput{
		OrderID: order.ID,
		Status:  constants.OrderStatusDelivered,
		Force:   true,
	})
	if err != nil {
		t.Fatalf("forced transition failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered || updated.DeliveredAt == nil {
		t.Fatalf("unexpected delivered state: %+v", updated)
	}

	if _, err := f.svc.UpdateOrderStatus(UpdateOrderStatusInput{
		OrderID: order.ID,
		Status:  "teleported",
	}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid, got %v", err)
	}
}

func TestCancelExpiredSkipsPaidOrders(t *testing.T) {
	f := setupOrderService(t, "order_expire")
	f.addToCart(t, f.product.ID, 1)

	order, err := f.svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        f.user.ID,
		AddressID:     f.address.ID,
		PaymentMethod: constants.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// COD orders are confirmed immediately and never expire.
	if err := f.svc.CancelExpired(order.ID); err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	reloaded, err := f.svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", reloaded.Status)
	}

	// Unknown orders are a no-op, not an error.
	if err := f.svc.CancelExpired(99999); err != nil {
		t.Fatalf("cancel expired for missing order should be nil, got %v", err)
	}
}
