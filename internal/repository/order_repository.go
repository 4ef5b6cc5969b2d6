package repository

import (
	"errors"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetByRazorpayOrderID(razorpayOrderID string) (*models.Order, error)
	GetItemByID(itemID uint) (*models.OrderItem, error)
	ExistsByOrderNo(orderNo string) (bool, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	TransitionStatus(id uint, from []string, status string, updates map[string]interface{}) (bool, error)
	UpdateFields(id uint, updates map[string]interface{}) error
	SettlePayment(id uint, updates map[string]interface{}) (bool, error)
	AppendStatusHistory(entry *models.OrderStatusHistory) error
	CountUnreturnedItems(orderID uint) (int64, error)
	UserHasDeliveredProduct(userID, productID uint) (bool, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	UserID        uint
	Status        string
	PaymentStatus string
	OrderNo       string
	Page          int
	PageSize      int
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts the order together with its item snapshot.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
		order.Items = items
	}
	return nil
}

func (r *GormOrderRepository) preloadOrder(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").
		Preload("Address").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") })
}

// GetByID fetches an order with items, address and history.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.preloadOrder(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser fetches an order owned by the user.
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.preloadOrder(r.db).Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo fetches an order by its order number.
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	err := r.preloadOrder(r.db).Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByRazorpayOrderID fetches an order by the gateway order id.
func (r *GormOrderRepository) GetByRazorpayOrderID(razorpayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.preloadOrder(r.db).Where("razorpay_order_id = ?", razorpayOrderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetItemByID fetches one order item.
func (r *GormOrderRepository) GetItemByID(itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ExistsByOrderNo reports whether an order number is taken.
func (r *GormOrderRepository) ExistsByOrderNo(orderNo string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("order_no = ?", orderNo).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the user's orders, newest first.
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	return r.list(query, filter)
}

// ListAdmin returns orders across all users.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return r.list(query, filter)
}

func (r *GormOrderRepository) list(query *gorm.DB, filter OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus sets the order status plus any extra columns.
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// TransitionStatus flips the status only when the current status is one of
// from. The returned bool is false when another writer got there first.
func (r *GormOrderRepository) TransitionStatus(id uint, from []string, status string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateFields applies a partial update.
func (r *GormOrderRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// SettlePayment applies the settlement update only while the payment is
// still unsettled (pending or failed), so concurrent gateway retries settle
// exactly once. A failed payment may still settle on a later valid retry.
func (r *GormOrderRepository) SettlePayment(id uint, updates map[string]interface{}) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND payment_status IN ?", id, []string{
			constants.PaymentStatusPending,
			constants.PaymentStatusFailed,
		}).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AppendStatusHistory inserts one history row.
func (r *GormOrderRepository) AppendStatusHistory(entry *models.OrderStatusHistory) error {
	return r.db.Create(entry).Error
}

// UserHasDeliveredProduct reports whether the user has a delivered order
// containing the product.
func (r *GormOrderRepository) UserHasDeliveredProduct(userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ?", userID, constants.OrderStatusDelivered).
		Where("order_items.product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUnreturnedItems counts items on the order without a completed return.
func (r *GormOrderRepository) CountUnreturnedItems(orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Where("id NOT IN (?)", r.db.Model(&models.ReturnRequest{}).
			Select("order_item_id").
			Where("status = ?", constants.ReturnStatusCompleted)).
		Count(&count).Error
	return count, err
}
