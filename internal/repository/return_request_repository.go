package repository

import (
	"errors"

	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"gorm.io/gorm"
)

// ReturnRequestRepository is the return request data access interface.
type ReturnRequestRepository interface {
	GetByID(id uint) (*models.ReturnRequest, error)
	GetByOrderItemID(orderItemID uint) (*models.ReturnRequest, error)
	List(filter ReturnListFilter) ([]models.ReturnRequest, int64, error)
	Create(request *models.ReturnRequest) error
	Update(request *models.ReturnRequest) error
	WithTx(tx *gorm.DB) *GormReturnRequestRepository
}

// ReturnListFilter filters return request listings.
type ReturnListFilter struct {
	UserID   uint
	Status   string
	Page     int
	PageSize int
}

// GormReturnRequestRepository is the GORM implementation.
type GormReturnRequestRepository struct {
	db *gorm.DB
}

// NewReturnRequestRepository creates a return request repository.
func NewReturnRequestRepository(db *gorm.DB) *GormReturnRequestRepository {
	return &GormReturnRequestRepository{db: db}
}

// WithTx rebinds the repository to a transaction.
func (r *GormReturnRequestRepository) WithTx(tx *gorm.DB) *GormReturnRequestRepository {
	if tx == nil {
		return r
	}
	return &GormReturnRequestRepository{db: tx}
}

// GetByID fetches a return request.
func (r *GormReturnRequestRepository) GetByID(id uint) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	if err := r.db.Preload("OrderItem").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByOrderItemID fetches the return request for one order item.
func (r *GormReturnRequestRepository) GetByOrderItemID(orderItemID uint) (*models.ReturnRequest, error) {
	var request models.ReturnRequest
	if err := r.db.Where("order_item_id = ?", orderItemID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List returns return requests matching the filter.
func (r *GormReturnRequestRepository) List(filter ReturnListFilter) ([]models.ReturnRequest, int64, error) {
	query := r.db.Model(&models.ReturnRequest{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var requests []models.ReturnRequest
	if err := query.Preload("OrderItem").Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Create inserts a return request.
func (r *GormReturnRequestRepository) Create(request *models.ReturnRequest) error {
	return r.db.Create(request).Error
}

// Update saves a return request.
func (r *GormReturnRequestRepository) Update(request *models.ReturnRequest) error {
	return r.db.Save(request).Error
}
