package service

import (
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"gorm.io/gorm"
)

// ReturnService handles the item return flow.
type ReturnService struct {
	returnRepo repository.ReturnRequestRepository
	orderRepo  repository.OrderRepository
}

// NewReturnService creates the return service.
func NewReturnService(returnRepo repository.ReturnRequestRepository, orderRepo repository.OrderRepository) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
	}
}

// RequestReturn opens a return for one delivered order item, inside its
// return window.
func (s *ReturnService) RequestReturn(userID, orderItemID uint, reason string) (*models.ReturnRequest, error) {
	item, err := s.orderRepo.GetItemByID(orderItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrOrderItemNotFound
	}

	order, err := s.orderRepo.GetByIDAndUser(item.OrderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderItemNotFound
	}
	if order.Status != constants.OrderStatusDelivered {
		return nil, ErrReturnNotAllowed
	}
	if item.ReturnDeadline == nil || time.Now().After(*item.ReturnDeadline) {
		return nil, ErrReturnWindowClosed
	}

	existing, err := s.returnRepo.GetByOrderItemID(orderItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReturnAlreadyRequested
	}

	request := &models.ReturnRequest{
		OrderItemID: orderItemID,
		UserID:      userID,
		Reason:      reason,
		Status:      constants.ReturnStatusPending,
	}
	if err := s.returnRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListUserReturns lists the user's return requests.
func (s *ReturnService) ListUserReturns(userID uint, page, pageSize int) ([]models.ReturnRequest, int64, error) {
	return s.returnRepo.List(repository.ReturnListFilter{UserID: userID, Page: page, PageSize: pageSize})
}

// ListReturns lists return requests for staff.
func (s *ReturnService) ListReturns(filter repository.ReturnListFilter) ([]models.ReturnRequest, int64, error) {
	return s.returnRepo.List(filter)
}

// ReviewReturnInput is the typed admin decision.
type ReviewReturnInput struct {
	RequestID uint
	Status    string // approved / rejected / completed
	AdminNote string
}

// ReviewReturn moves a return request through approval. Completing the last
// open item flips the parent order to returned.
func (s *ReturnService) ReviewReturn(input ReviewReturnInput) (*models.ReturnRequest, error) {
	switch input.Status {
	case constants.ReturnStatusApproved, constants.ReturnStatusRejected, constants.ReturnStatusCompleted:
	default:
		return nil, ErrReturnStatusInvalid
	}

	request, err := s.returnRepo.GetByID(input.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrReturnNotFound
	}
	if request.Status == constants.ReturnStatusCompleted || request.Status == constants.ReturnStatusRejected {
		return nil, ErrReturnStatusInvalid
	}

	now := time.Now()
	request.Status = input.Status
	request.AdminNote = input.AdminNote
	request.ResolvedAt = &now

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.returnRepo.WithTx(tx).Update(request); err != nil {
			return err
		}
		if input.Status != constants.ReturnStatusCompleted || request.OrderItem == nil {
			return nil
		}

		orderRepo := s.orderRepo.WithTx(tx)
		remaining, err := orderRepo.CountUnreturnedItems(request.OrderItem.OrderID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		if err := orderRepo.UpdateStatus(request.OrderItem.OrderID, constants.OrderStatusReturned, nil); err != nil {
			return err
		}
		return orderRepo.AppendStatusHistory(&models.OrderStatusHistory{
			OrderID: request.OrderItem.OrderID,
			Status:  constants.OrderStatusReturned,
			Note:    "All items returned",
		})
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}
