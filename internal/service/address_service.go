package service

import (
	"github.com/2063ti/flugede-gadgets-store/internal/constants"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"gorm.io/gorm"
)

// AddressService manages user shipping addresses.
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService creates the address service.
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput is the typed create/update command.
type AddressInput struct {
	AddressType  string
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	IsDefault    bool
}

// List returns the user's addresses.
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// Create adds an address. Marking it default clears the previous default.
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	address := &models.Address{
		UserID:       userID,
		AddressType:  normalizeAddressType(input.AddressType),
		FullName:     input.FullName,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Pincode:      input.Pincode,
		IsDefault:    input.IsDefault,
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if input.IsDefault {
			if err := repo.ClearDefault(userID); err != nil {
				return err
			}
		}
		return repo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Update edits an address owned by the user.
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	address.AddressType = normalizeAddressType(input.AddressType)
	address.FullName = input.FullName
	address.Phone = input.Phone
	address.AddressLine1 = input.AddressLine1
	address.AddressLine2 = input.AddressLine2
	address.City = input.City
	address.State = input.State
	address.Pincode = input.Pincode
	address.IsDefault = input.IsDefault

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if input.IsDefault {
			if err := repo.ClearDefault(userID); err != nil {
				return err
			}
		}
		return repo.Update(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes an address owned by the user.
func (s *AddressService) Delete(userID, addressID uint) error {
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(addressID, userID)
}

func normalizeAddressType(addressType string) string {
	if addressType == constants.AddressTypeWork {
		return constants.AddressTypeWork
	}
	return constants.AddressTypeHome
}
