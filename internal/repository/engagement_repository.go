package repository

import (
	"errors"

	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository is the newsletter data access interface.
type NewsletterRepository interface {
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	Create(subscriber *models.NewsletterSubscriber) error
	Update(subscriber *models.NewsletterSubscriber) error
}

// GormNewsletterRepository is the GORM implementation.
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a newsletter repository.
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// GetByEmail fetches a subscriber by email.
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// Create inserts a subscriber.
func (r *GormNewsletterRepository) Create(subscriber *models.NewsletterSubscriber) error {
	return r.db.Create(subscriber).Error
}

// Update saves a subscriber.
func (r *GormNewsletterRepository) Update(subscriber *models.NewsletterSubscriber) error {
	return r.db.Save(subscriber).Error
}

// ContactRepository is the contact message data access interface.
type ContactRepository interface {
	GetByID(id uint) (*models.ContactMessage, error)
	List(onlyUnread bool, page, pageSize int) ([]models.ContactMessage, int64, error)
	Create(message *models.ContactMessage) error
	MarkRead(id uint) error
}

// GormContactRepository is the GORM implementation.
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a contact message repository.
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// GetByID fetches a contact message.
func (r *GormContactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// List returns contact messages, newest first.
func (r *GormContactRepository) List(onlyUnread bool, page, pageSize int) ([]models.ContactMessage, int64, error) {
	query := r.db.Model(&models.ContactMessage{})
	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var messages []models.ContactMessage
	if err := query.Order("id desc").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Create inserts a contact message.
func (r *GormContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// MarkRead flags a message as read.
func (r *GormContactRepository) MarkRead(id uint) error {
	return r.db.Model(&models.ContactMessage{}).Where("id = ?", id).UpdateColumn("is_read", true).Error
}
