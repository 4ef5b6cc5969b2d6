package service

import (
	"strings"

	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
)

// EngagementService covers the newsletter list and the contact inbox.
type EngagementService struct {
	newsletterRepo repository.NewsletterRepository
	contactRepo    repository.ContactRepository
}

// NewEngagementService creates the engagement service.
func NewEngagementService(newsletterRepo repository.NewsletterRepository, contactRepo repository.ContactRepository) *EngagementService {
	return &EngagementService{
		newsletterRepo: newsletterRepo,
		contactRepo:    contactRepo,
	}
}

// Subscribe adds an email to the newsletter. Re-subscribing reactivates.
func (s *EngagementService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	existing, err := s.newsletterRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsActive {
			existing.IsActive = true
			if err := s.newsletterRepo.Update(existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	subscriber := &models.NewsletterSubscriber{Email: normalized, IsActive: true}
	if err := s.newsletterRepo.Create(subscriber); err != nil {
		return nil, err
	}
	return subscriber, nil
}

// SubmitContact stores a contact form message.
func (s *EngagementService) SubmitContact(name, email, subject, message string) (*models.ContactMessage, error) {
	record := &models.ContactMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
	}
	if err := s.contactRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListContactMessages returns the inbox for staff.
func (s *EngagementService) ListContactMessages(onlyUnread bool, page, pageSize int) ([]models.ContactMessage, int64, error) {
	return s.contactRepo.List(onlyUnread, page, pageSize)
}

// MarkContactRead flags a message as handled.
func (s *EngagementService) MarkContactRead(id uint) error {
	return s.contactRepo.MarkRead(id)
}
