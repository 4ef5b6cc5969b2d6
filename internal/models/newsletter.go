package models

import (
	"time"
)

// NewsletterSubscriber is an email on the marketing list.
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name.
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
