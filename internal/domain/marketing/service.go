// internal/domain/marketing/service.go
package marketing

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles newsletter signups and contact form submissions
type Service struct {
	db *gorm.DB
}

// NewService creates a new marketing service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubscribeRequest represents a newsletter signup
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Subscribe records a newsletter signup. Subscribing an address that
// is already on the list succeeds without creating a duplicate.
func (s *Service) Subscribe(req *SubscribeRequest) error {
	subscriber := NewsletterSubscriber{Email: NormalizeEmail(req.Email)}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&subscriber).Error
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// SubmitContact stores a contact form submission
func (s *Service) SubmitContact(req *ContactRequest) error {
	message := ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   NormalizeEmail(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.db.Create(&message).Error; err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	return nil
}

// GetSubscribers returns all newsletter subscribers, newest first (admin)
func (s *Service) GetSubscribers() ([]NewsletterSubscriber, error) {
	var subscribers []NewsletterSubscriber
	if err := s.db.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve subscribers: %w", err)
	}
	return subscribers, nil
}

// GetContactMessages returns all contact messages, newest first (admin)
func (s *Service) GetContactMessages() ([]ContactMessage, error) {
	var messages []ContactMessage
	if err := s.db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve contact messages: %w", err)
	}
	return messages, nil
}

// NormalizeEmail lowercases and trims an address for storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
