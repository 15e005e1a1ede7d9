// internal/domain/marketing/entity.go
package marketing

import "time"

// NewsletterSubscriber represents one signed-up email address. Emails
// are stored lowercased; repeat signups are silently absorbed.
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage represents a submission from the contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	Email     string    `gorm:"not null;size:200" json:"email"`
	Subject   string    `gorm:"size:200" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (NewsletterSubscriber) TableName() string { return "newsletter_subscribers" }
func (ContactMessage) TableName() string       { return "contact_messages" }
