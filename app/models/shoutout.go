package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ShoutoutStatusPending   = "pending"
	ShoutoutStatusPublished = "published"
)

// Shoutout is a donation message submitted alongside a Bitcoin payment.
// It stays pending until the payment processor reports the invoice settled.
type Shoutout struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UUID        string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Message     string     `gorm:"type:varchar(500);not null" json:"message"`
	AmountSats  int64      `gorm:"not null;default:0" json:"amount_sats"`
	InvoiceID   string     `gorm:"type:varchar(191);not null;index" json:"invoice_id"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PublishedAt *time.Time `gorm:"type:timestamp;default:null" json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate generates the public UUID if not set
func (s *Shoutout) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = ShoutoutStatusPending
	}
	return nil
}

// IsPublished checks if the shoutout has been published
func (s *Shoutout) IsPublished() bool {
	return s.Status == ShoutoutStatusPublished
}
