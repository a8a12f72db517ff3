package repository

import (
	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"gorm.io/gorm"
)

// SettingRepository defines the interface for setting-related database operations
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	CreateIfNotExists(setting *models.Setting) (bool, error)
}

// ShoutoutRepository defines the interface for shoutout-related database operations
type ShoutoutRepository interface {
	Create(shoutout *models.Shoutout) error
	GetByUUID(uuid string) (*models.Shoutout, error)
	ListPublished(limit int) ([]models.Shoutout, error)
}

// VotingPaymentRepository defines the interface for voting-payment read operations
type VotingPaymentRepository interface {
	ListCompletedByPoll(pollID uint) ([]models.VotingPayment, error)
	CountByPoll(pollID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Setting       SettingRepository
	Shoutout      ShoutoutRepository
	VotingPayment VotingPaymentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Setting:       NewSettingRepository(db),
		Shoutout:      NewShoutoutRepository(db),
		VotingPayment: NewVotingPaymentRepository(db),
	}
}
