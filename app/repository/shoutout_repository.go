package repository

import (
	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"gorm.io/gorm"
)

// shoutoutRepository implements the ShoutoutRepository interface
type shoutoutRepository struct {
	db *gorm.DB
}

// NewShoutoutRepository creates a new shoutout repository instance
func NewShoutoutRepository(db *gorm.DB) ShoutoutRepository {
	return &shoutoutRepository{db: db}
}

// Create creates a new shoutout in the database
func (r *shoutoutRepository) Create(shoutout *models.Shoutout) error {
	return r.db.Create(shoutout).Error
}

// GetByUUID retrieves a shoutout by its public UUID
func (r *shoutoutRepository) GetByUUID(uuid string) (*models.Shoutout, error) {
	var shoutout models.Shoutout
	err := r.db.Where("uuid = ?", uuid).First(&shoutout).Error
	if err != nil {
		return nil, err
	}
	return &shoutout, nil
}

// ListPublished retrieves published shoutouts, newest first
func (r *shoutoutRepository) ListPublished(limit int) ([]models.Shoutout, error) {
	var shoutouts []models.Shoutout
	err := r.db.Where("status = ?", models.ShoutoutStatusPublished).
		Order("published_at DESC").Limit(limit).Find(&shoutouts).Error
	return shoutouts, err
}
