package donation

import (
	"time"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the donation service.
type Repository interface {
	FindPendingShoutoutByInvoice(invoiceID string) (*models.Shoutout, error)
	PublishShoutout(id uint) error
	InsertVotingPaymentIfNotExists(payment *models.VotingPayment) (bool, error)
	CompletedVotingPaymentsByPoll(pollID uint) ([]models.VotingPayment, error)
	VotingPaymentStatus(paymentID string) (string, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a donation repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindPendingShoutoutByInvoice(invoiceID string) (*models.Shoutout, error) {
	var shoutout models.Shoutout
	// Limited to a single row. If several pending shoutouts share an invoice
	// id the store's default ordering decides which one gets published.
	err := r.db.
		Where("status = ? AND invoice_id = ?", models.ShoutoutStatusPending, invoiceID).
		First(&shoutout).Error
	if err != nil {
		return nil, err
	}
	return &shoutout, nil
}

func (r *gormRepository) PublishShoutout(id uint) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.ShoutoutStatusPublished,
		"published_at": &now,
	}
	return r.db.Model(&models.Shoutout{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) InsertVotingPaymentIfNotExists(payment *models.VotingPayment) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "payment_id"},
		},
		DoNothing: true,
	}).Create(payment)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *gormRepository) CompletedVotingPaymentsByPoll(pollID uint) ([]models.VotingPayment, error) {
	var payments []models.VotingPayment
	err := r.db.
		Where("status = ? AND poll_id = ?", models.VotingPaymentStatusCompleted, pollID).
		Find(&payments).Error
	return payments, err
}

func (r *gormRepository) VotingPaymentStatus(paymentID string) (string, error) {
	var payment models.VotingPayment
	err := r.db.Select("status").Where("payment_id = ?", paymentID).First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return payment.Status, nil
}
