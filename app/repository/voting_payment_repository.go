package repository

import (
	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"gorm.io/gorm"
)

// votingPaymentRepository implements the VotingPaymentRepository interface
type votingPaymentRepository struct {
	db *gorm.DB
}

// NewVotingPaymentRepository creates a new voting payment repository instance
func NewVotingPaymentRepository(db *gorm.DB) VotingPaymentRepository {
	return &votingPaymentRepository{db: db}
}

// ListCompletedByPoll retrieves all completed voting payments for a poll
func (r *votingPaymentRepository) ListCompletedByPoll(pollID uint) ([]models.VotingPayment, error) {
	var payments []models.VotingPayment
	err := r.db.Where("status = ? AND poll_id = ?", models.VotingPaymentStatusCompleted, pollID).
		Find(&payments).Error
	return payments, err
}

// CountByPoll returns the number of completed voting payments for a poll
func (r *votingPaymentRepository) CountByPoll(pollID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.VotingPayment{}).
		Where("status = ? AND poll_id = ?", models.VotingPaymentStatusCompleted, pollID).
		Count(&count).Error
	return count, err
}
