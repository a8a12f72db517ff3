package models

import "time"

const (
	VotingPaymentStatusPending   = "pending"
	VotingPaymentStatusCompleted = "completed"
)

// VotingPayment records a settled poll-vote payment reported by the payment
// processor. The unique payment_id index absorbs webhook redelivery, so a
// retried delivery never produces a second row.
type VotingPayment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PaymentID   string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_voting_payments_payment_id" json:"payment_id"`
	OptionID    uint      `gorm:"not null" json:"option_id"`
	OptionTitle string    `gorm:"type:varchar(255);not null" json:"option_title"`
	PollID      uint      `gorm:"not null;index" json:"poll_id"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
