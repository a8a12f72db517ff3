package donation

import (
	"context"
	"time"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
)

const (
	// DefaultMaxWait bounds how long a status request may block.
	DefaultMaxWait = 5 * time.Second
	// DefaultPollInterval is the fallback store polling cadence.
	DefaultPollInterval = 1 * time.Second

	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// PollStatus is the long-poll response body.
type PollStatus struct {
	Status  string                 `json:"status"`
	Results []models.VotingPayment `json:"results,omitempty"`
}

// StatusWaiter answers "has payment X settled?" with a bounded wait. It
// subscribes to the settlement notifier and additionally re-checks the store
// every PollInterval, which covers publishes that fired before the subscribe
// and deployments without a pub/sub layer.
type StatusWaiter struct {
	repo     Repository
	notifier SettlementNotifier

	MaxWait      time.Duration
	PollInterval time.Duration
}

// NewStatusWaiter creates a waiter with the default 5s/1s timing.
func NewStatusWaiter(repo Repository, notifier SettlementNotifier) *StatusWaiter {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &StatusWaiter{
		repo:         repo,
		notifier:     notifier,
		MaxWait:      DefaultMaxWait,
		PollInterval: DefaultPollInterval,
	}
}

// AwaitSettlement blocks until the payment settles, the deadline passes, or
// ctx is canceled. The deadline is measured from request start, not from the
// last store check.
func (w *StatusWaiter) AwaitSettlement(ctx context.Context, paymentID string, pollID uint) (*PollStatus, error) {
	deadline := time.Now().Add(w.MaxWait)

	status, err := w.completedStatus(paymentID, pollID)
	if err != nil {
		return nil, err
	}
	if status != nil {
		return status, nil
	}

	var settled <-chan string
	if ch, cleanup, err := w.notifier.SubscribeSettled(ctx, paymentID); err == nil {
		settled = ch
		defer cleanup()
	}

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()
	timeout := time.NewTimer(time.Until(deadline))
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout.C:
			return &PollStatus{Status: StatusPending}, nil
		case <-settled:
		case <-ticker.C:
		}

		// Both wakeups re-check the store; the notification is a hint, the
		// voting payment row is the source of truth.
		status, err := w.completedStatus(paymentID, pollID)
		if err != nil {
			return nil, err
		}
		if status != nil {
			return status, nil
		}
	}
}

func (w *StatusWaiter) completedStatus(paymentID string, pollID uint) (*PollStatus, error) {
	current, err := w.repo.VotingPaymentStatus(paymentID)
	if err != nil {
		return nil, err
	}
	if current != models.VotingPaymentStatusCompleted {
		return nil, nil
	}

	results, err := w.repo.CompletedVotingPaymentsByPoll(pollID)
	if err != nil {
		return nil, err
	}
	return &PollStatus{Status: StatusCompleted, Results: results}, nil
}
