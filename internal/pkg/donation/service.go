package donation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"gorm.io/gorm"
)

// Service routes authenticated webhook events into state transitions. Read
// paths live in app/repository; the long-poll waiter has its own view.
type Service struct {
	repo     Repository
	notifier SettlementNotifier
}

// NewService creates a donation service from injected collaborators.
func NewService(repo Repository, notifier SettlementNotifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{repo: repo, notifier: notifier}
}

// NewServiceFromDB creates a donation service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, notifier SettlementNotifier) *Service {
	return NewService(NewRepository(db), notifier)
}

// RouteEvent applies a parsed webhook event to local state.
//
// Settlement events with the voting discriminator insert a completed voting
// payment; redelivery of the same payment id is absorbed by the unique key
// and reported via RouteResult.Duplicate. All other settlement events publish
// the pending shoutout matching the invoice. Non-settlement events are inert.
func (s *Service) RouteEvent(ctx context.Context, event *WebhookEvent) (*RouteResult, error) {
	if event == nil || !event.IsSettlement() {
		return &RouteResult{Outcome: OutcomeIgnored}, nil
	}

	if event.IsVoting() {
		return s.recordVotingPayment(ctx, event)
	}

	shoutout, err := s.repo.FindPendingShoutoutByInvoice(event.InvoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &RouteResult{Outcome: OutcomePostNotFound}, nil
		}
		return nil, fmt.Errorf("shoutout lookup failed: %w", err)
	}

	if err := s.repo.PublishShoutout(shoutout.ID); err != nil {
		return nil, fmt.Errorf("shoutout publish failed: %w", err)
	}

	// Publishing an already-settled invoice a second time is a no-op: the
	// redelivered webhook finds no pending row and reports not-found.
	_ = s.notifier.PublishSettled(ctx, event.InvoiceID)

	return &RouteResult{Outcome: OutcomePostPublished, ShoutoutID: shoutout.ID}, nil
}

func (s *Service) recordVotingPayment(ctx context.Context, event *WebhookEvent) (*RouteResult, error) {
	meta := event.Metadata

	optionID, err := meta.OptionID.Uint()
	if err != nil {
		return nil, fmt.Errorf("%w: optionId %q is not numeric", ErrMalformedEvent, meta.OptionID)
	}
	pollID, err := meta.PollID.Uint()
	if err != nil {
		return nil, fmt.Errorf("%w: pollId %q is not numeric", ErrMalformedEvent, meta.PollID)
	}

	payment := &models.VotingPayment{
		PaymentID:   event.InvoiceID,
		OptionID:    optionID,
		OptionTitle: meta.Option,
		PollID:      pollID,
		Status:      models.VotingPaymentStatusCompleted,
	}

	created, err := s.repo.InsertVotingPaymentIfNotExists(payment)
	if err != nil {
		return nil, fmt.Errorf("voting payment insert failed: %w", err)
	}

	_ = s.notifier.PublishSettled(ctx, event.InvoiceID)

	return &RouteResult{Outcome: OutcomeVoteRecorded, Duplicate: !created}, nil
}
