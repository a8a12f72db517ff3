package donation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"gorm.io/gorm"
)

type fakeRepo struct {
	mu sync.Mutex

	pendingByInvoice map[string]*models.Shoutout
	payments         map[string]*models.VotingPayment
	published        []uint

	findErr    error
	publishErr error
	insertErr  error
	statusErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pendingByInvoice: map[string]*models.Shoutout{},
		payments:         map[string]*models.VotingPayment{},
	}
}

func (f *fakeRepo) FindPendingShoutoutByInvoice(invoiceID string) (*models.Shoutout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	shoutout, ok := f.pendingByInvoice[invoiceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shoutout, nil
}

func (f *fakeRepo) PublishShoutout(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) InsertVotingPaymentIfNotExists(payment *models.VotingPayment) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if _, exists := f.payments[payment.PaymentID]; exists {
		return false, nil
	}
	f.payments[payment.PaymentID] = payment
	return true, nil
}

func (f *fakeRepo) CompletedVotingPaymentsByPoll(pollID uint) ([]models.VotingPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []models.VotingPayment
	for _, p := range f.payments {
		if p.PollID == pollID && p.Status == models.VotingPaymentStatusCompleted {
			results = append(results, *p)
		}
	}
	return results, nil
}

func (f *fakeRepo) VotingPaymentStatus(paymentID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return "", f.statusErr
	}
	payment, ok := f.payments[paymentID]
	if !ok {
		return "", nil
	}
	return payment.Status, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	published []string
	ch        chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan string, 4)}
}

func (f *fakeNotifier) PublishSettled(ctx context.Context, paymentID string) error {
	f.mu.Lock()
	f.published = append(f.published, paymentID)
	f.mu.Unlock()
	select {
	case f.ch <- paymentID:
	default:
	}
	return nil
}

func (f *fakeNotifier) SubscribeSettled(ctx context.Context, paymentID string) (<-chan string, func(), error) {
	return f.ch, func() {}, nil
}

func (f *fakeNotifier) publishedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.published...)
}

func votingEvent(invoiceID string) *WebhookEvent {
	return &WebhookEvent{
		Type:      EventTypeSettled,
		InvoiceID: invoiceID,
		Metadata: &WebhookMetadata{
			Type:     MetadataTypeVoting,
			OptionID: "2",
			Option:   "Yes",
			PollID:   "7",
		},
	}
}

func TestRouteEvent_IgnoresUnrecognizedTypes(t *testing.T) {
	repo := newFakeRepo()
	repo.pendingByInvoice["abc123"] = &models.Shoutout{ID: 1, InvoiceID: "abc123"}
	svc := NewService(repo, nil)

	result, err := svc.RouteEvent(context.Background(), &WebhookEvent{Type: "Charge", InvoiceID: "abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeIgnored {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeIgnored)
	}
	if len(repo.published) != 0 || len(repo.payments) != 0 {
		t.Fatalf("expected zero store mutations for ignored event")
	}
}

func TestRouteEvent_RecordsVotingPayment(t *testing.T) {
	repo := newFakeRepo()
	notifier := newFakeNotifier()
	svc := NewService(repo, notifier)

	result, err := svc.RouteEvent(context.Background(), votingEvent("inv42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeVoteRecorded {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeVoteRecorded)
	}
	if result.Duplicate {
		t.Fatalf("first delivery must not be a duplicate")
	}

	payment := repo.payments["inv42"]
	if payment == nil {
		t.Fatalf("expected voting payment row for inv42")
	}
	if payment.Status != models.VotingPaymentStatusCompleted {
		t.Fatalf("Status = %q, want completed", payment.Status)
	}
	if payment.OptionID != 2 || payment.PollID != 7 || payment.OptionTitle != "Yes" {
		t.Fatalf("unexpected payment fields: %+v", payment)
	}

	ids := notifier.publishedIDs()
	if len(ids) != 1 || ids[0] != "inv42" {
		t.Fatalf("expected settlement notification for inv42, got %v", ids)
	}
}

func TestRouteEvent_AbsorbsDuplicateVotingDelivery(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	if _, err := svc.RouteEvent(context.Background(), votingEvent("inv42")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := svc.RouteEvent(context.Background(), votingEvent("inv42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeVoteRecorded {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomeVoteRecorded)
	}
	if !result.Duplicate {
		t.Fatalf("redelivery must be flagged as duplicate")
	}
	if len(repo.payments) != 1 {
		t.Fatalf("expected exactly one payment row, got %d", len(repo.payments))
	}
}

func TestRouteEvent_NonNumericVotingIDs(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	event := votingEvent("inv42")
	event.Metadata.OptionID = "first"

	if _, err := svc.RouteEvent(context.Background(), event); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
}

func TestRouteEvent_PublishesPendingShoutout(t *testing.T) {
	repo := newFakeRepo()
	repo.pendingByInvoice["abc123"] = &models.Shoutout{ID: 9, InvoiceID: "abc123", Status: models.ShoutoutStatusPending}
	notifier := newFakeNotifier()
	svc := NewService(repo, notifier)

	result, err := svc.RouteEvent(context.Background(), &WebhookEvent{Type: EventTypeSettled, InvoiceID: "abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomePostPublished {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomePostPublished)
	}
	if result.ShoutoutID != 9 {
		t.Fatalf("ShoutoutID = %d, want 9", result.ShoutoutID)
	}
	if len(repo.published) != 1 || repo.published[0] != 9 {
		t.Fatalf("expected shoutout 9 to be published, got %v", repo.published)
	}
	if ids := notifier.publishedIDs(); len(ids) != 1 || ids[0] != "abc123" {
		t.Fatalf("expected settlement notification for abc123, got %v", ids)
	}
}

func TestRouteEvent_NoMatchingShoutout(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	result, err := svc.RouteEvent(context.Background(), &WebhookEvent{Type: EventTypeSettled, InvoiceID: "missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomePostNotFound {
		t.Fatalf("Outcome = %q, want %q", result.Outcome, OutcomePostNotFound)
	}
	if len(repo.published) != 0 {
		t.Fatalf("expected zero mutations when no shoutout matches")
	}
}

func TestRouteEvent_PublishFailureSurfacesError(t *testing.T) {
	repo := newFakeRepo()
	repo.pendingByInvoice["abc123"] = &models.Shoutout{ID: 1, InvoiceID: "abc123"}
	repo.publishErr = errors.New("deadlock")
	svc := NewService(repo, nil)

	if _, err := svc.RouteEvent(context.Background(), &WebhookEvent{Type: EventTypeSettled, InvoiceID: "abc123"}); err == nil {
		t.Fatalf("expected store failure to surface as error")
	}
}
