package donation

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const settledChannelPrefix = "donation:settled:"

// SettlementNotifier bridges the webhook handler and waiting long-poll
// requests: the webhook side publishes once a payment settles, pollers
// subscribe on the payment id instead of hammering the database.
type SettlementNotifier interface {
	PublishSettled(ctx context.Context, paymentID string) error
	// SubscribeSettled returns a channel that receives the payment id when it
	// settles, plus a cleanup func the caller must invoke.
	SubscribeSettled(ctx context.Context, paymentID string) (<-chan string, func(), error)
}

type redisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier on top of a Redis pub/sub client.
func NewRedisNotifier(client *redis.Client) SettlementNotifier {
	return &redisNotifier{client: client}
}

func (n *redisNotifier) PublishSettled(ctx context.Context, paymentID string) error {
	return n.client.Publish(ctx, settledChannelPrefix+paymentID, paymentID).Err()
}

func (n *redisNotifier) SubscribeSettled(ctx context.Context, paymentID string) (<-chan string, func(), error) {
	sub := n.client.Subscribe(ctx, settledChannelPrefix+paymentID)
	// Receive forces the SUBSCRIBE round trip so no publish is lost between
	// subscribing and the first channel read.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			default:
			}
		}
	}()

	cleanup := func() { _ = sub.Close() }
	return out, cleanup, nil
}

// NopNotifier is used where no pub/sub layer is available; the long-poll
// waiter then falls back to interval polling only.
type NopNotifier struct{}

func (NopNotifier) PublishSettled(ctx context.Context, paymentID string) error {
	return nil
}

func (NopNotifier) SubscribeSettled(ctx context.Context, paymentID string) (<-chan string, func(), error) {
	return nil, func() {}, nil
}
