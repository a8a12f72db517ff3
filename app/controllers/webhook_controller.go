package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/Coinsnap/Bitcoin-Donation/app/repository"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/cache"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/database"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/donation"
	"github.com/gofiber/fiber/v2"
)

// HandleCoinsnapWebhook processes payment-processor callbacks. Signature
// verification is the authorization gate: the payload is not parsed, let
// alone routed, before the HMAC check passes.
func HandleCoinsnapWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := firstHeaderValue(c, "X-Coinsnap-Sig", "btcpay_sig")
	if signature == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing_signature"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	secrets := donation.NewSecretProvider(repository.GetGlobalFactory().GetSettingRepository())
	secret, err := secrets.GetOrCreate(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "secret_unavailable"})
	}

	if !donation.VerifyWebhookSignature(rawBody, signature, secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	event, err := donation.ParseWebhookEvent(rawBody)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	svc := donation.NewServiceFromDB(database.GetDB(), donation.NewRedisNotifier(cache.GetClient()))
	result, err := svc.RouteEvent(ctx, event)
	if err != nil {
		if errors.Is(err, donation.ErrMalformedEvent) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}

	switch result.Outcome {
	case donation.OutcomeIgnored:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	case donation.OutcomeVoteRecorded:
		if result.Duplicate {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
		}
		if pollID, err := event.Metadata.PollID.Uint(); err == nil {
			// Drop the cached tally so result polls see the new vote right away.
			_ = cache.Delete(resultsCacheKey(pollID))
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	case donation.OutcomePostNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no_matching_post"})
	case donation.OutcomePostPublished:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "shoutout_id": result.ShoutoutID})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "unknown_outcome"})
	}
}
