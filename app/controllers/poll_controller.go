package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"github.com/Coinsnap/Bitcoin-Donation/app/repository"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/cache"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/database"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/donation"
	"github.com/gofiber/fiber/v2"
)

// Results are cached for a couple of seconds; widgets poll this endpoint
// aggressively while a vote is in flight.
const resultsCacheTTL = 2 * time.Second

func resultsCacheKey(pollID uint) string {
	return fmt.Sprintf("voting:results:%d", pollID)
}

var paymentIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// HandlePaymentStatusLongPoll blocks up to the waiter deadline until the
// given payment settles, then returns the poll's completed payments.
func HandlePaymentStatusLongPoll(c *fiber.Ctx) error {
	paymentID := c.Params("payment_id")
	if !paymentIDPattern.MatchString(paymentID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payment_id"})
	}
	pollID, err := parsePollID(c.Params("poll_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_poll_id"})
	}

	waiter := donation.NewStatusWaiter(
		donation.NewRepository(database.GetDB()),
		donation.NewRedisNotifier(cache.GetClient()),
	)

	status, err := waiter.AwaitSettlement(c.UserContext(), paymentID, pollID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away while we were waiting; nothing left to answer.
			return err
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "status_check_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

// HandleVotingResults returns all completed voting payments for a poll.
func HandleVotingResults(c *fiber.Ctx) error {
	pollID, err := parsePollID(c.Params("poll_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_poll_id"})
	}

	if cached, err := cache.Get(resultsCacheKey(pollID)); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).SendString(cached)
	}

	repo := repository.GetGlobalFactory().GetVotingPaymentRepository()
	results, err := repo.ListCompletedByPoll(pollID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "results_unavailable"})
	}
	if results == nil {
		results = []models.VotingPayment{}
	}
	total, err := repo.CountByPoll(pollID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "results_unavailable"})
	}

	payload, err := json.Marshal(fiber.Map{"results": results, "total": total})
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"results": results, "total": total})
	}
	_ = cache.Set(resultsCacheKey(pollID), payload, resultsCacheTTL)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(payload)
}

func parsePollID(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errors.New("poll id must be positive")
	}
	return uint(v), nil
}
