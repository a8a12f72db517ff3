package controllers

import (
	"errors"

	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"github.com/Coinsnap/Bitcoin-Donation/app/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var shoutoutValidate = validator.New()

// CreateShoutoutRequest is the body for POST /api/v1/shoutouts.
type CreateShoutoutRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Message    string `json:"message" validate:"max=500"`
	AmountSats int64  `json:"amount_sats" validate:"required,gt=0"`
	InvoiceID  string `json:"invoice_id" validate:"required,max=191"`
}

// HandleCreateShoutout stores a pending shoutout for an invoice the client
// already created with the payment processor. The shoutout stays hidden
// until the settlement webhook publishes it.
func HandleCreateShoutout(c *fiber.Ctx) error {
	if settings := models.GetAppSettings(); settings != nil && !settings.IsShoutoutsEnabled() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "shoutouts_disabled"})
	}

	var req CreateShoutoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}
	if err := shoutoutValidate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed"})
	}

	shoutout := &models.Shoutout{
		Name:       req.Name,
		Message:    req.Message,
		AmountSats: req.AmountSats,
		InvoiceID:  req.InvoiceID,
		Status:     models.ShoutoutStatusPending,
	}

	repo := repository.GetGlobalFactory().GetShoutoutRepository()
	if err := repo.Create(shoutout); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "shoutout_create_failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(shoutout)
}

// HandleGetShoutout returns a single shoutout by its public UUID. Pending
// shoutouts stay hidden until the settlement webhook publishes them.
func HandleGetShoutout(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("uuid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_uuid"})
	}

	repo := repository.GetGlobalFactory().GetShoutoutRepository()
	shoutout, err := repo.GetByUUID(id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shoutout_not_found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "shoutout_unavailable"})
	}
	if !shoutout.IsPublished() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shoutout_not_found"})
	}

	return c.Status(fiber.StatusOK).JSON(shoutout)
}

// HandleListShoutouts returns published shoutouts, newest first. This feeds
// the public donation widget.
func HandleListShoutouts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}

	repo := repository.GetGlobalFactory().GetShoutoutRepository()
	shoutouts, err := repo.ListPublished(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "shoutouts_unavailable"})
	}
	if shoutouts == nil {
		shoutouts = []models.Shoutout{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"shoutouts": shoutouts})
}
