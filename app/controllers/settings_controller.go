package controllers

import (
	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"github.com/Coinsnap/Bitcoin-Donation/app/repository"
	"github.com/gofiber/fiber/v2"
)

// UpdateSettingsRequest is the body for PUT /api/v1/admin/settings.
type UpdateSettingsRequest struct {
	SiteTitle        string `json:"site_title"`
	SiteDescription  string `json:"site_description"`
	ShoutoutsEnabled bool   `json:"shoutouts_enabled"`
	VotingEnabled    bool   `json:"voting_enabled"`
	DisplayCurrency  string `json:"display_currency"`
}

// HandleGetSettings returns the current application settings.
func HandleGetSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalFactory().GetSettingRepository().Get()
	if err != nil || settings == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "settings_unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

// HandleUpdateSettings validates and persists new application settings and
// swaps them in as the live configuration.
func HandleUpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body"})
	}

	settings := &models.AppSettings{
		SiteTitle:        req.SiteTitle,
		SiteDescription:  req.SiteDescription,
		ShoutoutsEnabled: req.ShoutoutsEnabled,
		VotingEnabled:    req.VotingEnabled,
		DisplayCurrency:  req.DisplayCurrency,
	}
	if err := settings.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed"})
	}

	if err := repository.GetGlobalFactory().GetSettingRepository().Save(settings); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "settings_save_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}
