package router

import (
	"github.com/Coinsnap/Bitcoin-Donation/app/models"
	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Root status route used by uptime checks and the donation widget to
	// discover whether the service accepts shoutouts/votes right now.
	app.Get("/", func(c *fiber.Ctx) error {
		settings := models.GetAppSettings()
		info := fiber.Map{
			"service": "bitcoin-donation",
			"status":  "ok",
		}
		if settings != nil {
			info["site_title"] = settings.GetSiteTitle()
			info["shoutouts_enabled"] = settings.IsShoutoutsEnabled()
			info["voting_enabled"] = settings.IsVotingEnabled()
		}
		return c.Status(fiber.StatusOK).JSON(info)
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
