package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/Coinsnap/Bitcoin-Donation/app/controllers"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/constants"
)

// APIServer implements the public v1 API surface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// PostWebhook receives settlement callbacks from the payment processor.
// Authentication happens inside the controller (HMAC signature check), not
// through middleware, because it needs the raw request body.
func (s *APIServer) PostWebhook(c *fiber.Ctx) error {
	return controllers.HandleCoinsnapWebhook(c)
}

// GetPaymentStatus is the long-poll settlement endpoint.
func (s *APIServer) GetPaymentStatus(c *fiber.Ctx) error {
	return controllers.HandlePaymentStatusLongPoll(c)
}

// GetVotingResults returns completed voting payments for a poll.
func (s *APIServer) GetVotingResults(c *fiber.Ctx) error {
	return controllers.HandleVotingResults(c)
}

// PostShoutout creates a pending donation shoutout.
func (s *APIServer) PostShoutout(c *fiber.Ctx) error {
	return controllers.HandleCreateShoutout(c)
}

// GetShoutouts lists published shoutouts.
func (s *APIServer) GetShoutouts(c *fiber.Ctx) error {
	return controllers.HandleListShoutouts(c)
}

// GetShoutout returns one published shoutout by its public UUID.
func (s *APIServer) GetShoutout(c *fiber.Ctx) error {
	return controllers.HandleGetShoutout(c)
}

// GetSettings returns the live application settings.
func (s *APIServer) GetSettings(c *fiber.Ctx) error {
	return controllers.HandleGetSettings(c)
}

// PutSettings replaces the application settings.
func (s *APIServer) PutSettings(c *fiber.Ctx) error {
	return controllers.HandleUpdateSettings(c)
}

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// RegisterHandlers attaches all v1 routes to the given router group
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Post(constants.WebhookRoute, s.PostWebhook)
	router.Get(constants.PaymentStatusRoute, s.GetPaymentStatus)
	router.Get(constants.VotingResultsRoute, s.GetVotingResults)
	router.Post(constants.ShoutoutsRoute, s.PostShoutout)
	router.Get(constants.ShoutoutsRoute, s.GetShoutouts)
	router.Get(constants.ShoutoutByUUIDRoute, s.GetShoutout)
}

// RegisterAdminHandlers attaches the operator-only routes; the caller is
// expected to guard the group with auth middleware.
func RegisterAdminHandlers(router fiber.Router, s *APIServer) {
	router.Get(constants.SettingsRoute, s.GetSettings)
	router.Put(constants.SettingsRoute, s.PutSettings)
}
