package constants

// Static route constants
const (
	APIRoute = "/api"

	WebhookRoute        = "/webhook"
	PaymentStatusRoute  = "/payment-status/:payment_id/:poll_id"
	VotingResultsRoute  = "/voting-results/:poll_id"
	ShoutoutsRoute      = "/shoutouts"
	ShoutoutByUUIDRoute = "/shoutouts/:uuid"
	SettingsRoute       = "/settings"
)
