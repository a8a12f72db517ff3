package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newPollTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/payment-status/:payment_id/:poll_id", HandlePaymentStatusLongPoll)
	app.Get("/voting-results/:poll_id", HandleVotingResults)
	return app
}

func TestHandlePaymentStatusLongPoll_ParamValidation(t *testing.T) {
	app := newPollTestApp()

	tests := []struct {
		path string
	}{
		{path: "/payment-status/inv$42/7"},  // non-alphanumeric payment id
		{path: "/payment-status/inv42/0"},   // poll id must be positive
		{path: "/payment-status/inv42/abc"}, // poll id must be numeric
		{path: "/payment-status/inv42/-1"},  // negative poll id
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.path, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "path %s", tt.path)
	}
}

func TestHandleVotingResults_ParamValidation(t *testing.T) {
	app := newPollTestApp()

	for _, path := range []string{"/voting-results/0", "/voting-results/abc", "/voting-results/-5"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}

func TestParsePollID(t *testing.T) {
	id, err := parsePollID("7")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), id)

	_, err = parsePollID("0")
	assert.Error(t, err)

	_, err = parsePollID("seven")
	assert.Error(t, err)
}
