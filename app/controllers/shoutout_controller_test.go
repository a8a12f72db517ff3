package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHandleCreateShoutout_RejectsInvalidBody(t *testing.T) {
	app := fiber.New()
	app.Post("/shoutouts", HandleCreateShoutout)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `not json`},
		{name: "missing name", body: `{"message":"hi","amount_sats":100,"invoice_id":"inv1"}`},
		{name: "zero amount", body: `{"name":"Ada","amount_sats":0,"invoice_id":"inv1"}`},
		{name: "missing invoice", body: `{"name":"Ada","amount_sats":100}`},
		{name: "name too long", body: `{"name":"` + strings.Repeat("x", 101) + `","amount_sats":100,"invoice_id":"inv1"}`},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/shoutouts", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		assert.NoError(t, err, tt.name)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, tt.name)
	}
}

func TestHandleGetShoutout_RejectsInvalidUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/shoutouts/:uuid", HandleGetShoutout)

	for _, raw := range []string{"not-a-uuid", "1234", "d94f3f01-zzzz-4b21-0000-badbadbadbad"} {
		req := httptest.NewRequest("GET", "/shoutouts/"+raw, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err, raw)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, raw)
	}
}
