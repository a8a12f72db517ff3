package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// firstHeaderValue returns the first non-empty header value from the given
// candidates. Coinsnap and BTCPay-compatible senders use different signature
// header names; the first match wins.
func firstHeaderValue(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		v := strings.TrimSpace(c.Get(k))
		if v != "" {
			return v
		}
	}
	return ""
}
