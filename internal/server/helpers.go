package server

import (
	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the user id resolved by the auth middleware.
// Zero means the middleware did not run; protected handlers treat that as a
// server wiring bug rather than an auth failure.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
