package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAPIKey protects the admin surface with a shared key presented in
// the X-Admin-Key header. An empty configured key hard-fails every request
// rather than accidentally leaving the surface open.
func RequireAPIKey(key string) fiber.Handler {
	key = strings.TrimSpace(key)
	if key == "" {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "Admin API key not configured")
		}
	}

	return func(c *fiber.Ctx) error {
		got := strings.TrimSpace(c.Get("X-Admin-Key"))
		if got == "" || got != key {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid admin key")
		}
		return c.Next()
	}
}
