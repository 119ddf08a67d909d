package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware configures CORS for the configured origin (defaults to *).
// Credentials are only allowed for a concrete origin; the wildcard form
// would be rejected by browsers anyway.
func CorsMiddleware(origin string) fiber.Handler {
	if origin == "" {
		origin = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: origin != "*",
	})
}
