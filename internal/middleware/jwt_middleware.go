package middleware

import (
	"log"
	"strings"

	"gymtrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer token.
// On success the resolved user ID is stored in c.Locals("user_id") for the
// downstream handler. The middleware establishes authentication only;
// per-record ownership is checked by the mutating handlers themselves.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals("user_id", userID)

		return c.Next()
	}
}

// CallerID returns the authenticated user's ID placed in the context by
// AuthRequired, or the empty string if the request was not authenticated.
func CallerID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
