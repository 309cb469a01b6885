package middleware

import (
	"log"
	"strings"

	"mentorlink/internal/common"
	"mentorlink/internal/models"
	"mentorlink/internal/services"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// AuthRequired is a Fiber middleware that resolves the Bearer token to a full
// user record and stores it in the request context. Any failure, including a
// token whose subject no longer exists, yields 401.
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

		user, err := authService.ResolveUser(parts[1])
		if err != nil {
			log.Printf("Authentication failed: %v", err)
			return common.RespondError(c, err)
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired. It must
// only be called on routes behind the middleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
