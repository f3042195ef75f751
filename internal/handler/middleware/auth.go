package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/internal/service"
)

// AuthMiddleware verifies the Bearer token on protected routes and
// stores the user id in fiber.Locals for downstream handlers.
func AuthMiddleware(userService *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header format")
		}

		userID, err := userService.VerifyToken(parts[1])
		if err != nil {
			return domain.ErrInvalidToken
		}

		c.Locals("user_id", userID)

		return c.Next()
	}
}
