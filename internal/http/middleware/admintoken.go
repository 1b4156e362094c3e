package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"couplegate/internal/admins"
)

// AdminIDKey is the fiber locals key under which the authenticated
// admin id is stored for downstream handlers.
const AdminIDKey = "admin_id"

// AdminTokenAuth middleware validates the admin token for admin API
// endpoints. Expects: Authorization: Basic <token> (the wire format the
// admin console has always used; Bearer is accepted as well).
func AdminTokenAuth(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing Authorization header",
			})
		}

		token := extractToken(authHeader)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid Authorization header format. Expected: Basic <token>",
			})
		}

		admin, err := admins.ValidateToken(db, token)
		if err != nil {
			logger.Debug("Rejected admin token", slog.Any("error", err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(AdminIDKey, admin.ID)
		return c.Next()
	}
}

// extractToken strips the auth scheme prefix from the header value.
func extractToken(header string) string {
	for _, scheme := range []string{"Basic ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(header, scheme))
		}
	}
	return ""
}
