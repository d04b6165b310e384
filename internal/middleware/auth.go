// Package middleware provides HTTP middleware for authentication,
// authorization and request logging.
package middleware

import (
	"strings"

	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "user_role"
)

// AuthRequired verifies the Authorization bearer token and stores the
// principal's id, company and role in the request locals. Handlers trust
// these values; no further credential checks happen downstream.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization token is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authorization header format must be Bearer {token}",
			})
		}

		principal, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(LocalUserID, principal.UserID)
		c.Locals(LocalCompanyID, principal.CompanyID)
		c.Locals(LocalRole, principal.Role)

		return c.Next()
	}
}

// RoleRequired rejects requests whose principal sits below min in the role
// hierarchy. Must be chained after AuthRequired.
func RoleRequired(min string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if !models.RoleAtLeast(role, min) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role",
			})
		}
		return c.Next()
	}
}

// Principal rebuilds the authenticated principal from the request locals.
func Principal(c *fiber.Ctx) services.Principal {
	userID, _ := c.Locals(LocalUserID).(int)
	companyID, _ := c.Locals(LocalCompanyID).(int)
	role, _ := c.Locals(LocalRole).(string)
	return services.Principal{UserID: userID, CompanyID: companyID, Role: role}
}
