package handlers

import (
	"github.com/brenio55/SGA/internal/database"
	"github.com/gofiber/fiber/v2"
)

// Health reports service liveness and database reachability.
//
// Route: GET /health
func Health(c *fiber.Ctx) error {
	if err := database.DB.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  "database unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
