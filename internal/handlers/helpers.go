package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// pathID parses the :id style route parameter named name.
func pathID(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// repoError maps repository errors onto the JSON error responses shared by
// every handler. Unrecognized errors become opaque 500s; the detail goes to
// the log, never to the client.
func repoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email already registered"})
	case errors.Is(err, repository.ErrInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "resource still referenced"})
	default:
		return internalError(c, err)
	}
}

func internalError(c *fiber.Ctx, err error) error {
	slog.Error("internal error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
