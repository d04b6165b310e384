package handlers

import (
	"strconv"

	"github.com/brenio55/SGA/internal/middleware"
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles group CRUD requests.
type GroupHandler struct {
	groupRepo *repository.GroupRepository
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler() *GroupHandler {
	return &GroupHandler{groupRepo: repository.NewGroupRepository()}
}

// List returns groups, filtered by ?department_id= when given, otherwise all
// groups of the principal's company.
//
// Route: GET /api/groups
func (h *GroupHandler) List(c *fiber.Ctx) error {
	if q := c.Query("department_id"); q != "" {
		departmentID, err := strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid department_id"})
		}
		groups, err := h.groupRepo.List(c.Context(), departmentID)
		if err != nil {
			return repoError(c, err)
		}
		return c.JSON(groups)
	}

	groups, err := h.groupRepo.ListByCompany(c.Context(), middleware.Principal(c).CompanyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(groups)
}

// Get returns one group.
//
// Route: GET /api/groups/:id
func (h *GroupHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	group, err := h.groupRepo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(group)
}

type groupRequest struct {
	DepartmentID int     `json:"department_id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
}

// Create adds a group to a department.
//
// Route: POST /api/groups
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req groupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.DepartmentID == 0 || req.Name == nil || *req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "department_id and name are required"})
	}

	group := &models.Group{DepartmentID: req.DepartmentID, Name: *req.Name}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if err := h.groupRepo.Create(c.Context(), group); err != nil {
		return repoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// Update edits a group's name and description.
//
// Route: PUT /api/groups/:id
func (h *GroupHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req groupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	group, err := h.groupRepo.Update(c.Context(), id, repository.GroupPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(group)
}

// Delete removes a group. Rejected with 409 while users still belong to it.
//
// Route: DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.groupRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(fiber.Map{"message": "group deleted"})
}
