package handlers

import (
	"strconv"

	"github.com/brenio55/SGA/internal/middleware"
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler handles department CRUD requests.
type DepartmentHandler struct {
	departmentRepo *repository.DepartmentRepository
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler() *DepartmentHandler {
	return &DepartmentHandler{departmentRepo: repository.NewDepartmentRepository()}
}

// List returns the departments of a company. The company defaults to the
// principal's and may be overridden with ?company_id= by admins inspecting
// another tenant.
//
// Route: GET /api/departments
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	companyID := middleware.Principal(c).CompanyID
	if q := c.Query("company_id"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid company_id"})
		}
		companyID = id
	}

	departments, err := h.departmentRepo.List(c.Context(), companyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(departments)
}

// Get returns one department.
//
// Route: GET /api/departments/:id
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	department, err := h.departmentRepo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(department)
}

type departmentRequest struct {
	CompanyID int     `json:"company_id"`
	Name      *string `json:"name"`
	Color     *string `json:"color"`
}

// Create adds a department to a company.
//
// Route: POST /api/departments
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.CompanyID == 0 || req.Name == nil || *req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "company_id and name are required"})
	}

	department := &models.Department{CompanyID: req.CompanyID, Name: *req.Name, Color: "#6B7280"}
	if req.Color != nil && *req.Color != "" {
		department.Color = *req.Color
	}
	if err := h.departmentRepo.Create(c.Context(), department); err != nil {
		return repoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(department)
}

// Update edits a department's name and color.
//
// Route: PUT /api/departments/:id
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req departmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	department, err := h.departmentRepo.Update(c.Context(), id, repository.DepartmentPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(department)
}

// Delete removes a department. Rejected with 409 while groups, users or
// notifications still reference it.
//
// Route: DELETE /api/departments/:id
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.departmentRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(fiber.Map{"message": "department deleted"})
}
