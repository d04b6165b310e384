package handlers

import (
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// CompanyHandler handles company CRUD requests.
type CompanyHandler struct {
	companyRepo *repository.CompanyRepository
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler() *CompanyHandler {
	return &CompanyHandler{companyRepo: repository.NewCompanyRepository()}
}

// List returns all companies.
//
// Route: GET /api/companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	companies, err := h.companyRepo.List(c.Context())
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(companies)
}

// Get returns one company.
//
// Route: GET /api/companies/:id
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	company, err := h.companyRepo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(company)
}

type companyRequest struct {
	Name *string `json:"name"`
	Logo *string `json:"logo_base64"`
}

// Create registers a new company.
//
// Route: POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var req companyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == nil || *req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	company := &models.Company{Name: *req.Name, Logo: req.Logo}
	if err := h.companyRepo.Create(c.Context(), company); err != nil {
		return repoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// Update edits a company's name and logo.
//
// Route: PUT /api/companies/:id
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req companyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	company, err := h.companyRepo.Update(c.Context(), id, repository.CompanyPatch{
		Name: req.Name,
		Logo: req.Logo,
	})
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(company)
}

// Delete removes a company and everything it owns.
//
// Route: DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.companyRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(fiber.Map{"message": "company deleted"})
}
