package handlers

import (
	"fmt"
	"strconv"

	"github.com/brenio55/SGA/internal/middleware"
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/brenio55/SGA/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user CRUD requests.
type UserHandler struct {
	userRepo  *repository.UserRepository
	groupRepo *repository.GroupRepository
	auth      *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *services.AuthService) *UserHandler {
	return &UserHandler{
		userRepo:  repository.NewUserRepository(),
		groupRepo: repository.NewGroupRepository(),
		auth:      auth,
	}
}

// List returns the users of a company.
//
// Route: GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	companyID := middleware.Principal(c).CompanyID
	if q := c.Query("company_id"); q != "" {
		id, err := strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid company_id"})
		}
		companyID = id
	}

	users, err := h.userRepo.List(c.Context(), companyID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(users)
}

// Get returns one user.
//
// Route: GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(user)
}

// ListByGroup returns the members of one group.
//
// Route: GET /api/users/group/:group_id
func (h *UserHandler) ListByGroup(c *fiber.Ctx) error {
	groupID, err := pathID(c, "group_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	users, err := h.userRepo.ListByGroup(c.Context(), groupID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(users)
}

type userRequest struct {
	CompanyID    int     `json:"company_id"`
	DepartmentID *int    `json:"department_id"`
	GroupID      *int    `json:"group_id"`
	FullName     *string `json:"full_name"`
	Role         *string `json:"role"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Image        *string `json:"image_base64"`
}

// checkMembership enforces that a user's group belongs to their stated
// department. The check runs at write time so reads never have to tolerate
// inconsistent membership.
func (h *UserHandler) checkMembership(c *fiber.Ctx, departmentID, groupID *int) error {
	if groupID == nil {
		return nil
	}
	group, err := h.groupRepo.GetByID(c.Context(), *groupID)
	if err != nil {
		return fmt.Errorf("%w: group %d does not exist", models.ErrValidation, *groupID)
	}
	if departmentID == nil || *departmentID != group.DepartmentID {
		return fmt.Errorf("%w: group %d belongs to department %d", models.ErrValidation, *groupID, group.DepartmentID)
	}
	return nil
}

// Create registers a user. The password is hashed before storage and never
// echoed back.
//
// Route: POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.CompanyID == 0 || req.FullName == nil || req.Email == nil || req.Password == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_id, full_name, email and password are required",
		})
	}

	if err := h.checkMembership(c, req.DepartmentID, req.GroupID); err != nil {
		return repoError(c, err)
	}

	hash, err := h.auth.HashPassword(*req.Password)
	if err != nil {
		return internalError(c, err)
	}

	role := models.RoleUser
	if req.Role != nil {
		role = *req.Role
	}

	user := &models.User{
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
		GroupID:      req.GroupID,
		FullName:     *req.FullName,
		Role:         role,
		Email:        *req.Email,
		PasswordHash: hash,
		Image:        req.Image,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return repoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update edits a user. A new password, when present, is hashed first.
//
// Route: PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.GroupID != nil {
		departmentID := req.DepartmentID
		if departmentID == nil {
			// Membership patch without a department: check against the stored one
			current, err := h.userRepo.GetByID(c.Context(), id)
			if err != nil {
				return repoError(c, err)
			}
			departmentID = current.DepartmentID
		}
		if err := h.checkMembership(c, departmentID, req.GroupID); err != nil {
			return repoError(c, err)
		}
	}

	patch := repository.UserPatch{
		DepartmentID: req.DepartmentID,
		GroupID:      req.GroupID,
		FullName:     req.FullName,
		Role:         req.Role,
		Email:        req.Email,
		Image:        req.Image,
	}
	if req.Password != nil {
		hash, err := h.auth.HashPassword(*req.Password)
		if err != nil {
			return internalError(c, err)
		}
		patch.PasswordHash = &hash
	}

	user, err := h.userRepo.Update(c.Context(), id, patch)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(user)
}

// Delete removes a user.
//
// Route: DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.userRepo.Delete(c.Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}
