// Package handlers implements the HTTP request handlers for the SGA
// application. This file handles authentication: login and token issuance.
package handlers

import (
	"errors"
	"fmt"

	"github.com/brenio55/SGA/internal/security"
	"github.com/brenio55/SGA/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles login requests.
type AuthHandler struct {
	auth    *services.AuthService
	tokens  *services.TokenService
	lockout *security.LoginLockout
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *services.AuthService, tokens *services.TokenService, lockout *security.LoginLockout) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, lockout: lockout}
}

type loginRequest struct {
	CompanyID int    `json:"company_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Login validates the credentials against the given company and returns the
// user (without password) plus a signed bearer token. Accounts lock for a
// while after repeated failures.
//
// Route: POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.CompanyID == 0 || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_id, email and password are required",
		})
	}

	account := fmt.Sprintf("%d:%s", req.CompanyID, req.Email)
	if h.lockout.IsLocked(account) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "account temporarily locked, try again later",
		})
	}

	user, err := h.auth.Authenticate(c.Context(), req.CompanyID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.lockout.RecordFailure(account)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid email or password",
			})
		}
		return internalError(c, err)
	}
	h.lockout.Clear(account)

	token, err := h.tokens.Generate(user)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}
