// Package middleware_test provides unit tests for the HTTP middleware.
// Auth middleware tests drive a real Fiber app through app.Test with and
// without valid bearer tokens.
package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/brenio55/SGA/internal/middleware"
	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProtectedApp builds a minimal app with one protected route that echoes
// the principal extracted from the token.
func newProtectedApp(tokens *services.TokenService) *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.AuthRequired(tokens), func(c *fiber.Ctx) error {
		p := middleware.Principal(c)
		return c.JSON(fiber.Map{"user_id": p.UserID, "company_id": p.CompanyID, "role": p.Role})
	})
	return app
}

// TestAuthRequired verifies bearer token enforcement.
//
// Test Cases:
//   - valid token passes and populates the principal
//   - missing header rejected with 401
//   - malformed header rejected with 401
//   - token signed with another secret rejected with 401
func TestAuthRequired(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	otherTokens := services.NewTokenService("other-secret")

	validToken, err := tokens.Generate(&models.User{ID: 7, CompanyID: 10, Role: "manager"})
	require.NoError(t, err)
	foreignToken, err := otherTokens.Generate(&models.User{ID: 7, CompanyID: 10, Role: "manager"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + validToken, wantStatus: fiber.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: fiber.StatusUnauthorized},
		{name: "not a bearer scheme", authHeader: "Basic abc123", wantStatus: fiber.StatusUnauthorized},
		{name: "bare token without scheme", authHeader: validToken, wantStatus: fiber.StatusUnauthorized},
		{name: "wrong secret", authHeader: "Bearer " + foreignToken, wantStatus: fiber.StatusUnauthorized},
	}

	app := newProtectedApp(tokens)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

// TestRoleRequired verifies the role gate on management routes.
func TestRoleRequired(t *testing.T) {
	tokens := services.NewTokenService("test-secret")

	app := fiber.New()
	app.Post("/admin-only",
		middleware.AuthRequired(tokens),
		middleware.RoleRequired(models.RoleManager),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "manager passes", role: "manager", wantStatus: fiber.StatusOK},
		{name: "admin passes", role: "admin", wantStatus: fiber.StatusOK},
		{name: "plain user forbidden", role: "user", wantStatus: fiber.StatusForbidden},
		{name: "moderator forbidden", role: "moderator", wantStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tokens.Generate(&models.User{ID: 7, CompanyID: 10, Role: tt.role})
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
