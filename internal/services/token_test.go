package services_test

import (
	"testing"

	"github.com/brenio55/SGA/internal/models"
	"github.com/brenio55/SGA/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenService_RoundTrip verifies that a generated token carries the
// user's identity back through Verify.
func TestTokenService_RoundTrip(t *testing.T) {
	svc := services.NewTokenService("test-secret")
	user := &models.User{ID: 7, CompanyID: 10, Role: "manager"}

	token, err := svc.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, 7, principal.UserID)
	assert.Equal(t, 10, principal.CompanyID)
	assert.Equal(t, "manager", principal.Role)
}

// TestTokenService_Verify verifies rejection of tampered and foreign tokens.
//
// Test Cases:
//   - token signed with a different secret rejected
//   - malformed token rejected
//   - empty string rejected
func TestTokenService_Verify(t *testing.T) {
	svc := services.NewTokenService("test-secret")
	other := services.NewTokenService("other-secret")

	foreign, err := other.Generate(&models.User{ID: 7, CompanyID: 10, Role: "user"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: foreign},
		{name: "malformed token", token: "not.a.jwt"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := svc.Verify(tt.token)

			assert.Error(t, err)
			assert.Nil(t, principal)
		})
	}
}
