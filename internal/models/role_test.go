package models_test

import (
	"testing"

	"github.com/brenio55/SGA/internal/models"
	"github.com/stretchr/testify/assert"
)

// TestValidRole verifies the role whitelist.
func TestValidRole(t *testing.T) {
	for _, role := range []string{"super_admin", "admin", "manager", "moderator", "user"} {
		assert.True(t, models.ValidRole(role), "%s should be valid", role)
	}
	assert.False(t, models.ValidRole("supervisor"))
	assert.False(t, models.ValidRole(""))
	assert.False(t, models.ValidRole("Admin"), "Roles are case sensitive")
}

// TestRoleAtLeast verifies the role ordering used by the authorization
// middleware.
func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role string
		min  string
		want bool
	}{
		{"super_admin", "manager", true},
		{"admin", "manager", true},
		{"manager", "manager", true},
		{"moderator", "manager", false},
		{"user", "manager", false},
		{"user", "user", true},
		{"unknown", "user", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.RoleAtLeast(tt.role, tt.min),
			"%s at least %s", tt.role, tt.min)
	}
}

// TestValidResponseType verifies the accept/reject whitelist.
func TestValidResponseType(t *testing.T) {
	assert.True(t, models.ValidResponseType("accepted"))
	assert.True(t, models.ValidResponseType("rejected"))
	assert.False(t, models.ValidResponseType("maybe"))
	assert.False(t, models.ValidResponseType(""))
	assert.False(t, models.ValidResponseType("ACCEPTED"))
}
