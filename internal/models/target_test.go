// Package models_test provides unit tests for the domain models.
// Target tests verify the sum type's construction rules, matching semantics
// and wire format.
package models_test

import (
	"encoding/json"
	"testing"

	"github.com/brenio55/SGA/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseTarget verifies the wire-form validation rules.
//
// Test Cases:
//   - all: valid without an id; a stray id is dropped, not rejected
//   - department/group/user: id required
//   - unknown discriminator rejected
func TestParseTarget(t *testing.T) {
	tests := []struct {
		name       string
		targetType string
		targetID   *int
		wantErr    bool
		wantID     int
		wantHasID  bool
	}{
		{name: "all without id", targetType: "all"},
		{name: "all with stray id drops it", targetType: "all", targetID: intp(9)},
		{name: "department with id", targetType: "department", targetID: intp(3), wantID: 3, wantHasID: true},
		{name: "group with id", targetType: "group", targetID: intp(4), wantID: 4, wantHasID: true},
		{name: "user with id", targetType: "user", targetID: intp(7), wantID: 7, wantHasID: true},
		{name: "department without id", targetType: "department", wantErr: true},
		{name: "group without id", targetType: "group", wantErr: true},
		{name: "user without id", targetType: "user", wantErr: true},
		{name: "unknown type", targetType: "team", targetID: intp(1), wantErr: true},
		{name: "empty type", targetType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := models.ParseTarget(tt.targetType, tt.targetID)

			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.targetType, target.Type())
			id, ok := target.ID()
			assert.Equal(t, tt.wantHasID, ok)
			if ok {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

// TestTarget_Matches verifies the audience predicate against in-memory
// users: the same four-arm rule the SQL queries apply.
func TestTarget_Matches(t *testing.T) {
	userWithBoth := &models.User{ID: 7, CompanyID: 10, DepartmentID: intp(3), GroupID: intp(4)}
	userBare := &models.User{ID: 8, CompanyID: 10}
	foreignUser := &models.User{ID: 9, CompanyID: 99, DepartmentID: intp(3)}

	tests := []struct {
		name   string
		target models.Target
		user   *models.User
		want   bool
	}{
		{name: "all matches same company", target: models.TargetAll(), user: userWithBoth, want: true},
		{name: "all matches memberless user", target: models.TargetAll(), user: userBare, want: true},
		{name: "all rejects foreign company", target: models.TargetAll(), user: foreignUser, want: false},
		{name: "department matches member", target: models.TargetDepartment(3), user: userWithBoth, want: true},
		{name: "department rejects other department", target: models.TargetDepartment(5), user: userWithBoth, want: false},
		{name: "department rejects departmentless user", target: models.TargetDepartment(3), user: userBare, want: false},
		{name: "group matches member", target: models.TargetGroup(4), user: userWithBoth, want: true},
		{name: "group rejects groupless user", target: models.TargetGroup(4), user: userBare, want: false},
		{name: "user matches exact id", target: models.TargetUser(8), user: userBare, want: true},
		{name: "user rejects other id", target: models.TargetUser(8), user: userWithBoth, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Matches(tt.user, 10))
		})
	}
}

// TestTarget_JSON verifies the wire format: the discriminator plus a
// nullable id, with validation applied on the way in.
func TestTarget_JSON(t *testing.T) {
	t.Run("marshal all", func(t *testing.T) {
		data, err := json.Marshal(models.TargetAll())
		require.NoError(t, err)
		assert.JSONEq(t, `{"target_type":"all","target_id":null}`, string(data))
	})

	t.Run("marshal department", func(t *testing.T) {
		data, err := json.Marshal(models.TargetDepartment(3))
		require.NoError(t, err)
		assert.JSONEq(t, `{"target_type":"department","target_id":3}`, string(data))
	})

	t.Run("unmarshal valid", func(t *testing.T) {
		var target models.Target
		require.NoError(t, json.Unmarshal([]byte(`{"target_type":"user","target_id":7}`), &target))
		assert.Equal(t, models.TargetUser(7), target)
	})

	t.Run("unmarshal rejects missing id", func(t *testing.T) {
		var target models.Target
		err := json.Unmarshal([]byte(`{"target_type":"group"}`), &target)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

// TestNotificationTarget_Target verifies the row-to-sum-type conversion.
func TestNotificationTarget_Target(t *testing.T) {
	row := models.NotificationTarget{NotificationID: 5, TargetType: "group", TargetID: intp(4)}

	target, err := row.Target()

	require.NoError(t, err)
	assert.Equal(t, models.TargetGroup(4), target)
}

func intp(v int) *int { return &v }
