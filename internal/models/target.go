// Package models defines data structures for the SGA application.
// This file contains the notification target sum type and its wire form.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Target types. A notification owns a set of targets and its audience is the
// union of the users matched by each one.
const (
	TargetTypeAll        = "all"
	TargetTypeDepartment = "department"
	TargetTypeGroup      = "group"
	TargetTypeUser       = "user"
)

// Target is the tagged union All | Department(id) | Group(id) | User(id).
// The zero value is invalid; use the constructors so the "all carries no id"
// invariant holds by construction instead of by a nullable field convention.
type Target struct {
	kind string
	id   int
}

// TargetAll addresses every user of the notification's company.
func TargetAll() Target { return Target{kind: TargetTypeAll} }

// TargetDepartment addresses users whose department_id equals id.
func TargetDepartment(id int) Target { return Target{kind: TargetTypeDepartment, id: id} }

// TargetGroup addresses users whose group_id equals id.
func TargetGroup(id int) Target { return Target{kind: TargetTypeGroup, id: id} }

// TargetUser addresses the single user with the given id.
func TargetUser(id int) Target { return Target{kind: TargetTypeUser, id: id} }

// Type returns the discriminator (all/department/group/user).
func (t Target) Type() string { return t.kind }

// ID returns the referenced entity id and whether one exists.
// An "all" target has no id.
func (t Target) ID() (int, bool) {
	if t.kind == TargetTypeAll {
		return 0, false
	}
	return t.id, true
}

// Matches reports whether the user is addressed by this target for a
// notification owned by companyID. A user with no department or group never
// matches a department or group target.
func (t Target) Matches(u *User, companyID int) bool {
	switch t.kind {
	case TargetTypeAll:
		return u.CompanyID == companyID
	case TargetTypeUser:
		return u.ID == t.id
	case TargetTypeDepartment:
		return u.DepartmentID != nil && *u.DepartmentID == t.id
	case TargetTypeGroup:
		return u.GroupID != nil && *u.GroupID == t.id
	}
	return false
}

// ParseTarget builds a Target from its wire form, validating the
// discriminator and the id presence rule.
func ParseTarget(targetType string, targetID *int) (Target, error) {
	switch targetType {
	case TargetTypeAll:
		// A stray target_id on an "all" target is dropped, not rejected
		return TargetAll(), nil
	case TargetTypeDepartment, TargetTypeGroup, TargetTypeUser:
		if targetID == nil {
			return Target{}, fmt.Errorf("%w: target_type '%s' requires a target_id", ErrValidation, targetType)
		}
		return Target{kind: targetType, id: *targetID}, nil
	default:
		return Target{}, fmt.Errorf("%w: unknown target_type '%s'", ErrValidation, targetType)
	}
}

// NotificationTarget is the persisted form of a Target attached to a
// notification. TargetID is NULL exactly when TargetType is "all".
//
// Database Table: notification_targets
type NotificationTarget struct {
	ID             int       `json:"id"`
	NotificationID int       `json:"notification_id"`
	TargetType     string    `json:"target_type"`
	TargetID       *int      `json:"target_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Target converts the row back into the sum type.
func (nt NotificationTarget) Target() (Target, error) {
	return ParseTarget(nt.TargetType, nt.TargetID)
}

// MarshalJSON emits the wire form {"target_type": ..., "target_id": ...}.
func (t Target) MarshalJSON() ([]byte, error) {
	var id *int
	if v, ok := t.ID(); ok {
		id = &v
	}
	return json.Marshal(struct {
		TargetType string `json:"target_type"`
		TargetID   *int   `json:"target_id"`
	}{t.kind, id})
}

// UnmarshalJSON parses and validates the wire form.
func (t *Target) UnmarshalJSON(data []byte) error {
	var wire struct {
		TargetType string `json:"target_type"`
		TargetID   *int   `json:"target_id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	parsed, err := ParseTarget(wire.TargetType, wire.TargetID)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
