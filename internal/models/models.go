// Package models defines the domain entities and data transfer objects for SGA.
// It includes database models mapped to PostgreSQL tables, request DTOs for
// JSON input, and enriched view models returned by the reporting queries.
package models

import "time"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// Company is the root tenant boundary. Every other entity belongs, directly
// or transitively, to exactly one company.
//
// Database Table: companies
type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Logo      *string   `json:"logo_base64,omitempty"` // Opaque base64 blob, nullable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Department is an organizational unit inside a company.
// Color is a display hint used by the dashboard badges.
//
// Database Table: departments
type Department struct {
	ID        int       `json:"id"`
	CompanyID int       `json:"company_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Group is a sub-unit of a department, transitively owned by one company.
//
// Database Table: groups
type Group struct {
	ID           int       `json:"id"`
	DepartmentID int       `json:"department_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User represents a system account inside a company. Department and group
// membership are optional and drive notification targeting.
//
// Database Table: users
// Security Note: PasswordHash must never be serialized in API responses.
type User struct {
	ID           int       `json:"id"`
	CompanyID    int       `json:"company_id"`
	DepartmentID *int      `json:"department_id"`
	GroupID      *int      `json:"group_id"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"` // See role.go for the hierarchy
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        *string   `json:"image_base64,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Denormalized labels filled by the user queries (nullable joins)
	DepartmentName *string `json:"department_name,omitempty"`
	GroupName      *string `json:"group_name,omitempty"`
}

// Notification types. Display-only: the lifecycle logic never branches on them.
const (
	NotificationNormal    = "normal"
	NotificationUrgent    = "urgent"
	NotificationImportant = "important"
	NotificationInfo      = "info"
)

// Notification is an announcement published inside a company and addressed
// to a set of targets. RequiresAcceptance is the single flag that controls
// lifecycle behavior: acceptance-required notifications stay in the pending
// inbox after being viewed, until the user accepts or rejects them.
//
// Database Table: notifications
type Notification struct {
	ID                 int       `json:"id"`
	CompanyID          int       `json:"company_id"`
	DepartmentID       *int      `json:"department_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Type               string    `json:"type"`
	RequiresAcceptance bool      `json:"requires_acceptance"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	DepartmentName *string `json:"department_name,omitempty"`
}

// NotificationView is the immutable first-view record of a notification by a
// user. At most one row exists per (notification, user) pair; repeat views
// are ignored, never updated.
//
// Database Table: notification_views
// Unique Constraint: (notification_id, user_id)
type NotificationView struct {
	ID             int       `json:"id"`
	NotificationID int       `json:"notification_id"`
	UserID         int       `json:"user_id"`
	ViewedAt       time.Time `json:"viewed_at"`
}

// Response types for acceptance-required notifications.
const (
	ResponseAccepted = "accepted"
	ResponseRejected = "rejected"
)

// ValidResponseType reports whether s is one of the two allowed response
// types. Anything else must be rejected before reaching the database.
func ValidResponseType(s string) bool {
	return s == ResponseAccepted || s == ResponseRejected
}

// NotificationResponse is a user's accept/reject decision. Unlike views it is
// mutable: resubmitting overwrites response_type and responded_at, and no
// history of prior responses is kept.
//
// Database Table: notification_responses
// Unique Constraint: (notification_id, user_id)
type NotificationResponse struct {
	ID             int       `json:"id"`
	NotificationID int       `json:"notification_id"`
	UserID         int       `json:"user_id"`
	ResponseType   string    `json:"response_type"`
	RespondedAt    time.Time `json:"responded_at"`
}

// ============================================================================
// View Models (Enriched Query Results)
// ============================================================================

// View status values surfaced on feed rows.
const (
	ViewStatusRead    = "read"
	ViewStatusPending = "pending"
)

// FeedItem is a notification as seen from one user's inbox or history.
// UserResponse and the timestamps come from that user's ledger rows.
type FeedItem struct {
	Notification
	UserResponse *string    `json:"user_response"`         // accepted/rejected, nil if none
	ViewStatus   string     `json:"view_status,omitempty"` // read | pending
	ViewedAt     *time.Time `json:"viewed_at,omitempty"`   // effective timestamp in history
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

// NotificationDetail is the admin view of a single notification with its
// targets and full view/response ledgers embedded.
type NotificationDetail struct {
	Notification
	Targets   []NotificationTarget `json:"targets"`
	Views     []ViewRecord         `json:"views"`
	ViewCount int                  `json:"view_count"`
	Responses []ResponseRecord     `json:"responses"`
}

// ViewRecord is a view row enriched with the viewer's identity for reporting.
type ViewRecord struct {
	NotificationView
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	DepartmentName *string `json:"department_name"`
	GroupName      *string `json:"group_name"`
}

// ResponseRecord is a response row enriched with the responder's identity.
type ResponseRecord struct {
	NotificationResponse
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	DepartmentName *string `json:"department_name"`
	GroupName      *string `json:"group_name"`
}

// UserViewRecord is a view row from one user's perspective, with the
// notification's title and type attached.
type UserViewRecord struct {
	NotificationView
	Title string `json:"title"`
	Type  string `json:"type"`
}

// UserResponseRecord is a response row from one user's perspective.
type UserResponseRecord struct {
	NotificationResponse
	Title string `json:"title"`
	Type  string `json:"type"`
}

// DepartmentViewCount aggregates views of one notification by the viewers'
// department. UsersViewed counts distinct viewers; TotalViews counts raw rows.
// The two coincide today because a user views at most once, but they are
// computed independently.
type DepartmentViewCount struct {
	Department  string `json:"department"`
	UsersViewed int    `json:"users_viewed"`
	TotalViews  int    `json:"total_views"`
}

// GroupViewCount aggregates views by the viewers' group.
type GroupViewCount struct {
	GroupName   string `json:"group_name"`
	Department  string `json:"department"`
	UsersViewed int    `json:"users_viewed"`
	TotalViews  int    `json:"total_views"`
}

// DepartmentStat is one per-department bucket of a user's pending
// notifications. Departmentless notifications fall in a synthetic "General"
// bucket with nil id and color.
type DepartmentStat struct {
	DepartmentName  string  `json:"department_name"`
	DepartmentID    *int    `json:"department_id"`
	DepartmentColor *string `json:"department_color"`
	Count           int     `json:"count"`
}

// CompanyOverview carries company-wide notification counters for the admin
// dashboard.
type CompanyOverview struct {
	TotalNotifications int `json:"total_notifications"`
	AcceptanceRequired int `json:"acceptance_required"`
	TotalViews         int `json:"total_views"`
	TotalResponses     int `json:"total_responses"`
}
