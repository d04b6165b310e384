// Package repository provides the data access layer for the SGA application.
// This file implements the per-user notification feed: the pending inbox and
// the resolved history.
package repository

import (
	"context"
	"time"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
)

// targetMatch is the audience predicate shared by every per-user query.
// A user is addressed by a target row when exactly one of the four arms
// matches; a user with no department or group never matches a department or
// group target because NULL compares false.
const targetMatch = `(
			(nt.target_type = 'user' AND nt.target_id = u.id) OR
			(nt.target_type = 'department' AND nt.target_id = u.department_id) OR
			(nt.target_type = 'group' AND nt.target_id = u.group_id) OR
			(nt.target_type = 'all' AND n.company_id = u.company_id)
		)`

// FeedRepository computes which notifications are currently pending for a
// user and which belong to their history. The state is derived at query time
// from target membership plus the view/response ledgers; nothing is stored.
//
// A (notification, user) pair is:
//   - pending: targeted, no response, and either not viewed or the
//     notification requires acceptance (viewing alone does not resolve it);
//   - history: targeted and responded, or viewed when viewing alone
//     resolves it (requires_acceptance = false).
//
// The two sets partition the targeted notifications: a viewed but
// unresponded acceptance-required notification is pending, never history.
type FeedRepository struct{}

// NewFeedRepository creates and returns a new FeedRepository instance.
func NewFeedRepository() *FeedRepository {
	return &FeedRepository{}
}

// ListPending returns the user's actionable inbox, newest first.
//
// The company filter is defense in depth: the audience join already restricts
// 'all' targets by company, but a cross-company user/department/group target
// must never leak a foreign notification.
func (r *FeedRepository) ListPending(ctx context.Context, userID, companyID int) ([]models.FeedItem, error) {
	query := `
		SELECT DISTINCT
			n.id, n.company_id, n.department_id, n.title, n.description,
			n.type, n.requires_acceptance, n.created_at, n.updated_at,
			d.name AS department_name,
			nr.response_type AS user_response,
			CASE WHEN nv.id IS NOT NULL THEN 'read' ELSE 'pending' END AS view_status
		FROM notifications n
		LEFT JOIN departments d ON n.department_id = d.id
		INNER JOIN notification_targets nt ON n.id = nt.notification_id
		INNER JOIN users u ON ` + targetMatch + `
		LEFT JOIN notification_responses nr ON n.id = nr.notification_id AND nr.user_id = $1
		LEFT JOIN notification_views nv ON n.id = nv.notification_id AND nv.user_id = $1
		WHERE u.id = $1
			AND n.company_id = $2
			AND nr.id IS NULL
			AND (nv.id IS NULL OR n.requires_acceptance)
		ORDER BY n.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.FeedItem{}
	for rows.Next() {
		var it models.FeedItem
		if err := rows.Scan(
			&it.ID, &it.CompanyID, &it.DepartmentID, &it.Title, &it.Description,
			&it.Type, &it.RequiresAcceptance, &it.CreatedAt, &it.UpdatedAt,
			&it.DepartmentName, &it.UserResponse, &it.ViewStatus,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// ListHistory returns the user's resolved notifications: everything targeted
// at them that they responded to, plus viewed notifications that do not
// require acceptance. A viewed acceptance-required notification without a
// response is still pending and excluded here. Ordered by effective
// timestamp descending, where the response timestamp takes precedence over
// the view timestamp when both exist.
func (r *FeedRepository) ListHistory(ctx context.Context, userID, companyID int) ([]models.FeedItem, error) {
	query := `
		SELECT DISTINCT
			n.id, n.company_id, n.department_id, n.title, n.description,
			n.type, n.requires_acceptance, n.created_at, n.updated_at,
			d.name AS department_name,
			nr.response_type AS user_response,
			CASE WHEN nv.id IS NOT NULL OR nr.id IS NOT NULL THEN 'read' ELSE 'pending' END AS view_status,
			nv.viewed_at,
			nr.responded_at,
			COALESCE(nr.responded_at, nv.viewed_at) AS effective_at
		FROM notifications n
		LEFT JOIN departments d ON n.department_id = d.id
		INNER JOIN notification_targets nt ON n.id = nt.notification_id
		INNER JOIN users u ON ` + targetMatch + `
		LEFT JOIN notification_views nv ON n.id = nv.notification_id AND nv.user_id = $1
		LEFT JOIN notification_responses nr ON n.id = nr.notification_id AND nr.user_id = $1
		WHERE u.id = $1
			AND n.company_id = $2
			AND (nr.id IS NOT NULL OR (nv.id IS NOT NULL AND NOT n.requires_acceptance))
		ORDER BY effective_at DESC
	`

	rows, err := database.DB.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.FeedItem{}
	for rows.Next() {
		var it models.FeedItem
		var effectiveAt *time.Time // ordering column only
		if err := rows.Scan(
			&it.ID, &it.CompanyID, &it.DepartmentID, &it.Title, &it.Description,
			&it.Type, &it.RequiresAcceptance, &it.CreatedAt, &it.UpdatedAt,
			&it.DepartmentName, &it.UserResponse, &it.ViewStatus,
			&it.ViewedAt, &it.RespondedAt, &effectiveAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}
