// Package repository provides the data access layer for the SGA application.
// This file implements the view side of the notification ledger.
package repository

import (
	"context"
	"errors"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
)

// ViewRepository records and reports notification views. A view is written
// at most once per (notification, user) pair; the first call wins and every
// later call is a no-op, never an update and never an error.
type ViewRepository struct{}

// NewViewRepository creates and returns a new ViewRepository instance.
func NewViewRepository() *ViewRepository {
	return &ViewRepository{}
}

// Create records that the user has viewed the notification.
//
// The insert is idempotent: ON CONFLICT DO NOTHING absorbs both repeat calls
// and concurrent first views racing on the uniqueness constraint. When the
// row already existed the method returns (nil, false, nil) — the "already
// viewed" sentinel — and the original viewed_at is preserved.
func (r *ViewRepository) Create(ctx context.Context, notificationID, userID int) (*models.NotificationView, bool, error) {
	query := `
		INSERT INTO notification_views (notification_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (notification_id, user_id) DO NOTHING
		RETURNING id, notification_id, user_id, viewed_at
	`

	var view models.NotificationView
	err := database.DB.QueryRow(ctx, query, notificationID, userID).Scan(
		&view.ID, &view.NotificationID, &view.UserID, &view.ViewedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict path: the pair was already viewed
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &view, true, nil
}

// ListByNotification returns every view of a notification enriched with the
// viewer's identity, department and group, newest first. Admin reporting;
// not filtered by the per-user lifecycle.
func (r *ViewRepository) ListByNotification(ctx context.Context, notificationID int) ([]models.ViewRecord, error) {
	query := `
		SELECT nv.id, nv.notification_id, nv.user_id, nv.viewed_at,
			u.full_name, u.role, d.name AS department_name, g.name AS group_name
		FROM notification_views nv
		JOIN users u ON nv.user_id = u.id
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN groups g ON u.group_id = g.id
		WHERE nv.notification_id = $1
		ORDER BY nv.viewed_at DESC
	`

	rows, err := database.DB.Query(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ViewRecord{}
	for rows.Next() {
		var rec models.ViewRecord
		if err := rows.Scan(
			&rec.ID, &rec.NotificationID, &rec.UserID, &rec.ViewedAt,
			&rec.FullName, &rec.Role, &rec.DepartmentName, &rec.GroupName,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListByUser returns everything the user has viewed, newest first, with the
// notification title and type attached.
func (r *ViewRepository) ListByUser(ctx context.Context, userID int) ([]models.UserViewRecord, error) {
	query := `
		SELECT nv.id, nv.notification_id, nv.user_id, nv.viewed_at, n.title, n.type
		FROM notification_views nv
		JOIN notifications n ON nv.notification_id = n.id
		WHERE nv.user_id = $1
		ORDER BY nv.viewed_at DESC
	`

	rows, err := database.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.UserViewRecord{}
	for rows.Next() {
		var rec models.UserViewRecord
		if err := rows.Scan(
			&rec.ID, &rec.NotificationID, &rec.UserID, &rec.ViewedAt, &rec.Title, &rec.Type,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountByDepartment groups a notification's views by the viewers' department.
// users_viewed counts distinct viewers and total_views counts raw rows; they
// coincide while a user can view at most once, but are computed independently
// so a future multi-view schema would not silently skew the report.
func (r *ViewRepository) CountByDepartment(ctx context.Context, notificationID int) ([]models.DepartmentViewCount, error) {
	query := `
		SELECT d.name AS department,
			COUNT(DISTINCT nv.user_id) AS users_viewed,
			COUNT(nv.id) AS total_views
		FROM notification_views nv
		JOIN users u ON nv.user_id = u.id
		JOIN departments d ON u.department_id = d.id
		WHERE nv.notification_id = $1
		GROUP BY d.id, d.name
		ORDER BY d.name
	`

	rows, err := database.DB.Query(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.DepartmentViewCount{}
	for rows.Next() {
		var c models.DepartmentViewCount
		if err := rows.Scan(&c.Department, &c.UsersViewed, &c.TotalViews); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// CountByGroup groups a notification's views by the viewers' group, with the
// group's department attached for display.
func (r *ViewRepository) CountByGroup(ctx context.Context, notificationID int) ([]models.GroupViewCount, error) {
	query := `
		SELECT g.name AS group_name,
			d.name AS department,
			COUNT(DISTINCT nv.user_id) AS users_viewed,
			COUNT(nv.id) AS total_views
		FROM notification_views nv
		JOIN users u ON nv.user_id = u.id
		JOIN groups g ON u.group_id = g.id
		JOIN departments d ON g.department_id = d.id
		WHERE nv.notification_id = $1
		GROUP BY g.id, g.name, d.name
		ORDER BY d.name, g.name
	`

	rows, err := database.DB.Query(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.GroupViewCount{}
	for rows.Next() {
		var c models.GroupViewCount
		if err := rows.Scan(&c.GroupName, &c.Department, &c.UsersViewed, &c.TotalViews); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
