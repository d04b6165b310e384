// Package repository provides the data access layer for the SGA application.
// This file implements notification persistence: CRUD, target management and
// audience resolution.
package repository

import (
	"context"
	"errors"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
)

// NotificationRepository handles notification rows and their target sets.
type NotificationRepository struct{}

// NewNotificationRepository creates and returns a new NotificationRepository
// instance.
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// NotificationPatch enumerates the editable notification fields. A nil field
// keeps the stored value. company_id is immutable after creation and is
// deliberately absent.
type NotificationPatch struct {
	Title              *string
	Description        *string
	Type               *string
	RequiresAcceptance *bool
}

const notificationColumns = `n.id, n.company_id, n.department_id, n.title, n.description,
			n.type, n.requires_acceptance, n.created_at, n.updated_at, d.name AS department_name`

func scanNotification(row pgx.Row, n *models.Notification) error {
	return row.Scan(
		&n.ID, &n.CompanyID, &n.DepartmentID, &n.Title, &n.Description,
		&n.Type, &n.RequiresAcceptance, &n.CreatedAt, &n.UpdatedAt, &n.DepartmentName,
	)
}

// List returns a company's notifications newest first, with the department
// name joined in for display.
func (r *NotificationRepository) List(ctx context.Context, companyID int) ([]models.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications n
		LEFT JOIN departments d ON n.department_id = d.id
		WHERE n.company_id = $1
		ORDER BY n.created_at DESC
	`

	rows, err := database.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// GetByID returns one notification or ErrNotFound.
func (r *NotificationRepository) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications n
		LEFT JOIN departments d ON n.department_id = d.id
		WHERE n.id = $1
	`

	var n models.Notification
	err := scanNotification(database.DB.QueryRow(ctx, query, id), &n)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// Create inserts a notification and its initial target set in one
// transaction, so the notification is never committed without its audience.
// An empty target set is legal: the notification exists but reaches nobody
// until targets are attached.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification, targets []models.Target) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO notifications (company_id, department_id, title, description, type, requires_acceptance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, n.CompanyID, n.DepartmentID, n.Title, n.Description, n.Type, n.RequiresAcceptance,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertTargets(ctx, tx, n.ID, targets); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update applies the patch. Nil patch fields keep their stored value.
func (r *NotificationRepository) Update(ctx context.Context, id int, patch NotificationPatch) (*models.Notification, error) {
	query := `
		UPDATE notifications SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			type = COALESCE($3, type),
			requires_acceptance = COALESCE($4, requires_acceptance),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, company_id, department_id, title, description,
			type, requires_acceptance, created_at, updated_at
	`

	var n models.Notification
	err := database.DB.QueryRow(ctx, query,
		patch.Title, patch.Description, patch.Type, patch.RequiresAcceptance, id,
	).Scan(
		&n.ID, &n.CompanyID, &n.DepartmentID, &n.Title, &n.Description,
		&n.Type, &n.RequiresAcceptance, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// Delete removes the notification. Targets, views and responses cascade.
func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListTargets returns the notification's target rows in insertion order.
func (r *NotificationRepository) ListTargets(ctx context.Context, notificationID int) ([]models.NotificationTarget, error) {
	query := `
		SELECT id, notification_id, target_type, target_id, created_at
		FROM notification_targets
		WHERE notification_id = $1
		ORDER BY created_at
	`

	rows, err := database.DB.Query(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := []models.NotificationTarget{}
	for rows.Next() {
		var t models.NotificationTarget
		if err := rows.Scan(&t.ID, &t.NotificationID, &t.TargetType, &t.TargetID, &t.CreatedAt); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	return targets, rows.Err()
}

// ReplaceTargets swaps the notification's entire target set. Delete and
// reinsert run in one transaction so a concurrent audience read never sees
// the notification with zero targets mid-replace.
func (r *NotificationRepository) ReplaceTargets(ctx context.Context, notificationID int, targets []models.Target) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM notification_targets WHERE notification_id = $1`, notificationID); err != nil {
		return err
	}

	if err := insertTargets(ctx, tx, notificationID, targets); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertTargets(ctx context.Context, tx pgx.Tx, notificationID int, targets []models.Target) error {
	for _, t := range targets {
		var targetID *int
		if v, ok := t.ID(); ok {
			targetID = &v
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO notification_targets (notification_id, target_type, target_id)
			VALUES ($1, $2, $3)
		`, notificationID, t.Type(), targetID); err != nil {
			return err
		}
	}
	return nil
}

// ResolveAudience returns the distinct set of user ids addressed by the
// notification's current targets: the union over all target rows of the
// users each row matches. A notification with no targets has an empty
// audience.
func (r *NotificationRepository) ResolveAudience(ctx context.Context, notificationID int) ([]int, error) {
	query := `
		SELECT DISTINCT u.id
		FROM notifications n
		INNER JOIN notification_targets nt ON n.id = nt.notification_id
		INNER JOIN users u ON ` + targetMatch + `
		WHERE n.id = $1
		ORDER BY u.id
	`

	rows, err := database.DB.Query(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userIDs := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}
