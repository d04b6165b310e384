// Package repository provides the data access layer for the SGA application.
// This file implements the response side of the notification ledger.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
)

// ResponseRepository records and reports accept/reject decisions. At most one
// row exists per (notification, user) pair, but unlike views the row is
// mutable: a later submission overwrites response_type and responded_at.
type ResponseRepository struct{}

// NewResponseRepository creates and returns a new ResponseRepository instance.
func NewResponseRepository() *ResponseRepository {
	return &ResponseRepository{}
}

// Upsert records or replaces the user's response to a notification.
//
// responseType must be "accepted" or "rejected"; anything else fails with
// ErrValidation before any write. Concurrent submissions for the same pair
// serialize on the uniqueness constraint, so the stored (response_type,
// responded_at) pair is always one caller's complete write.
func (r *ResponseRepository) Upsert(ctx context.Context, notificationID, userID int, responseType string) (*models.NotificationResponse, error) {
	if !models.ValidResponseType(responseType) {
		return nil, fmt.Errorf("%w: response_type must be '%s' or '%s'",
			models.ErrValidation, models.ResponseAccepted, models.ResponseRejected)
	}

	query := `
		INSERT INTO notification_responses (notification_id, user_id, response_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (notification_id, user_id)
		DO UPDATE SET response_type = EXCLUDED.response_type, responded_at = NOW()
		RETURNING id, notification_id, user_id, response_type, responded_at
	`

	var resp models.NotificationResponse
	err := database.DB.QueryRow(ctx, query, notificationID, userID, responseType).Scan(
		&resp.ID, &resp.NotificationID, &resp.UserID, &resp.ResponseType, &resp.RespondedAt,
	)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetForUser returns the user's response to a notification, or ErrNotFound
// when none has been recorded.
func (r *ResponseRepository) GetForUser(ctx context.Context, notificationID, userID int) (*models.NotificationResponse, error) {
	query := `
		SELECT id, notification_id, user_id, response_type, responded_at
		FROM notification_responses
		WHERE notification_id = $1 AND user_id = $2
	`

	var resp models.NotificationResponse
	err := database.DB.QueryRow(ctx, query, notificationID, userID).Scan(
		&resp.ID, &resp.NotificationID, &resp.UserID, &resp.ResponseType, &resp.RespondedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// ListByNotification returns every response to a notification enriched with
// the responder's identity, newest first. Admin reporting.
func (r *ResponseRepository) ListByNotification(ctx context.Context, notificationID int) ([]models.ResponseRecord, error) {
	query := `
		SELECT nr.id, nr.notification_id, nr.user_id, nr.response_type, nr.responded_at,
			u.full_name, u.role, d.name AS department_name, g.name AS group_name
		FROM notification_responses nr
		JOIN users u ON nr.user_id = u.id
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN groups g ON u.group_id = g.id
		WHERE nr.notification_id = $1
		ORDER BY nr.responded_at DESC
	`

	rows, err := database.DB.Query(ctx, query, notificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ResponseRecord{}
	for rows.Next() {
		var rec models.ResponseRecord
		if err := rows.Scan(
			&rec.ID, &rec.NotificationID, &rec.UserID, &rec.ResponseType, &rec.RespondedAt,
			&rec.FullName, &rec.Role, &rec.DepartmentName, &rec.GroupName,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListByUser returns everything the user has responded to, newest first.
func (r *ResponseRepository) ListByUser(ctx context.Context, userID int) ([]models.UserResponseRecord, error) {
	query := `
		SELECT nr.id, nr.notification_id, nr.user_id, nr.response_type, nr.responded_at,
			n.title, n.type
		FROM notification_responses nr
		JOIN notifications n ON nr.notification_id = n.id
		WHERE nr.user_id = $1
		ORDER BY nr.responded_at DESC
	`

	rows, err := database.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.UserResponseRecord{}
	for rows.Next() {
		var rec models.UserResponseRecord
		if err := rows.Scan(
			&rec.ID, &rec.NotificationID, &rec.UserID, &rec.ResponseType, &rec.RespondedAt,
			&rec.Title, &rec.Type,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
