// Package repository provides the data access layer for the SGA application.
// This file provides statistical aggregation queries for dashboard displays.
package repository

import (
	"context"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
)

// StatsRepository aggregates notification state for dashboards.
type StatsRepository struct{}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// PendingByDepartment buckets the user's currently-pending notifications by
// the notification's department for the badge display. Departmentless
// notifications land in a synthetic "General" bucket with nil id and color.
//
// The WHERE clause is the same pending predicate as FeedRepository.ListPending
// — targeted, unresponded, and unviewed unless acceptance is required. Any
// divergence between the two makes the badge totals disagree with the inbox.
func (r *StatsRepository) PendingByDepartment(ctx context.Context, userID, companyID int) ([]models.DepartmentStat, error) {
	query := `
		SELECT
			COALESCE(d.name, 'General') AS department_name,
			d.id AS department_id,
			d.color AS department_color,
			COUNT(DISTINCT n.id) AS count
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
		GROUP BY d.id, d.name, d.color
		ORDER BY d.name
	`

	rows, err := database.DB.Query(ctx, query, userID, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.DepartmentStat{}
	for rows.Next() {
		var s models.DepartmentStat
		if err := rows.Scan(&s.DepartmentName, &s.DepartmentID, &s.DepartmentColor, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// CompanyOverview returns company-wide notification counters for the admin
// dashboard.
func (r *StatsRepository) CompanyOverview(ctx context.Context, companyID int) (*models.CompanyOverview, error) {
	query := `
		SELECT
			COUNT(DISTINCT n.id) AS total_notifications,
			COUNT(DISTINCT n.id) FILTER (WHERE n.requires_acceptance) AS acceptance_required,
			COUNT(DISTINCT nv.id) AS total_views,
			COUNT(DISTINCT nr.id) AS total_responses
		FROM notifications n
		LEFT JOIN notification_views nv ON n.id = nv.notification_id
		LEFT JOIN notification_responses nr ON n.id = nr.notification_id
		WHERE n.company_id = $1
	`

	overview := &models.CompanyOverview{}
	err := database.DB.QueryRow(ctx, query, companyID).Scan(
		&overview.TotalNotifications,
		&overview.AcceptanceRequired,
		&overview.TotalViews,
		&overview.TotalResponses,
	)
	if err != nil {
		return nil, err
	}

	return overview, nil
}
