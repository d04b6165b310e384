// Package repository_test provides unit tests for the repository layer.
// View repository tests verify the idempotent view insert and the
// reporting aggregations.
package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestViewRepository_Create verifies the idempotent view insert.
// The first view of a (notification, user) pair creates a row; any later
// view is absorbed by ON CONFLICT DO NOTHING and reported via the
// created=false return, never as an error.
//
// Test Cases:
//   - first view: row inserted and returned, created=true
//   - repeat view: no row returned, created=false, nil error
func TestViewRepository_Create(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mockSetup   func(pgxmock.PgxPoolIface)
		wantCreated bool
	}{
		{
			name: "first view inserts",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "notification_id", "user_id", "viewed_at"}).
					AddRow(1, 5, 7, testTime)
				mock.ExpectQuery("INSERT INTO notification_views").
					WithArgs(5, 7).
					WillReturnRows(rows)
			},
			wantCreated: true,
		},
		{
			name: "repeat view is a no-op",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				// ON CONFLICT DO NOTHING returns no row
				mock.ExpectQuery("INSERT INTO notification_views").
					WithArgs(5, 7).
					WillReturnError(pgx.ErrNoRows)
			},
			wantCreated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			oldDB := database.DB
			database.DB = mock
			defer func() { database.DB = oldDB }()

			tt.mockSetup(mock)
			repo := repository.NewViewRepository()

			view, created, err := repo.Create(context.Background(), 5, 7)

			assert.NoError(t, err, "Repeat views must not surface as errors")
			assert.Equal(t, tt.wantCreated, created)
			if tt.wantCreated {
				require.NotNil(t, view)
				assert.Equal(t, 5, view.NotificationID)
				assert.Equal(t, 7, view.UserID)
			} else {
				assert.Nil(t, view, "No row on the conflict path")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestViewRepository_ListByNotification verifies the enriched per-notification
// view listing used by admin reporting.
func TestViewRepository_ListByNotification(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	dept := "Engineering"

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	oldDB := database.DB
	database.DB = mock
	defer func() { database.DB = oldDB }()

	rows := pgxmock.NewRows([]string{
		"id", "notification_id", "user_id", "viewed_at",
		"full_name", "role", "department_name", "group_name",
	}).
		AddRow(2, 5, 8, testTime.Add(time.Hour), "Bruna Lima", "user", &dept, nil).
		AddRow(1, 5, 7, testTime, "Carlos Souza", "manager", nil, nil)
	mock.ExpectQuery("FROM notification_views nv").
		WithArgs(5).
		WillReturnRows(rows)

	repo := repository.NewViewRepository()

	views, err := repo.ListByNotification(context.Background(), 5)

	assert.NoError(t, err, "Query should succeed")
	require.Len(t, views, 2)
	assert.Equal(t, "Bruna Lima", views[0].FullName, "Newest view first")
	require.NotNil(t, views[0].DepartmentName)
	assert.Equal(t, "Engineering", *views[0].DepartmentName)
	assert.Nil(t, views[1].DepartmentName, "Departmentless viewer stays nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestViewRepository_CountByDepartment verifies the per-department view
// aggregation for one notification.
func TestViewRepository_CountByDepartment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	oldDB := database.DB
	database.DB = mock
	defer func() { database.DB = oldDB }()

	rows := pgxmock.NewRows([]string{"department", "users_viewed", "total_views"}).
		AddRow("Engineering", 4, 4).
		AddRow("Sales", 2, 2)
	mock.ExpectQuery("GROUP BY d.id, d.name").
		WithArgs(5).
		WillReturnRows(rows)

	repo := repository.NewViewRepository()

	counts, err := repo.CountByDepartment(context.Background(), 5)

	assert.NoError(t, err, "Query should succeed")
	require.Len(t, counts, 2)
	assert.Equal(t, "Engineering", counts[0].Department)
	assert.Equal(t, 4, counts[0].UsersViewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
