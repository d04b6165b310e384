// Package repository_test provides unit tests for the repository layer.
// Tests use pgxmock v4 for database mocking and follow table-driven testing
// patterns. Feed repository tests verify the derived pending/history state.
package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedColumns mirrors the SELECT list of ListPending.
var feedColumns = []string{
	"id", "company_id", "department_id", "title", "description",
	"type", "requires_acceptance", "created_at", "updated_at",
	"department_name", "user_response", "view_status",
}

// TestFeedRepository_ListPending verifies the pending inbox query.
// A notification is pending when it targets the user, the user has not
// responded, and the user either has not viewed it or it requires
// acceptance.
//
// Test Cases:
//   - unviewed notification appears as pending
//   - viewed acceptance-required notification still appears, marked read
//   - empty inbox returns an empty slice, not nil
func TestFeedRepository_ListPending(t *testing.T) {
	testTime := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	deptName := "Engineering"

	tests := []struct {
		name       string
		mockSetup  func(pgxmock.PgxPoolIface)
		wantCount  int
		wantStatus string
	}{
		{
			name: "unviewed notification is pending",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(feedColumns).
					AddRow(1, 10, nil, "Maintenance window", "Saturday 02:00", "normal", false,
						testTime, testTime, nil, nil, "pending")
				mock.ExpectQuery("SELECT DISTINCT").
					WithArgs(7, 10).
					WillReturnRows(rows)
			},
			wantCount:  1,
			wantStatus: "pending",
		},
		{
			name: "viewed acceptance-required notification stays pending as read",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(feedColumns).
					AddRow(2, 10, ptr(3), "New security policy", "Please accept", "important", true,
						testTime, testTime, &deptName, nil, "read")
				mock.ExpectQuery("SELECT DISTINCT").
					WithArgs(7, 10).
					WillReturnRows(rows)
			},
			wantCount:  1,
			wantStatus: "read",
		},
		{
			name: "empty inbox",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT DISTINCT").
					WithArgs(7, 10).
					WillReturnRows(pgxmock.NewRows(feedColumns))
			},
			wantCount: 0,
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
			repo := repository.NewFeedRepository()

			items, err := repo.ListPending(context.Background(), 7, 10)

			assert.NoError(t, err, "Query should succeed")
			require.NotNil(t, items, "Should return a slice even when empty")
			assert.Len(t, items, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantStatus, items[0].ViewStatus)
				assert.Nil(t, items[0].UserResponse, "Pending rows never carry a response")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestFeedRepository_ListHistory verifies the resolved-history query.
// History rows carry the user's own timestamps, ordered newest first by
// the response timestamp when present, otherwise the view timestamp.
func TestFeedRepository_ListHistory(t *testing.T) {
	viewedAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	respondedAt := viewedAt.Add(2 * time.Hour)
	accepted := "accepted"

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	oldDB := database.DB
	database.DB = mock
	defer func() { database.DB = oldDB }()

	columns := append(append([]string{}, feedColumns...), "viewed_at", "responded_at", "effective_at")
	rows := pgxmock.NewRows(columns).
		AddRow(2, 10, nil, "Policy update", "Accepted earlier", "important", true,
			viewedAt, viewedAt, nil, &accepted, "read", &viewedAt, &respondedAt, &respondedAt).
		AddRow(1, 10, nil, "Old announcement", "Read only", "normal", false,
			viewedAt, viewedAt, nil, nil, "read", &viewedAt, nil, &viewedAt)
	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs(7, 10).
		WillReturnRows(rows)

	repo := repository.NewFeedRepository()

	items, err := repo.ListHistory(context.Background(), 7, 10)

	assert.NoError(t, err, "Query should succeed")
	require.Len(t, items, 2)

	assert.Equal(t, "Policy update", items[0].Title, "Responded item sorts first")
	require.NotNil(t, items[0].UserResponse)
	assert.Equal(t, "accepted", *items[0].UserResponse)
	require.NotNil(t, items[0].RespondedAt)
	assert.Equal(t, respondedAt, *items[0].RespondedAt)

	assert.Nil(t, items[1].UserResponse, "View-only item has no response")
	require.NotNil(t, items[1].ViewedAt)
	assert.Equal(t, viewedAt, *items[1].ViewedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestFeedRepository_HistoryExcludesUnresolvedAcceptance pins the history
// predicate: a view alone only resolves a notification when it does not
// require acceptance, so the query must gate the view arm on
// NOT requires_acceptance. Without that guard a viewed, unresponded,
// acceptance-required notification would appear in both the inbox and the
// history at once. The same expectation pins the view_status projection,
// which reports 'read' when either ledger has a row.
func TestFeedRepository_HistoryExcludesUnresolvedAcceptance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	oldDB := database.DB
	database.DB = mock
	defer func() { database.DB = oldDB }()

	columns := append(append([]string{}, feedColumns...), "viewed_at", "responded_at", "effective_at")
	mock.ExpectQuery(`(?s)CASE WHEN nv\.id IS NOT NULL OR nr\.id IS NOT NULL THEN 'read'.*` +
		`nr\.id IS NOT NULL OR \(nv\.id IS NOT NULL AND NOT n\.requires_acceptance\)`).
		WithArgs(7, 10).
		WillReturnRows(pgxmock.NewRows(columns))

	repo := repository.NewFeedRepository()

	items, err := repo.ListHistory(context.Background(), 7, 10)

	assert.NoError(t, err, "Query should carry the acceptance guard")
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ptr is a test helper for optional int columns.
func ptr(v int) *int { return &v }
