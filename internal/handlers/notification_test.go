// Package handlers_test provides unit tests for the HTTP handlers.
// Tests mount a handler on a fiber app and drive it through app.Test with
// the database swapped for pgxmock.
package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var responseColumns = []string{"id", "notification_id", "user_id", "response_type", "responded_at"}

// TestNotificationHandler_Respond verifies the accept/reject endpoint. The
// first decision for a (notification, user) pair is created (201); a later
// submission replaces it (200). The handler looks the pair up before the
// upsert to tell the two apart.
//
// Test Cases:
//   - first decision returns 201
//   - replacing an earlier decision returns 200
//   - missing body fields return 400 without touching the database
func TestNotificationHandler_Respond(t *testing.T) {
	respondedAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		mockSetup  func(pgxmock.PgxPoolIface)
		wantStatus int
	}{
		{
			name: "first decision is created",
			body: `{"user_id": 7, "response_type": "accepted"}`,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, notification_id, user_id").
					WithArgs(2, 7).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery("INSERT INTO notification_responses").
					WithArgs(2, 7, "accepted").
					WillReturnRows(pgxmock.NewRows(responseColumns).
						AddRow(1, 2, 7, "accepted", respondedAt))
			},
			wantStatus: fiber.StatusCreated,
		},
		{
			name: "later submission replaces the decision",
			body: `{"user_id": 7, "response_type": "rejected"}`,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, notification_id, user_id").
					WithArgs(2, 7).
					WillReturnRows(pgxmock.NewRows(responseColumns).
						AddRow(1, 2, 7, "accepted", respondedAt))
				mock.ExpectQuery("INSERT INTO notification_responses").
					WithArgs(2, 7, "rejected").
					WillReturnRows(pgxmock.NewRows(responseColumns).
						AddRow(1, 2, 7, "rejected", respondedAt.Add(time.Hour)))
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing response_type is rejected",
			body:       `{"user_id": 7}`,
			mockSetup:  func(pgxmock.PgxPoolIface) {},
			wantStatus: fiber.StatusBadRequest,
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

			app := fiber.New()
			h := handlers.NewNotificationHandler()
			app.Post("/api/notifications/:id/respond", h.Respond)

			req := httptestRequest(http.MethodPost, "/api/notifications/2/respond", tt.body)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// httptestRequest builds a JSON request for app.Test.
func httptestRequest(method, target, body string) *http.Request {
	req, _ := http.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
