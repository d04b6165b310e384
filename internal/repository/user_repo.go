// Package repository provides the data access layer for the SGA application.
// This file handles user account management, authentication queries and user
// CRUD operations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned when creating or updating a user with an email
// that already belongs to another account. Emails are unique system-wide,
// not per company.
var ErrEmailTaken = errors.New("email already registered")

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// UserRepository handles user rows and their organizational membership.
type UserRepository struct{}

// NewUserRepository creates and returns a new UserRepository instance.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = `u.id, u.company_id, u.department_id, u.group_id, u.full_name,
			u.role, u.email, u.password, u.image_base64, u.created_at, u.updated_at,
			d.name AS department_name, g.name AS group_name`

const userJoins = `
		FROM users u
		LEFT JOIN departments d ON u.department_id = d.id
		LEFT JOIN groups g ON u.group_id = g.id`

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(
		&u.ID, &u.CompanyID, &u.DepartmentID, &u.GroupID, &u.FullName,
		&u.Role, &u.Email, &u.PasswordHash, &u.Image, &u.CreatedAt, &u.UpdatedAt,
		&u.DepartmentName, &u.GroupName,
	)
}

// List returns a company's users ordered by name, with department and group
// labels joined in.
func (r *UserRepository) List(ctx context.Context, companyID int) ([]models.User, error) {
	query := `SELECT ` + userColumns + userJoins + `
		WHERE u.company_id = $1
		ORDER BY u.full_name`
	return r.queryUsers(ctx, query, companyID)
}

// ListByGroup returns the members of one group ordered by name.
func (r *UserRepository) ListByGroup(ctx context.Context, groupID int) ([]models.User, error) {
	query := `SELECT ` + userColumns + userJoins + `
		WHERE u.group_id = $1
		ORDER BY u.full_name`
	return r.queryUsers(ctx, query, groupID)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, arg any) ([]models.User, error) {
	rows, err := database.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// GetByID returns one user or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + userJoins + ` WHERE u.id = $1`

	var u models.User
	err := scanUser(database.DB.QueryRow(ctx, query, id), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetByEmail returns the user owning the email, including the password hash
// for credential checks, or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + userJoins + ` WHERE u.email = $1`

	var u models.User
	err := scanUser(database.DB.QueryRow(ctx, query, email), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Create inserts a user. PasswordHash must already be hashed by the caller.
// A duplicate email fails with ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if !models.ValidRole(u.Role) {
		return fmt.Errorf("%w: unknown role '%s'", models.ErrValidation, u.Role)
	}

	query := `
		INSERT INTO users (company_id, department_id, group_id, full_name, role, email, password, image_base64)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := database.DB.QueryRow(ctx, query,
		u.CompanyID, u.DepartmentID, u.GroupID, u.FullName, u.Role, u.Email, u.PasswordHash, u.Image,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}

	return nil
}

// UserPatch enumerates the editable user fields. A nil field keeps the
// stored value; company_id is immutable. Clearing department or group
// membership is done by moving the user, not by patching to NULL.
type UserPatch struct {
	DepartmentID *int
	GroupID      *int
	FullName     *string
	Role         *string
	Email        *string
	PasswordHash *string
	Image        *string
}

// Update applies the patch through a single parameterized statement.
func (r *UserRepository) Update(ctx context.Context, id int, patch UserPatch) (*models.User, error) {
	if patch.Role != nil && !models.ValidRole(*patch.Role) {
		return nil, fmt.Errorf("%w: unknown role '%s'", models.ErrValidation, *patch.Role)
	}

	query := `
		UPDATE users SET
			department_id = COALESCE($1, department_id),
			group_id = COALESCE($2, group_id),
			full_name = COALESCE($3, full_name),
			role = COALESCE($4, role),
			email = COALESCE($5, email),
			password = COALESCE($6, password),
			image_base64 = COALESCE($7, image_base64),
			updated_at = NOW()
		WHERE id = $8
		RETURNING id, company_id, department_id, group_id, full_name,
			role, email, password, image_base64, created_at, updated_at
	`

	var u models.User
	err := database.DB.QueryRow(ctx, query,
		patch.DepartmentID, patch.GroupID, patch.FullName, patch.Role,
		patch.Email, patch.PasswordHash, patch.Image, id,
	).Scan(
		&u.ID, &u.CompanyID, &u.DepartmentID, &u.GroupID, &u.FullName,
		&u.Role, &u.Email, &u.PasswordHash, &u.Image, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &u, nil
}

// Delete removes a user. Their view and response rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
