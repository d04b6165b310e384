// Package repository provides the data access layer for the SGA application.
// This file handles group management inside departments.
package repository

import (
	"context"
	"errors"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// GroupRepository handles group rows.
type GroupRepository struct{}

// NewGroupRepository creates and returns a new GroupRepository instance.
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{}
}

// List returns a department's groups ordered by name.
func (r *GroupRepository) List(ctx context.Context, departmentID int) ([]models.Group, error) {
	query := `
		SELECT id, department_id, name, description, created_at, updated_at
		FROM groups
		WHERE department_id = $1
		ORDER BY name
	`
	return r.queryGroups(ctx, query, departmentID)
}

// ListByCompany returns all groups of a company across its departments.
func (r *GroupRepository) ListByCompany(ctx context.Context, companyID int) ([]models.Group, error) {
	query := `
		SELECT g.id, g.department_id, g.name, g.description, g.created_at, g.updated_at
		FROM groups g
		JOIN departments d ON g.department_id = d.id
		WHERE d.company_id = $1
		ORDER BY g.name
	`
	return r.queryGroups(ctx, query, companyID)
}

func (r *GroupRepository) queryGroups(ctx context.Context, query string, arg any) ([]models.Group, error) {
	rows, err := database.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.DepartmentID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// GetByID returns one group or ErrNotFound.
func (r *GroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT id, department_id, name, description, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var g models.Group
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.DepartmentID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// Create inserts a group and fills the generated fields.
func (r *GroupRepository) Create(ctx context.Context, g *models.Group) error {
	query := `
		INSERT INTO groups (department_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return database.DB.QueryRow(ctx, query, g.DepartmentID, g.Name, g.Description).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// GroupPatch enumerates the editable group fields.
type GroupPatch struct {
	Name        *string
	Description *string
}

// Update applies the patch. Nil fields keep their stored value.
func (r *GroupRepository) Update(ctx context.Context, id int, patch GroupPatch) (*models.Group, error) {
	query := `
		UPDATE groups SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, department_id, name, description, created_at, updated_at
	`

	var g models.Group
	err := database.DB.QueryRow(ctx, query, patch.Name, patch.Description, id).Scan(
		&g.ID, &g.DepartmentID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// Delete removes a group. Fails with ErrInUse while users still belong to it.
func (r *GroupRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
