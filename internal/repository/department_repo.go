package repository

import (
	"context"
	"errors"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInUse is returned when deleting a department or group that still has
// users, groups or notifications referencing it. The schema RESTRICTs those
// references instead of cascading or nullifying them.
var ErrInUse = errors.New("resource still referenced")

// foreignKeyViolation is the PostgreSQL error code raised by RESTRICT FKs.
const foreignKeyViolation = "23503"

// DepartmentRepository handles department rows.
type DepartmentRepository struct{}

// NewDepartmentRepository creates and returns a new DepartmentRepository
// instance.
func NewDepartmentRepository() *DepartmentRepository {
	return &DepartmentRepository{}
}

// List returns a company's departments ordered by name.
func (r *DepartmentRepository) List(ctx context.Context, companyID int) ([]models.Department, error) {
	query := `
		SELECT id, company_id, name, color, created_at, updated_at
		FROM departments
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := database.DB.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []models.Department{}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Color, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// GetByID returns one department or ErrNotFound.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int) (*models.Department, error) {
	query := `
		SELECT id, company_id, name, color, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var d models.Department
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.Color, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// Create inserts a department and fills the generated fields.
func (r *DepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	query := `
		INSERT INTO departments (company_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return database.DB.QueryRow(ctx, query, d.CompanyID, d.Name, d.Color).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// DepartmentPatch enumerates the editable department fields.
type DepartmentPatch struct {
	Name  *string
	Color *string
}

// Update applies the patch. Nil fields keep their stored value.
func (r *DepartmentRepository) Update(ctx context.Context, id int, patch DepartmentPatch) (*models.Department, error) {
	query := `
		UPDATE departments SET
			name = COALESCE($1, name),
			color = COALESCE($2, color),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, company_id, name, color, created_at, updated_at
	`

	var d models.Department
	err := database.DB.QueryRow(ctx, query, patch.Name, patch.Color, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.Color, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// Delete removes a department. Fails with ErrInUse while groups, users or
// notifications still reference it.
func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
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
