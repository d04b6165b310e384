package repository

import (
	"context"
	"errors"

	"github.com/brenio55/SGA/internal/database"
	"github.com/brenio55/SGA/internal/models"
	"github.com/jackc/pgx/v5"
)

// CompanyRepository handles company rows, the root tenant records.
type CompanyRepository struct{}

// NewCompanyRepository creates and returns a new CompanyRepository instance.
func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{}
}

// List returns all companies ordered by name.
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	query := `
		SELECT id, name, logo_base64, created_at, updated_at
		FROM companies
		ORDER BY name
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Logo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// GetByID returns one company or ErrNotFound.
func (r *CompanyRepository) GetByID(ctx context.Context, id int) (*models.Company, error) {
	query := `
		SELECT id, name, logo_base64, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c models.Company
	err := database.DB.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Logo, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Create inserts a company and fills the generated fields.
func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	query := `
		INSERT INTO companies (name, logo_base64)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return database.DB.QueryRow(ctx, query, c.Name, c.Logo).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// CompanyPatch enumerates the editable company fields.
type CompanyPatch struct {
	Name *string
	Logo *string
}

// Update applies the patch. Nil fields keep their stored value.
func (r *CompanyRepository) Update(ctx context.Context, id int, patch CompanyPatch) (*models.Company, error) {
	query := `
		UPDATE companies SET
			name = COALESCE($1, name),
			logo_base64 = COALESCE($2, logo_base64),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, logo_base64, created_at, updated_at
	`

	var c models.Company
	err := database.DB.QueryRow(ctx, query, patch.Name, patch.Logo, id).Scan(
		&c.ID, &c.Name, &c.Logo, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Delete removes a company. Departments, users and notifications cascade.
func (r *CompanyRepository) Delete(ctx context.Context, id int) error {
	tag, err := database.DB.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
