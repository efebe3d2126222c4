package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

// CreateForEmployer inserts the company and points the employer at it in one transaction.
func (r *companyRepo) CreateForEmployer(ctx context.Context, company *domain.Company, employerUserID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO companies (name, website, logo_url, description, created_at, updated_at)
              VALUES ($1, $2, $3, $4, NOW(), NOW())
              RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query, company.Name, company.Website, company.LogoURL, company.Description).
		Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	// Only attach employers that are not attached yet
	tag, err := tx.Exec(ctx,
		`UPDATE users SET company_id = $2, updated_at = NOW() WHERE id = $1 AND company_id IS NULL`,
		employerUserID, company.ID)
	if err != nil {
		return fmt.Errorf("failed to attach employer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}

	return tx.Commit(ctx)
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT id, name, website, logo_url, description, created_at, updated_at FROM companies WHERE id = $1`
	var c domain.Company
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Website, &c.LogoURL, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &c, nil
}

func (r *companyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies SET name = $2, website = $3, logo_url = $4, description = $5, updated_at = NOW()
              WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, c.ID, c.Name, c.Website, c.LogoURL, c.Description).Scan(&c.UpdatedAt)
	return mapNoRows(err)
}
