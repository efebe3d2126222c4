package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationListColumns = `
	a.id, a.candidate_id, a.job_id, a.status, a.cover_letter, a.resume_key, a.created_at, a.updated_at,
	j.title, co.name, u.email, u.name, c.candidate_type`

const applicationListFrom = `
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies co ON co.id = j.company_id
	JOIN candidate_profiles c ON c.id = a.candidate_id
	JOIN users u ON u.id = c.user_id`

func scanApplication(row pgx.Row, joined bool) (*domain.Application, error) {
	var app domain.Application
	dest := []any{
		&app.ID, &app.CandidateID, &app.JobID, &app.Status, &app.CoverLetter, &app.ResumeKey, &app.CreatedAt, &app.UpdatedAt,
	}
	if joined {
		dest = append(dest, &app.JobTitle, &app.CompanyName, &app.CandidateEmail, &app.CandidateName, &app.CandidateType)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application. UNIQUE(candidate_id, job_id) turns a double submit into domain.ErrConflict.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (candidate_id, job_id, status, cover_letter, resume_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, app.CandidateID, app.JobID, app.Status, app.CoverLetter, app.ResumeKey).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationListColumns + applicationListFrom + ` WHERE a.id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id), true)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return app, nil
}

// Exists checks if the candidate already applied to the job
func (r *applicationRepo) Exists(ctx context.Context, candidateID string, jobID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`
	err := r.db.QueryRow(ctx, query, candidateID, jobID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) ListByCandidateID(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationListColumns + applicationListFrom + `
		WHERE a.candidate_id = $1 ORDER BY a.created_at DESC`
	return r.list(ctx, query, candidateID)
}

func (r *applicationRepo) ListByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationListColumns + applicationListFrom + `
		WHERE a.job_id = $1 ORDER BY a.created_at DESC`
	return r.list(ctx, query, jobID)
}

func (r *applicationRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.Application, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE ($1 = '' OR status = $1)`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationListColumns + applicationListFrom + `
		WHERE ($1 = '' OR a.status = $1)
		ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`
	apps, err := r.list(ctx, query, status, limit, offset)
	return apps, total, err
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows, true)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateStatus updates the status of an application
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	query := `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
