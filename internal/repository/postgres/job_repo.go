package postgres

import (
	"context"
	"time"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `
	j.id, j.company_id, j.title, j.description, j.locations, j.employment_type, j.category, j.work_mode,
	j.job_for, j.salary_min, j.salary_max, j.deadline, j.is_active, j.created_at, j.updated_at`

const jobWithCompanyColumns = jobColumns + `, c.name, c.logo_url, c.website`

func scanJob(row pgx.Row, extra ...any) (*domain.Job, error) {
	var job domain.Job
	var jobFor []string
	dest := []any{
		&job.ID, &job.CompanyID, &job.Title, &job.Description, pq.Array(&job.Locations),
		&job.EmploymentType, &job.Category, &job.WorkMode, pq.Array(&jobFor),
		&job.SalaryMin, &job.SalaryMax, &job.Deadline, &job.IsActive, &job.CreatedAt, &job.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	job.JobFor = make([]domain.CandidateType, 0, len(jobFor))
	for _, t := range jobFor {
		job.JobFor = append(job.JobFor, domain.CandidateType(t))
	}
	return &job, nil
}

func scanJobWithCompany(row pgx.Row) (*domain.JobWithCompany, error) {
	var out domain.JobWithCompany
	job, err := scanJob(row, &out.CompanyName, &out.CompanyLogoURL, &out.CompanyWebsite)
	if err != nil {
		return nil, err
	}
	out.Job = *job
	return &out, nil
}

func jobForStrings(types []domain.CandidateType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (company_id, title, description, locations, employment_type, category, work_mode,
			job_for, salary_min, salary_max, deadline, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		job.CompanyID, job.Title, job.Description, pq.Array(job.Locations), job.EmploymentType, job.Category, job.WorkMode,
		pq.Array(jobForStrings(job.JobFor)), job.SalaryMin, job.SalaryMax, job.Deadline, job.IsActive,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return job, nil
}

// GetByIDWithCompany retrieves a job with company details
func (r *jobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	query := `SELECT ` + jobWithCompanyColumns + `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.id = $1`
	job, err := scanJobWithCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return job, nil
}

// FetchPublicActiveJobs lists active jobs whose deadline has not passed.
// A job with an empty job_for is open to every candidate type.
func (r *jobRepo) FetchPublicActiveJobs(ctx context.Context, filter domain.JobFilter, now time.Time, limit, offset int) ([]domain.JobWithCompany, int64, error) {
	where := `
		WHERE j.is_active = TRUE
		  AND (j.deadline IS NULL OR j.deadline >= $1)
		  AND ($2 = '' OR cardinality(j.job_for) = 0 OR $2 = ANY(j.job_for))
		  AND ($3 = '' OR j.category = $3)
		  AND ($4 = '' OR j.work_mode = $4)
		  AND ($5 = '' OR j.title ILIKE '%' || $5 || '%')`
	args := []any{now, filter.CandidateType, filter.Category, filter.WorkMode, filter.Search}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs j ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobWithCompanyColumns + `
		FROM jobs j
		JOIN companies c ON c.id = j.company_id ` + where + `
		ORDER BY j.created_at DESC
		LIMIT $6 OFFSET $7`

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.JobWithCompany
	for rows.Next() {
		job, err := scanJobWithCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID int64, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.company_id = $1 ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs SET
			title = $2, description = $3, locations = $4, employment_type = $5, category = $6, work_mode = $7,
			job_for = $8, salary_min = $9, salary_max = $10, deadline = $11, is_active = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		job.ID, job.Title, job.Description, pq.Array(job.Locations), job.EmploymentType, job.Category, job.WorkMode,
		pq.Array(jobForStrings(job.JobFor)), job.SalaryMin, job.SalaryMax, job.Deadline, job.IsActive,
	).Scan(&job.UpdatedAt)
	return mapNoRows(err)
}

func (r *jobRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
