package postgres

import (
	"context"
	"time"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches dashboard statistics
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{
		CandidatesByType:     map[string]int64{},
		ApplicationsByStatus: map[string]int64{},
		SystemHealth: domain.SystemHealth{
			Status:      "healthy",
			LastChecked: time.Now().UTC().Format(time.RFC3339),
		},
	}

	// Users by role
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var role string
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			rows.Close()
			return nil, err
		}
		stats.TotalUsers += n
		switch role {
		case domain.RoleAdmin:
			stats.UsersByRole.Admin = n
		case domain.RoleEmployer:
			stats.UsersByRole.Employer = n
		case domain.RoleCandidate:
			stats.UsersByRole.Candidate = n
		}
	}
	rows.Close()

	for _, t := range domain.CandidateTypes {
		stats.CandidatesByType[string(t)] = 0
	}
	if err := r.groupCounts(ctx, `SELECT candidate_type, COUNT(*) FROM candidate_profiles GROUP BY candidate_type`, stats.CandidatesByType, &stats.TotalCandidates); err != nil {
		return nil, err
	}

	for _, s := range domain.ApplicationStatuses {
		stats.ApplicationsByStatus[string(s)] = 0
	}
	if err := r.groupCounts(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`, stats.ApplicationsByStatus, &stats.TotalApplications); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&stats.TotalCompanies); err != nil {
		return nil, err
	}
	err = r.db.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM jobs`).Scan(&stats.TotalJobs, &stats.ActiveJobs)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *adminRepo) groupCounts(ctx context.Context, query string, into map[string]int64, total *int64) error {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
		*total += n
	}
	return rows.Err()
}

// ListUsers fetches paginated users with optional role filter
func (r *adminRepo) ListUsers(ctx context.Context, role string, page, pageSize int) ([]domain.AdminUser, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE ($1 = '' OR role = $1)`, role).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, email, role, company_id, is_disabled, created_at, updated_at
	          FROM users WHERE ($1 = '' OR role = $1)
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, role, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.AdminUser{}
	for rows.Next() {
		var u domain.AdminUser
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.CompanyID, &u.IsDisabled, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		u.CreatedAt = createdAt.Format(time.RFC3339)
		u.UpdatedAt = updatedAt.Format(time.RFC3339)
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// ListJobsForAdmin lists jobs with company name and applicant count for moderation
func (r *adminRepo) ListJobsForAdmin(ctx context.Context, active *bool, page, pageSize int) ([]domain.AdminJob, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE ($1::boolean IS NULL OR is_active = $1)`, active).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT j.id, j.title, j.company_id, c.name, j.category, j.is_active, j.deadline,
		       (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id),
		       j.created_at, j.updated_at
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE ($1::boolean IS NULL OR j.is_active = $1)
		ORDER BY j.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, active, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.AdminJob{}
	for rows.Next() {
		var j domain.AdminJob
		var deadline *time.Time
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&j.ID, &j.Title, &j.CompanyId, &j.CompanyName, &j.Category, &j.IsActive, &deadline,
			&j.Applicants, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		if deadline != nil {
			j.Deadline = deadline.Format(time.RFC3339)
		}
		j.CreatedAt = createdAt.Format(time.RFC3339)
		j.UpdatedAt = updatedAt.Format(time.RFC3339)
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}
