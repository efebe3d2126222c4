package postgres

import (
	"context"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	c.id, c.user_id, c.candidate_type, c.gender, c.pwd_category, c.lgbtq_identity, c.employment_break,
	c.years_of_experience, c.skills, c.bio, c.date_of_birth, c.contact,
	c.resume_key, c.resume_url, c.resume_url_expires_at, c.created_at, c.updated_at`

func scanCandidate(row pgx.Row, extra ...any) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	var cols domain.CandidateTypeColumns
	var candidateType string

	dest := []any{
		&p.ID, &p.UserID, &candidateType, &cols.Gender, &cols.PwdCategory, &cols.LgbtqIdentity, &cols.EmploymentBreak,
		&p.YearsOfExperience, pq.Array(&p.Skills), &p.Bio, &p.DateOfBirth, &p.Contact,
		&p.ResumeKey, &p.ResumeURL, &p.ResumeURLExpiresAt, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	cols.Type = domain.CandidateType(candidateType)
	details, err := cols.Details()
	if err != nil {
		return nil, err
	}
	p.Details = details
	return &p, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	return r.getOne(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles c WHERE c.id = $1`, id)
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	return r.getOne(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles c WHERE c.user_id = $1`, userID)
}

func (r *candidateRepository) getOne(ctx context.Context, query string, arg string) (*domain.CandidateProfile, error) {
	if _, err := uuid.Parse(arg); err != nil {
		return nil, domain.ErrNotFound
	}

	p, err := scanCandidate(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapNoRows(err)
	}
	if err := loadChildren(ctx, r.db, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *candidateRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM candidate_profiles WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}

// Create inserts the profile and its children atomically.
// A second profile for the same user fails on UNIQUE(user_id) with domain.ErrConflict.
func (r *candidateRepository) Create(ctx context.Context, p *domain.CandidateProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cols := domain.FlattenCandidateTypeDetails(p.Details)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO candidate_profiles (
			id, user_id, candidate_type, gender, pwd_category, lgbtq_identity, employment_break,
			years_of_experience, skills, bio, date_of_birth, contact,
			resume_key, resume_url, resume_url_expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		p.ID, p.UserID, string(cols.Type), cols.Gender, cols.PwdCategory, cols.LgbtqIdentity, cols.EmploymentBreak,
		p.YearsOfExperience, pq.Array(p.Skills), p.Bio, p.DateOfBirth, p.Contact,
		p.ResumeKey, p.ResumeURL, p.ResumeURLExpiresAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to insert candidate profile: %w", err)
	}

	if err := reconcileAll(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update replaces scalar fields and reconciles every child collection against the profile's
// desired state inside one transaction.
func (r *candidateRepository) Update(ctx context.Context, p *domain.CandidateProfile) error {
	cols := domain.FlattenCandidateTypeDetails(p.Details)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE candidate_profiles SET
			candidate_type = $2, gender = $3, pwd_category = $4, lgbtq_identity = $5, employment_break = $6,
			years_of_experience = $7, skills = $8, bio = $9, date_of_birth = $10, contact = $11,
			resume_key = $12, resume_url = $13, resume_url_expires_at = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err = tx.QueryRow(ctx, query,
		p.ID, string(cols.Type), cols.Gender, cols.PwdCategory, cols.LgbtqIdentity, cols.EmploymentBreak,
		p.YearsOfExperience, pq.Array(p.Skills), p.Bio, p.DateOfBirth, p.Contact,
		p.ResumeKey, p.ResumeURL, p.ResumeURLExpiresAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return mapNoRows(err)
	}

	if err := reconcileAll(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *candidateRepository) UpdateResume(ctx context.Context, id string, key, url *string, expiresAt *time.Time) error {
	query := `
		UPDATE candidate_profiles
		SET resume_key = $2, resume_url = $3, resume_url_expires_at = $4, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, key, url, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepository) List(ctx context.Context, filter domain.CandidateFilter, limit, offset int) ([]domain.CandidateProfile, int64, error) {
	where := `WHERE ($1 = '' OR c.candidate_type = $1)
		AND ($2 = '' OR u.email ILIKE '%' || $2 || '%' OR COALESCE(u.name, '') ILIKE '%' || $2 || '%')`

	var total int64
	countQuery := `SELECT COUNT(*) FROM candidate_profiles c JOIN users u ON u.id = c.user_id ` + where
	if err := r.db.QueryRow(ctx, countQuery, filter.CandidateType, filter.Search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + candidateColumns + `, u.email, u.name
		FROM candidate_profiles c JOIN users u ON u.id = c.user_id ` + where + `
		ORDER BY c.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.CandidateType, filter.Search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.CandidateProfile
	for rows.Next() {
		var email string
		var name *string
		p, err := scanCandidate(rows, &email, &name)
		if err != nil {
			return nil, 0, err
		}
		p.Email = &email
		p.Name = name
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}
