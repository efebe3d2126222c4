package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/lib/pq"
)

// childTable describes how one owned collection of the candidate aggregate is stored.
type childTable[T domain.ChildEntity] struct {
	name   string
	load   func(ctx context.Context, q querier, candidateID string) ([]T, error)
	insert func(ctx context.Context, q querier, candidateID string, v T) error
	update func(ctx context.Context, q querier, candidateID string, v T) error
	withID func(T, int64) T
}

// reconcile applies the set difference between stored and desired rows, then reloads them.
func (t childTable[T]) reconcile(ctx context.Context, q querier, candidateID string, desired []T) ([]T, error) {
	existing, err := t.load(ctx, q, candidateID)
	if err != nil {
		return nil, err
	}

	plan := domain.PlanReconcile(existing, desired, t.withID)

	if len(plan.Delete) > 0 {
		query := `DELETE FROM ` + t.name + ` WHERE candidate_id = $1 AND id = ANY($2)`
		if _, err := q.Exec(ctx, query, candidateID, pq.Array(plan.Delete)); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", t.name, err)
		}
	}
	for _, v := range plan.Update {
		if err := t.update(ctx, q, candidateID, v); err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", t.name, err)
		}
	}
	for _, v := range plan.Insert {
		if err := t.insert(ctx, q, candidateID, v); err != nil {
			return nil, fmt.Errorf("failed to insert %s: %w", t.name, err)
		}
	}

	return t.load(ctx, q, candidateID)
}

var educationTable = childTable[domain.Education]{
	name:   "candidate_educations",
	load:   loadEducations,
	withID: domain.WithEducationID,
	insert: func(ctx context.Context, q querier, candidateID string, e domain.Education) error {
		_, err := q.Exec(ctx, `
			INSERT INTO candidate_educations (candidate_id, degree, specialization, institution, completion_date, cgpa)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			candidateID, e.Degree, e.Specialization, e.Institution, e.CompletionDate, e.CGPA)
		return err
	},
	update: func(ctx context.Context, q querier, candidateID string, e domain.Education) error {
		_, err := q.Exec(ctx, `
			UPDATE candidate_educations
			SET degree = $3, specialization = $4, institution = $5, completion_date = $6, cgpa = $7
			WHERE id = $1 AND candidate_id = $2`,
			e.ID, candidateID, e.Degree, e.Specialization, e.Institution, e.CompletionDate, e.CGPA)
		return err
	},
}

var certificationTable = childTable[domain.Certification]{
	name:   "candidate_certifications",
	load:   loadCertifications,
	withID: domain.WithCertificationID,
	insert: func(ctx context.Context, q querier, candidateID string, c domain.Certification) error {
		_, err := q.Exec(ctx, `
			INSERT INTO candidate_certifications (candidate_id, name, issuing_company, issue_date, expiration_date)
			VALUES ($1, $2, $3, $4, $5)`,
			candidateID, c.Name, c.IssuingCompany, c.IssueDate, c.ExpirationDate)
		return err
	},
	update: func(ctx context.Context, q querier, candidateID string, c domain.Certification) error {
		_, err := q.Exec(ctx, `
			UPDATE candidate_certifications
			SET name = $3, issuing_company = $4, issue_date = $5, expiration_date = $6
			WHERE id = $1 AND candidate_id = $2`,
			c.ID, candidateID, c.Name, c.IssuingCompany, c.IssueDate, c.ExpirationDate)
		return err
	},
}

var workExperienceTable = childTable[domain.WorkExperience]{
	name:   "candidate_work_experiences",
	load:   loadWorkExperiences,
	withID: domain.WithWorkExperienceID,
	insert: func(ctx context.Context, q querier, candidateID string, w domain.WorkExperience) error {
		w = w.Normalized()
		_, err := q.Exec(ctx, `
			INSERT INTO candidate_work_experiences
				(candidate_id, company_name, position, start_date, end_date, currently_working, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			candidateID, w.CompanyName, w.Position, w.StartDate, w.EndDate, w.CurrentlyWorking, w.Description)
		return err
	},
	update: func(ctx context.Context, q querier, candidateID string, w domain.WorkExperience) error {
		w = w.Normalized()
		_, err := q.Exec(ctx, `
			UPDATE candidate_work_experiences
			SET company_name = $3, position = $4, start_date = $5, end_date = $6, currently_working = $7, description = $8
			WHERE id = $1 AND candidate_id = $2`,
			w.ID, candidateID, w.CompanyName, w.Position, w.StartDate, w.EndDate, w.CurrentlyWorking, w.Description)
		return err
	},
}

// reconcileAll brings every child collection of p to its desired state and stores the
// persisted rows back on p.
func reconcileAll(ctx context.Context, q querier, p *domain.CandidateProfile) error {
	var err error
	if p.Educations, err = educationTable.reconcile(ctx, q, p.ID, p.Educations); err != nil {
		return err
	}
	if p.Certifications, err = certificationTable.reconcile(ctx, q, p.ID, p.Certifications); err != nil {
		return err
	}
	if p.WorkExperiences, err = workExperienceTable.reconcile(ctx, q, p.ID, p.WorkExperiences); err != nil {
		return err
	}
	return nil
}

func loadChildren(ctx context.Context, q querier, p *domain.CandidateProfile) error {
	var err error
	if p.Educations, err = loadEducations(ctx, q, p.ID); err != nil {
		return fmt.Errorf("failed to fetch educations: %w", err)
	}
	if p.Certifications, err = loadCertifications(ctx, q, p.ID); err != nil {
		return fmt.Errorf("failed to fetch certifications: %w", err)
	}
	if p.WorkExperiences, err = loadWorkExperiences(ctx, q, p.ID); err != nil {
		return fmt.Errorf("failed to fetch work experiences: %w", err)
	}
	return nil
}

func loadEducations(ctx context.Context, q querier, candidateID string) ([]domain.Education, error) {
	rows, err := q.Query(ctx, `
		SELECT id, candidate_id, degree, specialization, institution, completion_date, cgpa
		FROM candidate_educations WHERE candidate_id = $1
		ORDER BY completion_date DESC, id`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Degree, &e.Specialization, &e.Institution, &e.CompletionDate, &e.CGPA); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func loadCertifications(ctx context.Context, q querier, candidateID string) ([]domain.Certification, error) {
	rows, err := q.Query(ctx, `
		SELECT id, candidate_id, name, issuing_company, issue_date, expiration_date
		FROM candidate_certifications WHERE candidate_id = $1
		ORDER BY issue_date DESC, id`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Certification{}
	for rows.Next() {
		var c domain.Certification
		if err := rows.Scan(&c.ID, &c.CandidateID, &c.Name, &c.IssuingCompany, &c.IssueDate, &c.ExpirationDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadWorkExperiences(ctx context.Context, q querier, candidateID string) ([]domain.WorkExperience, error) {
	rows, err := q.Query(ctx, `
		SELECT id, candidate_id, company_name, position, start_date, end_date, currently_working, description
		FROM candidate_work_experiences WHERE candidate_id = $1
		ORDER BY start_date DESC, id`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WorkExperience{}
	for rows.Next() {
		var w domain.WorkExperience
		if err := rows.Scan(&w.ID, &w.CandidateID, &w.CompanyName, &w.Position, &w.StartDate, &w.EndDate, &w.CurrentlyWorking, &w.Description); err != nil {
			return nil, err
		}
		out = append(out, w.Normalized())
	}
	return out, rows.Err()
}
