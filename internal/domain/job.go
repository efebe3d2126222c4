package domain

import (
	"context"
	"time"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
	EmploymentTemporary  EmploymentType = "TEMPORARY"
)

type WorkMode string

const (
	WorkModeOnsite WorkMode = "ONSITE"
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeHybrid WorkMode = "HYBRID"
)

type Job struct {
	ID             int64           `json:"id"`
	CompanyID      int64           `json:"company_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Locations      []string        `json:"locations"`
	EmploymentType EmploymentType  `json:"employment_type"`
	Category       string          `json:"category"`
	WorkMode       WorkMode        `json:"work_mode"`
	JobFor         []CandidateType `json:"job_for"` // empty means open to every candidate type
	SalaryMin      *float64        `json:"salary_min"`
	SalaryMax      *float64        `json:"salary_max"`
	Deadline       *time.Time      `json:"deadline"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AcceptsApplications is true for active jobs whose deadline has not passed.
func (j *Job) AcceptsApplications(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	return j.Deadline == nil || !now.After(*j.Deadline)
}

// JobWithCompany extends Job with company information
type JobWithCompany struct {
	Job
	CompanyName    string  `json:"company_name"`
	CompanyLogoURL *string `json:"company_logo_url"`
	CompanyWebsite *string `json:"company_website"`
}

// JobInput is the employer-facing create/update body.
type JobInput struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Description    string     `json:"description" validate:"required,max=10000"`
	Locations      []string   `json:"locations" validate:"min=1,dive,required,max=100"`
	EmploymentType string     `json:"employment_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP TEMPORARY"`
	Category       string     `json:"category" validate:"required,max=100"`
	WorkMode       string     `json:"work_mode" validate:"required,oneof=ONSITE REMOTE HYBRID"`
	JobFor         []string   `json:"job_for" validate:"omitempty,dive,oneof=REGULAR PWD LGBTQ WOMEN_RETURNING"`
	SalaryMin      *float64   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *float64   `json:"salary_max" validate:"omitempty,gte=0"`
	Deadline       *time.Time `json:"deadline"`
	IsActive       *bool      `json:"is_active"`
}

type JobFilter struct {
	CandidateType string
	Category      string
	WorkMode      string
	Search        string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	GetByIDWithCompany(ctx context.Context, id int64) (*JobWithCompany, error)
	FetchPublicActiveJobs(ctx context.Context, filter JobFilter, now time.Time, limit, offset int) ([]JobWithCompany, int64, error)
	FetchByCompanyID(ctx context.Context, companyID int64, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor Identity, input *JobInput) (*Job, error)
	UpdateJob(ctx context.Context, actor Identity, id int64, input *JobInput) (*Job, error)
	SetVisibility(ctx context.Context, actor Identity, id int64, active bool) (*Job, error)
	DeleteJob(ctx context.Context, actor Identity, id int64) error
	GetJob(ctx context.Context, id int64) (*JobWithCompany, error)
	ListPublicJobs(ctx context.Context, filter JobFilter, page, pageSize int) (*PaginatedResult[JobWithCompany], error)
	ListCompanyJobs(ctx context.Context, actor Identity, page, pageSize int) (*PaginatedResult[Job], error)
}
