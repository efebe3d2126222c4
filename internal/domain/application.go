package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusReviewed  ApplicationStatus = "REVIEWED"
	ApplicationStatusInterview ApplicationStatus = "INTERVIEW"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusInterview,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application links one candidate profile to one job
type Application struct {
	ID          int64             `json:"id"`
	CandidateID string            `json:"candidate_id"`
	JobID       int64             `json:"job_id"`
	Status      ApplicationStatus `json:"status"` // any status may follow any other
	CoverLetter *string           `json:"cover_letter,omitempty"`
	ResumeKey   *string           `json:"resume_key,omitempty"` // snapshot at submission
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string `json:"job_title,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	CandidateName  *string `json:"candidate_name,omitempty"`
	CandidateType  *string `json:"candidate_type,omitempty"`
}

// ApplicationDetails is the application joined with its job, company and full candidate aggregate
type ApplicationDetails struct {
	Application *Application      `json:"application"`
	Job         *JobWithCompany   `json:"job"`
	Candidate   *CandidateProfile `json:"candidate"`
}

type SubmitApplicationRequest struct {
	CoverLetter *string `json:"cover_letter" validate:"omitempty,max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	Exists(ctx context.Context, candidateID string, jobID int64) (bool, error)
	ListByCandidateID(ctx context.Context, candidateID string) ([]Application, error)
	ListByJobID(ctx context.Context, jobID int64) ([]Application, error)
	List(ctx context.Context, status string, limit, offset int) ([]Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	// Candidate operations
	SubmitApplication(ctx context.Context, actor Identity, jobID int64, req *SubmitApplicationRequest) (*Application, error)
	ListMyApplications(ctx context.Context, actor Identity) ([]Application, error)

	// Employer / admin operations
	GetApplicationDetails(ctx context.Context, actor Identity, applicationID int64) (*ApplicationDetails, error)
	SetApplicationStatus(ctx context.Context, actor Identity, applicationID int64, status ApplicationStatus) (*Application, error)
	ListJobApplications(ctx context.Context, actor Identity, jobID int64) ([]Application, error)
	ExportJobApplications(ctx context.Context, actor Identity, jobID int64) ([]byte, string, error)
}
