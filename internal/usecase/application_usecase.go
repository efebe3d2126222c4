package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/security"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	validate        *validator.Validate
	secLog          *security.SecurityLogger
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	validate *validator.Validate,
	secLog *security.SecurityLogger,
	now func() time.Time,
) domain.ApplicationUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	if now == nil {
		now = time.Now
	}
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		validate:        validate,
		secLog:          secLog,
		now:             now,
	}
}

// SubmitApplication applies the caller's profile to an open job
func (uc *applicationUsecase) SubmitApplication(ctx context.Context, actor domain.Identity, jobID int64, req *domain.SubmitApplicationRequest) (*domain.Application, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !actor.IsCandidate() {
		return nil, apperror.Forbidden("Only candidates can apply to jobs")
	}
	if req == nil {
		req = &domain.SubmitApplicationRequest{}
	}
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FieldErrors(err))
	}

	profile, err := uc.candidateRepo.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Complete your candidate profile before applying")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !job.AcceptsApplications(uc.now()) {
		return nil, apperror.BadRequest("job closed")
	}

	exists, err := uc.applicationRepo.Exists(ctx, profile.ID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		CandidateID: profile.ID,
		JobID:       jobID,
		Status:      domain.ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
		ResumeKey:   profile.ResumeKey,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return nil, apperror.Conflict("You have already applied to this job")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Job not found")
		}
		logger.Log.Error("application create failed", "candidate_id", profile.ID, "job_id", jobID, "error", err)
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("application submitted", "application_id", app.ID, "candidate_id", profile.ID, "job_id", jobID)
	return app, nil
}

// ListMyApplications returns every application of the caller's profile, newest first
func (uc *applicationUsecase) ListMyApplications(ctx context.Context, actor domain.Identity) ([]domain.Application, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := uc.candidateRepo.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Application{}, nil
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	apps, err := uc.applicationRepo.ListByCandidateID(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// GetApplicationDetails is visible to the applicant, the job's employer and admins.
func (uc *applicationUsecase) GetApplicationDetails(ctx context.Context, actor domain.Identity, applicationID int64) (*domain.ApplicationDetails, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Application not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByIDWithCompany(ctx, app.JobID)
	if err != nil {
		return nil, mapJobLookup(err)
	}
	candidate, err := uc.candidateRepo.GetByID(ctx, app.CandidateID)
	if err != nil {
		return nil, mapCandidateLookup(err)
	}

	allowed := domain.CanManageCompany(actor, job.CompanyID) ||
		(actor.IsCandidate() && domain.CanViewCandidate(actor, candidate.UserID))
	if !allowed {
		uc.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "application", fmt.Sprint(applicationID))
		return nil, apperror.Forbidden("You do not have access to this application")
	}

	return &domain.ApplicationDetails{
		Application: app,
		Job:         job,
		Candidate:   candidate,
	}, nil
}

// SetApplicationStatus moves an application to any status. Every change is logged with from and to.
func (uc *applicationUsecase) SetApplicationStatus(ctx context.Context, actor domain.Identity, applicationID int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !status.Valid() {
		return nil, apperror.Validation(map[string]string{
			"status": "must be one of PENDING, REVIEWED, INTERVIEW, REJECTED, ACCEPTED",
		})
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Application not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, mapJobLookup(err)
	}
	if !domain.CanManageCompany(actor, job.CompanyID) {
		uc.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "application", fmt.Sprint(applicationID))
		return nil, apperror.Forbidden("Only the job's employer can change this application")
	}

	from := app.Status
	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	app.Status = status
	app.UpdatedAt = uc.now()

	logger.Log.Info("application status changed",
		"application_id", applicationID,
		"actor_id", actor.UserID,
		"from", from,
		"to", status,
	)
	return app, nil
}

// ListJobApplications returns applicants of a job owned by the caller's company
func (uc *applicationUsecase) ListJobApplications(ctx context.Context, actor domain.Identity, jobID int64) ([]domain.Application, error) {
	if err := uc.authorizeJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ExportJobApplications renders the applicants of a job as an xlsx workbook
func (uc *applicationUsecase) ExportJobApplications(ctx context.Context, actor domain.Identity, jobID int64) ([]byte, string, error) {
	if err := uc.authorizeJob(ctx, actor, jobID); err != nil {
		return nil, "", err
	}
	apps, err := uc.applicationRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	data, err := buildApplicantsWorkbook(apps)
	if err != nil {
		logger.Log.Error("applicant export failed", "job_id", jobID, "error", err)
		return nil, "", apperror.Internal(err)
	}

	uc.secLog.LogDataExport(ctx, actor.UserID, jobID, len(apps))
	filename := fmt.Sprintf("applicants-job-%d-%s.xlsx", jobID, uc.now().UTC().Format("20060102"))
	return data, filename, nil
}

func (uc *applicationUsecase) authorizeJob(ctx context.Context, actor domain.Identity, jobID int64) error {
	if actor.UserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return mapJobLookup(err)
	}
	if !domain.CanManageCompany(actor, job.CompanyID) {
		uc.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "job_applications", fmt.Sprint(jobID))
		return apperror.Forbidden("You do not own this job")
	}
	return nil
}

var applicantColumns = []string{
	"APPLICATION ID", "CANDIDATE NAME", "EMAIL", "CANDIDATE TYPE", "STATUS", "APPLIED AT", "UPDATED AT",
}

func buildApplicantsWorkbook(apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Applicants"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, name := range applicantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1B5E20"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(applicantColumns), 1)
	if err := f.SetCellStyle(sheet, "A1", endCell, headerStyle); err != nil {
		return nil, err
	}

	for r, app := range apps {
		row := []any{
			app.ID,
			deref(app.CandidateName),
			deref(app.CandidateEmail),
			deref(app.CandidateType),
			string(app.Status),
			app.CreatedAt.UTC().Format(time.RFC3339),
			app.UpdatedAt.UTC().Format(time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheet, "A", "G", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapJobLookup(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	logger.Log.Error("job lookup failed", "error", err)
	return apperror.Internal(err)
}
