package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate, now func() time.Time) domain.JobUsecase {
	if now == nil {
		now = time.Now
	}
	return &jobUsecase{jobRepo: jobRepo, validate: validate, now: now}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actor domain.Identity, input *domain.JobInput) (*domain.Job, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !actor.IsEmployer() || actor.CompanyID == nil {
		return nil, apperror.Forbidden("Only employers attached to a company can post jobs")
	}
	if err := u.validateInput(input); err != nil {
		return nil, err
	}

	job := &domain.Job{CompanyID: *actor.CompanyID, IsActive: true}
	applyJobInput(job, input)

	if err := u.jobRepo.Create(ctx, job); err != nil {
		logger.Log.Error("job create failed", "company_id", job.CompanyID, "error", err)
		return nil, apperror.Internal(err)
	}
	logger.Log.Info("job created", "job_id", job.ID, "company_id", job.CompanyID)
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, actor domain.Identity, id int64, input *domain.JobInput) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := u.validateInput(input); err != nil {
		return nil, err
	}

	applyJobInput(job, input)
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, mapJobLookup(err)
	}
	return job, nil
}

// SetVisibility pauses or resumes a job without deleting it
func (u *jobUsecase) SetVisibility(ctx context.Context, actor domain.Identity, id int64, active bool) (*domain.Job, error) {
	job, err := u.ownedJob(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := u.jobRepo.SetActive(ctx, id, active); err != nil {
		return nil, mapJobLookup(err)
	}
	job.IsActive = active
	job.UpdatedAt = u.now()
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, actor domain.Identity, id int64) error {
	if _, err := u.ownedJob(ctx, actor, id); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return mapJobLookup(err)
	}
	logger.Log.Info("job deleted", "job_id", id, "actor_id", actor.UserID)
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	job, err := u.jobRepo.GetByIDWithCompany(ctx, id)
	if err != nil {
		return nil, mapJobLookup(err)
	}
	return job, nil
}

// ListPublicJobs lists active, non-expired jobs. A candidate_type filter keeps jobs that
// target that type or target nobody in particular.
func (u *jobUsecase) ListPublicJobs(ctx context.Context, filter domain.JobFilter, page, pageSize int) (*domain.PaginatedResult[domain.JobWithCompany], error) {
	page, pageSize = normalizePage(page, pageSize)

	filter.CandidateType = strings.ToUpper(strings.TrimSpace(filter.CandidateType))
	if filter.CandidateType != "" && !domain.CandidateType(filter.CandidateType).Valid() {
		return nil, apperror.Validation(map[string]string{
			"candidate_type": "must be one of REGULAR, PWD, LGBTQ, WOMEN_RETURNING",
		})
	}
	filter.WorkMode = strings.ToUpper(strings.TrimSpace(filter.WorkMode))
	filter.Search = strings.TrimSpace(filter.Search)

	jobs, total, err := u.jobRepo.FetchPublicActiveJobs(ctx, filter, u.now(), pageSize, offsetOf(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page, pageSize), nil
}

func (u *jobUsecase) ListCompanyJobs(ctx context.Context, actor domain.Identity, page, pageSize int) (*domain.PaginatedResult[domain.Job], error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if actor.CompanyID == nil {
		return nil, apperror.NotFound("No company is attached to this account")
	}
	page, pageSize = normalizePage(page, pageSize)

	jobs, total, err := u.jobRepo.FetchByCompanyID(ctx, *actor.CompanyID, pageSize, offsetOf(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page, pageSize), nil
}

func (u *jobUsecase) ownedJob(ctx context.Context, actor domain.Identity, id int64) (*domain.Job, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapJobLookup(err)
	}
	if !domain.CanManageCompany(actor, job.CompanyID) {
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}

func (u *jobUsecase) validateInput(input *domain.JobInput) error {
	if input == nil {
		return apperror.BadRequest("Invalid request body")
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)

	if err := u.validate.Struct(input); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return apperror.Validation(validation.FieldErrors(err))
		}
		return apperror.BadRequest(err.Error())
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return apperror.Validation(map[string]string{"salary_min": "must not exceed salary_max"})
	}
	return nil
}

func applyJobInput(job *domain.Job, in *domain.JobInput) {
	job.Title = in.Title
	job.Description = strings.TrimSpace(in.Description)
	job.Locations = make([]string, 0, len(in.Locations))
	for _, l := range in.Locations {
		job.Locations = append(job.Locations, strings.TrimSpace(l))
	}
	job.EmploymentType = domain.EmploymentType(in.EmploymentType)
	job.Category = in.Category
	job.WorkMode = domain.WorkMode(in.WorkMode)

	seen := map[domain.CandidateType]bool{}
	job.JobFor = make([]domain.CandidateType, 0, len(in.JobFor))
	for _, t := range in.JobFor {
		ct := domain.CandidateType(t)
		if !seen[ct] {
			seen[ct] = true
			job.JobFor = append(job.JobFor, ct)
		}
	}

	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	job.Deadline = in.Deadline
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
}

