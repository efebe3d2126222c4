package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/security"
)

type adminUsecase struct {
	adminRepo     domain.AdminRepository
	userRepo      domain.UserRepository
	candidateRepo domain.CandidateRepository
	appRepo       domain.ApplicationRepository
	secLog        *security.SecurityLogger
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	userRepo domain.UserRepository,
	candidateRepo domain.CandidateRepository,
	appRepo domain.ApplicationRepository,
	secLog *security.SecurityLogger,
) domain.AdminUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &adminUsecase{
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		appRepo:       appRepo,
		secLog:        secLog,
	}
}

// GetStats returns dashboard statistics
func (u *adminUsecase) GetStats(ctx context.Context, actor domain.Identity) (*domain.AdminStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	stats, err := u.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("fetch statistics: %w", err))
	}
	return stats, nil
}

// ListUsers returns paginated users
func (u *adminUsecase) ListUsers(ctx context.Context, actor domain.Identity, role string, page, pageSize int) (*domain.PaginatedResult[domain.AdminUser], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != "" && !domain.IsValidRole(role) {
		return nil, apperror.Validation(map[string]string{"role": "must be one of CANDIDATE, EMPLOYER, ADMIN"})
	}
	page, pageSize = normalizePage(page, pageSize)

	users, total, err := u.adminRepo.ListUsers(ctx, role, page, pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(users, total, page, pageSize), nil
}

// DisableUser blocks or unblocks sign-in for a user. Admins cannot disable themselves.
func (u *adminUsecase) DisableUser(ctx context.Context, actor domain.Identity, userID string, disable bool) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if disable && actor.UserID == userID {
		return nil, apperror.BadRequest("You cannot disable your own account")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.userRepo.SetDisabled(ctx, userID, disable); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	u.secLog.LogUserDisabled(ctx, actor.UserID, userID, disable)
	user.IsDisabled = disable
	return user, nil
}

func (u *adminUsecase) ListCandidates(ctx context.Context, actor domain.Identity, filter domain.CandidateFilter, page, pageSize int) (*domain.PaginatedResult[domain.CandidateProfile], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	filter.CandidateType = strings.ToUpper(strings.TrimSpace(filter.CandidateType))
	if filter.CandidateType != "" && !domain.CandidateType(filter.CandidateType).Valid() {
		return nil, apperror.Validation(map[string]string{"candidate_type": "must be one of REGULAR, PWD, LGBTQ, WOMEN_RETURNING"})
	}
	filter.Search = strings.TrimSpace(filter.Search)
	page, pageSize = normalizePage(page, pageSize)

	profiles, total, err := u.candidateRepo.List(ctx, filter, pageSize, offsetOf(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(profiles, total, page, pageSize), nil
}

func (u *adminUsecase) ListJobs(ctx context.Context, actor domain.Identity, active *bool, page, pageSize int) (*domain.PaginatedResult[domain.AdminJob], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	page, pageSize = normalizePage(page, pageSize)

	jobs, total, err := u.adminRepo.ListJobsForAdmin(ctx, active, page, pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page, pageSize), nil
}

func (u *adminUsecase) ListApplications(ctx context.Context, actor domain.Identity, status string, page, pageSize int) (*domain.PaginatedResult[domain.Application], error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !domain.ApplicationStatus(status).Valid() {
		return nil, apperror.Validation(map[string]string{"status": "must be one of PENDING, REVIEWED, INTERVIEW, REJECTED, ACCEPTED"})
	}
	page, pageSize = normalizePage(page, pageSize)

	apps, total, err := u.appRepo.List(ctx, status, pageSize, offsetOf(page, pageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(apps, total, page, pageSize), nil
}

// requireAdmin re-checks the role resolved by the auth middleware
func requireAdmin(actor domain.Identity) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}
