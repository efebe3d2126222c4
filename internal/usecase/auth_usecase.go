package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/security"
)

type authUsecase struct {
	userRepo domain.UserRepository
	secLog   *security.SecurityLogger
	now      func() time.Time
}

func NewAuthUsecase(userRepo domain.UserRepository, secLog *security.SecurityLogger) domain.AuthUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &authUsecase{userRepo: userRepo, secLog: secLog, now: time.Now}
}

// EnsureUserExists creates the local user row on first sign-in. Roles are never taken from
// the sync request for existing users; only AssignRole changes them.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	if user.ID == "" || strings.TrimSpace(user.Email) == "" {
		return apperror.BadRequest("user id and email are required")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err == nil {
		changed := false
		if existing.Email != user.Email {
			existing.Email = user.Email
			changed = true
		}
		if user.Name != nil && (existing.Name == nil || *existing.Name != *user.Name) {
			existing.Name = user.Name
			changed = true
		}
		if !changed {
			*user = *existing
			return nil
		}
		existing.UpdatedAt = u.now()
		if err := u.userRepo.Update(ctx, existing); err != nil {
			return mapUserWrite(err)
		}
		*user = *existing
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	// New accounts start as candidates; employers and admins are promoted by an admin
	user.Role = domain.RoleCandidate
	user.CompanyID = nil
	user.CreatedAt = u.now()
	user.UpdatedAt = user.CreatedAt
	if err := u.userRepo.Create(ctx, user); err != nil {
		return mapUserWrite(err)
	}
	return nil
}

func (u *authUsecase) AssignRole(ctx context.Context, actor domain.Identity, userID string, req domain.AssignRoleRequest) (*domain.User, error) {
	if !actor.IsAdmin() {
		u.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "user_role", userID)
		return nil, apperror.Forbidden("Only admins can assign roles")
	}
	if !domain.IsValidRole(req.Role) {
		return nil, apperror.Validation(map[string]string{"role": "must be one of CANDIDATE, EMPLOYER, ADMIN"})
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	companyID := req.CompanyID
	if req.Role != domain.RoleEmployer {
		companyID = nil
	}

	if err := u.userRepo.UpdateRole(ctx, userID, req.Role, companyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User or company not found")
		}
		return nil, apperror.Internal(err)
	}

	u.secLog.LogRoleModified(ctx, actor.UserID, userID, user.Role, req.Role)
	user.Role = req.Role
	user.CompanyID = companyID
	user.UpdatedAt = u.now()
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Internal(err)
	}
	return true, nil
}

func mapUserWrite(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return apperror.Conflict("Email is already registered to another account")
	}
	return apperror.Internal(err)
}
