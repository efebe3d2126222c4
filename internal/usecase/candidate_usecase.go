package usecase

import (
	"context"
	"errors"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/security"

	"github.com/google/uuid"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	userRepo      domain.UserRepository
	intake        *ProfileIntake
	resumes       *resumeStore
}

func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	userRepo domain.UserRepository,
	intake *ProfileIntake,
	deps ResumeDeps,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		userRepo:      userRepo,
		intake:        intake,
		resumes:       newResumeStore(deps),
	}
}

// CreateProfile creates the aggregate for ownerUserID. Candidates may only create their own;
// admins may create one for any candidate user.
func (uc *candidateUsecase) CreateProfile(ctx context.Context, actor domain.Identity, ownerUserID string, draft *domain.ProfileDraft, resume *domain.UploadedFile) (*domain.CandidateProfile, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ownerUserID == "" {
		ownerUserID = actor.UserID
	}
	if !domain.CanEditCandidate(actor, ownerUserID) {
		uc.resumes.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "candidate_profile", ownerUserID)
		return nil, apperror.Forbidden("You cannot create a profile for this user")
	}

	payload, err := uc.intake.NormalizeProfileDraft(draft)
	if err != nil {
		return nil, err
	}

	if ownerUserID != actor.UserID {
		owner, err := uc.userRepo.GetByID(ctx, ownerUserID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if owner.Role != domain.RoleCandidate {
			return nil, apperror.BadRequest("Profiles can only be created for candidate users")
		}
	}

	exists, err := uc.candidateRepo.ExistsByUserID(ctx, ownerUserID)
	if err != nil {
		logger.Log.Error("profile existence check failed", "user_id", ownerUserID, "error", err)
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("duplicate profile")
	}

	profile := &domain.CandidateProfile{ID: uuid.NewString(), UserID: ownerUserID}
	payload.Apply(profile)

	// The object is uploaded before the transaction so a committed row never points at a missing object
	var stored *storedResume
	if resume != nil {
		stored, err = uc.resumes.put(ctx, actor, profile.ID, resume, security.ProfileResumePolicy, "resume")
		if err != nil {
			return nil, err
		}
		setResumePointer(profile, stored.Key, &stored.Signed)
	}

	if err := uc.candidateRepo.Create(ctx, profile); err != nil {
		if stored != nil {
			uc.resumes.remove(ctx, stored.Key)
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("duplicate profile")
		}
		logger.Log.Error("profile create failed", "user_id", ownerUserID, "candidate_id", profile.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("candidate profile created",
		"candidate_id", profile.ID,
		"user_id", ownerUserID,
		"candidate_type", profile.CandidateType(),
	)
	return profile, nil
}

// UpdateProfile replaces scalars and reconciles child collections.
func (uc *candidateUsecase) UpdateProfile(ctx context.Context, actor domain.Identity, profileID string, draft *domain.ProfileDraft, resume *domain.UploadedFile) (*domain.CandidateProfile, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	profile, err := uc.candidateRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, mapCandidateLookup(err)
	}
	if !domain.CanEditCandidate(actor, profile.UserID) {
		uc.resumes.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "candidate_profile", profileID)
		return nil, apperror.Forbidden("You can only edit your own profile")
	}

	payload, err := uc.intake.NormalizeProfileDraft(draft)
	if err != nil {
		return nil, err
	}
	payload.Apply(profile)

	var oldKey string
	if profile.ResumeKey != nil {
		oldKey = *profile.ResumeKey
	}

	var stored *storedResume
	if resume != nil {
		stored, err = uc.resumes.put(ctx, actor, profile.ID, resume, security.ProfileResumePolicy, "resume")
		if err != nil {
			return nil, err
		}
		setResumePointer(profile, stored.Key, &stored.Signed)
	}

	if err := uc.candidateRepo.Update(ctx, profile); err != nil {
		if stored != nil {
			uc.resumes.remove(ctx, stored.Key)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		logger.Log.Error("profile update failed", "candidate_id", profileID, "error", err)
		return nil, apperror.Internal(err)
	}

	// Replaced object goes only after the new pointer is committed
	if stored != nil && oldKey != "" && oldKey != stored.Key {
		uc.resumes.remove(ctx, oldKey)
	}

	return profile, nil
}

func (uc *candidateUsecase) GetMyProfile(ctx context.Context, actor domain.Identity) (*domain.CandidateProfile, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := uc.candidateRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, mapCandidateLookup(err)
	}
	uc.refreshResumeURL(ctx, profile)
	return profile, nil
}

func (uc *candidateUsecase) GetProfile(ctx context.Context, actor domain.Identity, profileID string) (*domain.CandidateProfile, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := uc.candidateRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, mapCandidateLookup(err)
	}
	if !domain.CanViewCandidate(actor, profile.UserID) {
		uc.resumes.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "candidate_profile", profileID)
		return nil, apperror.Forbidden("You can only view your own profile")
	}
	uc.refreshResumeURL(ctx, profile)
	return profile, nil
}

// refreshResumeURL re-signs an expired resume pointer. Failures leave the stale URL in place.
func (uc *candidateUsecase) refreshResumeURL(ctx context.Context, p *domain.CandidateProfile) {
	if p.ResumeKey == nil || *p.ResumeKey == "" {
		return
	}
	if p.ResumeURL != nil && p.ResumeURLExpiresAt != nil {
		current := domain.SignedURL{URL: *p.ResumeURL, ExpiresAt: *p.ResumeURLExpiresAt}
		if current.Valid(uc.resumes.now()) {
			return
		}
	}

	signed, err := uc.resumes.sign(ctx, *p.ResumeKey)
	if err != nil {
		return
	}
	if err := uc.candidateRepo.UpdateResume(ctx, p.ID, p.ResumeKey, &signed.URL, &signed.ExpiresAt); err != nil {
		logger.Log.Warn("resume pointer refresh failed", "candidate_id", p.ID, "error", err)
	}
	setResumePointer(p, *p.ResumeKey, signed)
}

func setResumePointer(p *domain.CandidateProfile, key string, signed *domain.SignedURL) {
	p.ResumeKey = &key
	if signed == nil {
		p.ResumeURL = nil
		p.ResumeURLExpiresAt = nil
		return
	}
	url, expires := signed.URL, signed.ExpiresAt
	p.ResumeURL = &url
	p.ResumeURLExpiresAt = &expires
}

func mapCandidateLookup(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Candidate profile not found")
	}
	logger.Log.Error("candidate lookup failed", "error", err)
	return apperror.Internal(err)
}
