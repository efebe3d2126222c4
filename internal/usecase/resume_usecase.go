package usecase

import (
	"context"
	"errors"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/security"
)

type resumeUsecase struct {
	candidateRepo domain.CandidateRepository
	resumes       *resumeStore
}

func NewResumeUsecase(candidateRepo domain.CandidateRepository, deps ResumeDeps) domain.ResumeUsecase {
	return &resumeUsecase{
		candidateRepo: candidateRepo,
		resumes:       newResumeStore(deps),
	}
}

func (uc *resumeUsecase) loadForEdit(ctx context.Context, actor domain.Identity, candidateID string) (*domain.CandidateProfile, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, mapCandidateLookup(err)
	}
	if !domain.CanEditCandidate(actor, profile.UserID) {
		uc.resumes.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "resume", candidateID)
		return nil, apperror.Forbidden("You can only manage your own resume")
	}
	return profile, nil
}

func (uc *resumeUsecase) loadForView(ctx context.Context, actor domain.Identity, candidateID string) (*domain.CandidateProfile, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	profile, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, mapCandidateLookup(err)
	}
	if !domain.CanViewCandidate(actor, profile.UserID) {
		uc.resumes.secLog.LogUnauthorizedAccess(ctx, actor.UserID, actor.Role, "resume", candidateID)
		return nil, apperror.Forbidden("You do not have access to this resume")
	}
	return profile, nil
}

// UploadResume stores a PDF and points the profile at it. The previous object is
// deleted once the pointer has moved.
func (uc *resumeUsecase) UploadResume(ctx context.Context, actor domain.Identity, candidateID string, file *domain.UploadedFile) (*domain.ResumeUploadResult, error) {
	profile, err := uc.loadForEdit(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.BadRequest("file is required")
	}

	stored, err := uc.resumes.put(ctx, actor, profile.ID, file, security.StandaloneResumePolicy, "")
	if err != nil {
		return nil, err
	}

	if err := uc.candidateRepo.UpdateResume(ctx, profile.ID, &stored.Key, &stored.Signed.URL, &stored.Signed.ExpiresAt); err != nil {
		uc.resumes.remove(ctx, stored.Key)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		logger.Log.Error("resume pointer update failed", "candidate_id", profile.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	if profile.ResumeKey != nil && *profile.ResumeKey != stored.Key {
		uc.resumes.remove(ctx, *profile.ResumeKey)
	}

	logger.Log.Info("resume uploaded", "candidate_id", profile.ID, "key", stored.Key, "size", stored.Size)
	return &domain.ResumeUploadResult{
		URL:         stored.Signed.URL,
		Key:         stored.Key,
		Size:        stored.Size,
		ContentType: stored.ContentType,
		ExpiresAt:   stored.Signed.ExpiresAt,
	}, nil
}

// DeleteResume removes the object, then clears the pointer.
func (uc *resumeUsecase) DeleteResume(ctx context.Context, actor domain.Identity, candidateID string) error {
	profile, err := uc.loadForEdit(ctx, actor, candidateID)
	if err != nil {
		return err
	}

	if profile.ResumeKey != nil && *profile.ResumeKey != "" {
		if err := uc.resumes.storage.Delete(ctx, *profile.ResumeKey); err != nil {
			logger.Log.Error("resume delete failed", "candidate_id", profile.ID, "key", *profile.ResumeKey, "error", err)
			return apperror.Storage(err)
		}
	}

	if err := uc.candidateRepo.UpdateResume(ctx, profile.ID, nil, nil, nil); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate profile not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *resumeUsecase) GetResumeDownloadLink(ctx context.Context, actor domain.Identity, candidateID string) (*domain.SignedURL, error) {
	profile, err := uc.loadForView(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if profile.ResumeKey == nil || *profile.ResumeKey == "" {
		return nil, apperror.NotFound("Resume not found")
	}
	return uc.resumes.sign(ctx, *profile.ResumeKey)
}

func (uc *resumeUsecase) CheckResumeAvailability(ctx context.Context, actor domain.Identity, candidateID string) (*domain.ResumeAvailability, error) {
	profile, err := uc.loadForView(ctx, actor, candidateID)
	if err != nil {
		return nil, err
	}
	if profile.ResumeKey == nil || *profile.ResumeKey == "" {
		return &domain.ResumeAvailability{Available: false}, nil
	}

	ok, err := uc.resumes.storage.Exists(ctx, *profile.ResumeKey)
	if err != nil {
		logger.Log.Error("resume availability check failed", "candidate_id", profile.ID, "error", err)
		return nil, apperror.Storage(err)
	}
	return &domain.ResumeAvailability{Available: ok}, nil
}
