package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/security"
	"go-staffing-backend/pkg/security/antivirus"

	"github.com/google/uuid"
)

// ResumeDeps are the collaborators shared by every path that writes resume objects.
type ResumeDeps struct {
	Storage domain.ObjectStorage
	Scanner antivirus.Scanner
	SecLog  *security.SecurityLogger
	Now     func() time.Time
	TTL     time.Duration
}

type resumeStore struct {
	storage domain.ObjectStorage
	scanner antivirus.Scanner
	secLog  *security.SecurityLogger
	now     func() time.Time
	ttl     time.Duration
}

func newResumeStore(d ResumeDeps) *resumeStore {
	s := &resumeStore{
		storage: d.Storage,
		scanner: d.Scanner,
		secLog:  d.SecLog,
		now:     d.Now,
		ttl:     d.TTL,
	}
	if s.scanner == nil {
		s.scanner = antivirus.NewNoOpScanner()
	}
	if s.secLog == nil {
		s.secLog = security.NopLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ttl <= 0 {
		s.ttl = domain.ResumeURLTTL
	}
	return s
}

type storedResume struct {
	Key         string
	Signed      domain.SignedURL
	Size        int64
	ContentType string
}

// ResumeKey builds resumes/{candidateID}/{8 hex}-{sanitized filename}.
func ResumeKey(candidateID, filename string) string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("resumes/%s/%s-%s", candidateID, nonce, security.SanitizeFilename(filename))
}

// put validates, scans and uploads the file, then signs a URL for it.
// When field is set, policy violations are reported as a field error under that name.
func (s *resumeStore) put(ctx context.Context, actor domain.Identity, candidateID string, file *domain.UploadedFile, policy security.UploadPolicy, field string) (*storedResume, error) {
	if err := security.ValidateUpload(policy, file.ContentType, file.Data); err != nil {
		s.secLog.LogUploadRejected(ctx, actor.UserID, file.Filename, err.Error(), false)
		var uploadErr *security.UploadError
		msg := err.Error()
		if errors.As(err, &uploadErr) {
			msg = uploadErr.Message
		}
		if field != "" {
			return nil, apperror.Validation(map[string]string{field: msg})
		}
		return nil, apperror.BadRequest(msg)
	}

	if res := s.scanner.Scan(ctx, file.Filename, file.Data); res.Rejected() {
		s.secLog.LogUploadRejected(ctx, actor.UserID, file.Filename, res.ThreatName, res.Infected && res.Error == nil)
		if res.Error != nil {
			logger.Log.Error("resume scan failed", "candidate_id", candidateID, "scanner", res.ScannerName, "error", res.Error)
			return nil, apperror.New(http.StatusServiceUnavailable, "file scanning is unavailable, try again later", res.Error)
		}
		return nil, apperror.BadRequest("file was rejected by the malware scanner")
	}

	key := ResumeKey(candidateID, file.Filename)
	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
	metadata := map[string]string{
		"candidate-id":  candidateID,
		"original-name": security.SanitizeFilename(file.Filename),
	}
	if err := s.storage.Put(ctx, key, file.Data, contentType, metadata); err != nil {
		logger.Log.Error("resume upload failed", "candidate_id", candidateID, "key", key, "error", err)
		return nil, apperror.Storage(err)
	}

	signed, err := s.sign(ctx, key)
	if err != nil {
		s.remove(ctx, key)
		return nil, err
	}

	return &storedResume{
		Key:         key,
		Signed:      *signed,
		Size:        int64(len(file.Data)),
		ContentType: contentType,
	}, nil
}

func (s *resumeStore) sign(ctx context.Context, key string) (*domain.SignedURL, error) {
	issuedAt := s.now()
	url, err := s.storage.PresignGet(ctx, key, s.ttl)
	if err != nil {
		logger.Log.Error("resume presign failed", "key", key, "error", err)
		return nil, apperror.Storage(err)
	}
	return &domain.SignedURL{URL: url, ExpiresAt: issuedAt.Add(s.ttl)}, nil
}

// remove deletes an object and only logs failures.
func (s *resumeStore) remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.Log.Warn("resume object cleanup failed", "key", key, "error", err)
	}
}
