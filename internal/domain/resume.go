package domain

import (
	"context"
	"time"
)

// ResumeURLTTL is the lifetime of every signed resume URL.
const ResumeURLTTL = time.Hour

// ObjectStorage is the S3-compatible object store.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// SignedURL is a time-limited capability for a private object.
type SignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid is false at and after ExpiresAt.
func (s SignedURL) Valid(now time.Time) bool {
	return s.URL != "" && now.Before(s.ExpiresAt)
}

// UploadedFile is a fully read multipart upload.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

type ResumeUploadResult struct {
	URL         string    `json:"url"`
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ResumeAvailability struct {
	Available bool `json:"available"`
}

type ResumeUsecase interface {
	UploadResume(ctx context.Context, actor Identity, candidateID string, file *UploadedFile) (*ResumeUploadResult, error)
	DeleteResume(ctx context.Context, actor Identity, candidateID string) error
	GetResumeDownloadLink(ctx context.Context, actor Identity, candidateID string) (*SignedURL, error)
	CheckResumeAvailability(ctx context.Context, actor Identity, candidateID string) (*ResumeAvailability, error)
}
