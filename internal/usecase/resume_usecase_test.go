package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type resumeFixture struct {
	repo  *MockCandidateRepo
	store *memStore
	clock *fixedClock
	uc    domain.ResumeUsecase
}

func newResumeFixture(scanner antivirus.Scanner) *resumeFixture {
	f := &resumeFixture{
		repo:  new(MockCandidateRepo),
		store: newMemStore(),
		clock: &fixedClock{t: intakeNow},
	}
	f.uc = usecase.NewResumeUsecase(f.repo, usecase.ResumeDeps{
		Storage: f.store,
		Scanner: scanner,
		Now:     f.clock.Now,
	})
	return f
}

func TestUploadResume_Policy(t *testing.T) {
	t.Run("2MB pdf is too large", func(t *testing.T) {
		f := newResumeFixture(nil)
		f.repo.On("GetByID", mock.Anything, "c1").Return(existingProfile("u1"), nil)

		_, err := f.uc.UploadResume(context.Background(), candidate("u1"), "c1", pdfUpload(2<<20))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "too large")
		assert.Empty(t, f.store.keys())
	})

	t.Run("msword is rejected", func(t *testing.T) {
		f := newResumeFixture(nil)
		f.repo.On("GetByID", mock.Anything, "c1").Return(existingProfile("u1"), nil)

		file := pdfUpload(500 << 10)
		file.ContentType = "application/msword"
		_, err := f.uc.UploadResume(context.Background(), candidate("u1"), "c1", file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only PDF")
	})

	t.Run("500KB pdf succeeds", func(t *testing.T) {
		f := newResumeFixture(nil)
		f.repo.On("GetByID", mock.Anything, "c1").Return(existingProfile("u1"), nil)
		f.repo.On("UpdateResume", mock.Anything, "c1", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := f.uc.UploadResume(context.Background(), candidate("u1"), "c1", pdfUpload(500<<10))
		require.NoError(t, err)

		assert.Contains(t, res.URL, "resumes/c1/")
		assert.True(t, strings.HasPrefix(res.Key, "resumes/c1/"))
		assert.Equal(t, int64(500<<10), res.Size)
		assert.Equal(t, "application/pdf", res.ContentType)
		assert.Equal(t, intakeNow.Add(domain.ResumeURLTTL), res.ExpiresAt)
		assert.Equal(t, "c1", f.store.meta[res.Key]["candidate-id"])
	})
}

func TestUploadResume_ReplacesPreviousObjectAfterPointerMoves(t *testing.T) {
	f := newResumeFixture(nil)
	oldKey := "resumes/c1/11111111-old.pdf"
	require.NoError(t, f.store.Put(context.Background(), oldKey, pdfBytes(10), "application/pdf", nil))

	p := existingProfile("u1")
	p.ResumeKey = &oldKey
	f.repo.On("GetByID", mock.Anything, "c1").Return(p, nil)

	var oldPresent bool
	f.repo.On("UpdateResume", mock.Anything, "c1", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		oldPresent, _ = f.store.Exists(context.Background(), oldKey)
	}).Return(nil)

	res, err := f.uc.UploadResume(context.Background(), candidate("u1"), "c1", pdfUpload(1024))
	require.NoError(t, err)
	assert.True(t, oldPresent)
	assert.Equal(t, []string{res.Key}, f.store.keys())
}

func TestUploadResume_PointerFailureRemovesNewObject(t *testing.T) {
	f := newResumeFixture(nil)
	f.repo.On("GetByID", mock.Anything, "c1").Return(existingProfile("u1"), nil)
	f.repo.On("UpdateResume", mock.Anything, "c1", mock.Anything, mock.Anything, mock.Anything).Return(errDB)

	_, err := f.uc.UploadResume(context.Background(), candidate("u1"), "c1", pdfUpload(1024))
	assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(err))
	assert.Empty(t, f.store.keys())
}

type infectedScanner struct{}

func (infectedScanner) Scan(context.Context, string, []byte) antivirus.ScanResult {
	return antivirus.ScanResult{Infected: true, ThreatName: "Eicar-Test-Signature", ScannerName: "stub"}
}
func (infectedScanner) Name() string { return "stub" }

func (infectedScanner) Available(context.Context) bool { return true }

func TestUploadResume_InfectedFileRejected(t *testing.T) {
	f := newResumeFixture(infectedScanner{})
	f.repo.On("GetByID", mock.Anything, "c1").Return(existingProfile("u1"), nil)

	_, err := f.uc.UploadResume(context.Background(), candidate("u1"), "c1", pdfUpload(1024))
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	assert.Empty(t, f.store.keys())
	f.repo.AssertNotCalled(t, "UpdateResume", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadResume_Authorization(t *testing.T) {
	f := newResumeFixture(nil)
	f.repo.On("GetByID", mock.Anything, "c1").Return(existingProfile("u1"), nil)
	f.repo.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	_, err := f.uc.UploadResume(context.Background(), candidate("u2"), "c1", pdfUpload(1024))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	_, err = f.uc.UploadResume(context.Background(), employer("e1", 1), "c1", pdfUpload(1024))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	_, err = f.uc.UploadResume(context.Background(), candidate("u1"), "nope", pdfUpload(1024))
	assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
}

func TestDeleteResume(t *testing.T) {
	t.Run("missing candidate is 404 even if objects exist", func(t *testing.T) {
		f := newResumeFixture(nil)
		require.NoError(t, f.store.Put(context.Background(), "resumes/ghost/x.pdf", pdfBytes(10), "application/pdf", nil))
		f.repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		err := f.uc.DeleteResume(context.Background(), admin("a1"), "ghost")
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
		assert.Len(t, f.store.keys(), 1)
	})

	t.Run("deletes object and clears pointer", func(t *testing.T) {
		f := newResumeFixture(nil)
		key := "resumes/c1/abcd-cv.pdf"
		require.NoError(t, f.store.Put(context.Background(), key, pdfBytes(10), "application/pdf", nil))
		p := existingProfile("u1")
		p.ResumeKey = &key
		f.repo.On("GetByID", mock.Anything, "c1").Return(p, nil)
		f.repo.On("UpdateResume", mock.Anything, "c1", (*string)(nil), (*string)(nil), (*time.Time)(nil)).Return(nil)

		require.NoError(t, f.uc.DeleteResume(context.Background(), candidate("u1"), "c1"))
		assert.Empty(t, f.store.keys())
		f.repo.AssertExpectations(t)
	})

	t.Run("storage failure keeps pointer", func(t *testing.T) {
		f := newResumeFixture(nil)
		f.store.failDel = errDB
		key := "resumes/c1/abcd-cv.pdf"
		p := existingProfile("u1")
		p.ResumeKey = &key
		f.repo.On("GetByID", mock.Anything, "c1").Return(p, nil)

		err := f.uc.DeleteResume(context.Background(), candidate("u1"), "c1")
		assert.Equal(t, http.StatusBadGateway, apperror.CodeOf(err))
		f.repo.AssertNotCalled(t, "UpdateResume", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetResumeDownloadLink_ExpiresAfterOneHour(t *testing.T) {
	f := newResumeFixture(nil)
	key := "resumes/c1/abcd-cv.pdf"
	p := existingProfile("u1")
	p.ResumeKey = &key
	f.repo.On("GetByID", mock.Anything, "c1").Return(p, nil)

	link, err := f.uc.GetResumeDownloadLink(context.Background(), employer("e1", 2), "c1")
	require.NoError(t, err)

	assert.True(t, link.Valid(intakeNow))
	assert.True(t, link.Valid(intakeNow.Add(59*time.Minute)))
	assert.False(t, link.Valid(intakeNow.Add(time.Hour)))
	assert.False(t, link.Valid(intakeNow.Add(2*time.Hour)))
}

func TestGetResumeDownloadLink_Policy(t *testing.T) {
	f := newResumeFixture(nil)
	key := "resumes/c1/abcd-cv.pdf"
	p := existingProfile("u1")
	p.ResumeKey = &key
	f.repo.On("GetByID", mock.Anything, "c1").Return(p, nil)
	f.repo.On("GetByID", mock.Anything, "c2").Return(existingProfile("u2"), nil)

	_, err := f.uc.GetResumeDownloadLink(context.Background(), candidate("u2"), "c1")
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	_, err = f.uc.GetResumeDownloadLink(context.Background(), candidate("u1"), "c1")
	assert.NoError(t, err)

	_, err = f.uc.GetResumeDownloadLink(context.Background(), candidate("u2"), "c2")
	assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
}

func TestCheckResumeAvailability(t *testing.T) {
	f := newResumeFixture(nil)
	key := "resumes/c1/abcd-cv.pdf"
	p := existingProfile("u1")
	p.ResumeKey = &key
	f.repo.On("GetByID", mock.Anything, "c1").Return(p, nil)

	got, err := f.uc.CheckResumeAvailability(context.Background(), admin("a1"), "c1")
	require.NoError(t, err)
	assert.False(t, got.Available)

	require.NoError(t, f.store.Put(context.Background(), key, pdfBytes(10), "application/pdf", nil))
	got, err = f.uc.CheckResumeAvailability(context.Background(), admin("a1"), "c1")
	require.NoError(t, err)
	assert.True(t, got.Available)
}
