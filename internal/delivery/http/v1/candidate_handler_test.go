package v1

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{
	"candidate_type": "REGULAR",
	"gender": "MALE",
	"years_of_experience": 4,
	"skills": ["Go", "PostgreSQL"],
	"bio": "Backend engineer",
	"date_of_birth": "1994-05-17",
	"contact": "+91 98765 43210",
	"educations": [{
		"degree": "B.Tech",
		"specialization": "Computer Science",
		"institution": "Anna University",
		"completion_date": "2016-06-01",
		"cgpa": 8.2
	}]
}`

type candidateFixture struct {
	repo  *memCandidates
	store *memStore
	cand  domain.CandidateUsecase
	cv    domain.ResumeUsecase
}

func newCandidateFixture(seed ...domain.CandidateProfile) *candidateFixture {
	f := &candidateFixture{repo: newMemCandidates(seed...), store: newMemStore()}
	clock := func() time.Time { return testNow }
	deps := usecase.ResumeDeps{Storage: f.store, Now: clock, TTL: time.Hour}
	f.cand = usecase.NewCandidateUsecase(f.repo, nil, usecase.NewProfileIntake(validation.NewValidator(), clock), deps)
	f.cv = usecase.NewResumeUsecase(f.repo, deps)
	return f
}

func (f *candidateFixture) router(id domain.Identity) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewCandidateHandler(r.Group("/api/v1", asUser(id)), f.cand, f.cv, passThrough)
	return r
}

func (f *candidateFixture) do(id domain.Identity, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router(id).ServeHTTP(w, req)
	return w
}

func seededProfile(id, userID string) domain.CandidateProfile {
	return domain.CandidateProfile{
		ID:      id,
		UserID:  userID,
		Details: domain.RegularDetails{Gender: domain.GenderFemale},
		Skills:  []string{"Go"},
	}
}

func TestCreateProfile_JSON(t *testing.T) {
	f := newCandidateFixture()
	me := candidateUser("c1")

	w := f.do(me, http.MethodPost, "/api/v1/candidates/profile", strings.NewReader(profileJSON), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataMap(t, decode(t, w))
	assert.Equal(t, "c1", data["user_id"])
	assert.NotContains(t, data, "resume_key")

	w = f.do(me, http.MethodPost, "/api/v1/candidates/profile", strings.NewReader(profileJSON), "application/json")
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "duplicate profile", body.Message)
}

func TestCreateProfile_MultipartWithResume(t *testing.T) {
	f := newCandidateFixture()
	me := candidateUser("c2")
	submit := func() *httptest.ResponseRecorder {
		body, contentType := multipartBody(t,
			map[string]string{"profile": profileJSON},
			formFile{"resume", "My CV.pdf", "application/pdf", pdfOfSize(300 << 10)},
		)
		return f.do(me, http.MethodPost, "/api/v1/candidates/profile", body, contentType)
	}

	w := submit()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataMap(t, decode(t, w))
	id, _ := data["id"].(string)
	key, _ := data["resume_key"].(string)
	assert.True(t, strings.HasPrefix(key, "resumes/"+id+"/"), key)
	assert.True(t, strings.HasSuffix(key, "-My_CV.pdf"), key)
	assert.NotEmpty(t, data["resume_url"])
	assert.Len(t, f.store.keys("resumes/"), 1)

	w = submit()
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, f.store.keys("resumes/"), 1)
}

func TestCreateProfile_MultipartRequiresProfileField(t *testing.T) {
	f := newCandidateFixture()
	body, contentType := multipartBody(t, nil, formFile{"resume", "cv.pdf", "application/pdf", pdfOfSize(1024)})

	w := f.do(candidateUser("c3"), http.MethodPost, "/api/v1/candidates/profile", body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "profile form field is required", decode(t, w).Message)
}

func TestUpdateProfile_JSON(t *testing.T) {
	f := newCandidateFixture(seededProfile("p1", "c1"))

	w := f.do(candidateUser("c1"), http.MethodPut, "/api/v1/candidates/p1", strings.NewReader(profileJSON), "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []interface{}{"Go", "PostgreSQL"}, dataMap(t, decode(t, w))["skills"])

	w = f.do(candidateUser("c9"), http.MethodPut, "/api/v1/candidates/p1", strings.NewReader(profileJSON), "application/json")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadResume(t *testing.T) {
	tests := []struct {
		name        string
		file        formFile
		wantStatus  int
		wantMessage string
	}{
		{"2MB pdf", formFile{"file", "cv.pdf", "application/pdf", pdfOfSize(2 << 20)}, http.StatusBadRequest, "file too large: maximum size is 1MB"},
		{"word document", formFile{"file", "cv.doc", "application/msword", pdfOfSize(500 << 10)}, http.StatusBadRequest, "only PDF files are allowed"},
		{"500KB pdf", formFile{"file", "cv.pdf", "application/pdf", pdfOfSize(500 << 10)}, http.StatusCreated, "Resume uploaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCandidateFixture(seededProfile("p1", "c1"))
			body, contentType := multipartBody(t, nil, tt.file)

			w := f.do(candidateUser("c1"), http.MethodPost, "/api/v1/candidates/p1/resume", body, contentType)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			res := decode(t, w)
			assert.Equal(t, tt.wantMessage, res.Message)

			stored, err := f.repo.GetByID(context.Background(), "p1")
			require.NoError(t, err)
			if tt.wantStatus != http.StatusCreated {
				assert.Empty(t, f.store.keys(""))
				assert.Nil(t, stored.ResumeKey)
				return
			}

			data := dataMap(t, res)
			key, _ := data["key"].(string)
			assert.True(t, strings.HasPrefix(key, "resumes/p1/"), key)
			assert.Equal(t, float64(500<<10), data["size"])
			assert.Equal(t, "application/pdf", data["content_type"])
			assert.Equal(t, []string{key}, f.store.keys("resumes/p1/"))
			require.NotNil(t, stored.ResumeKey)
			assert.Equal(t, key, *stored.ResumeKey)
		})
	}
}

func TestUploadResume_ReplacesPreviousObject(t *testing.T) {
	old := "resumes/p1/0000aaaa-old.pdf"
	seed := seededProfile("p1", "c1")
	seed.ResumeKey = &old
	f := newCandidateFixture(seed)
	f.store.objects[old] = []byte("%PDF-old")

	body, contentType := multipartBody(t, nil, formFile{"file", "new.pdf", "application/pdf", pdfOfSize(4096)})
	w := f.do(candidateUser("c1"), http.MethodPost, "/api/v1/candidates/p1/resume", body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	keys := f.store.keys("resumes/p1/")
	require.Len(t, keys, 1)
	assert.NotEqual(t, old, keys[0])
}

func TestUploadResume_RequiresFile(t *testing.T) {
	f := newCandidateFixture(seededProfile("p1", "c1"))

	w := f.do(candidateUser("c1"), http.MethodPost, "/api/v1/candidates/p1/resume", bytes.NewReader([]byte(`{}`)), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file is required", decode(t, w).Message)
}

func TestUploadResume_OtherCandidateForbidden(t *testing.T) {
	f := newCandidateFixture(seededProfile("p1", "c1"))
	body, contentType := multipartBody(t, nil, formFile{"file", "cv.pdf", "application/pdf", pdfOfSize(1024)})

	w := f.do(candidateUser("c2"), http.MethodPost, "/api/v1/candidates/p1/resume", body, contentType)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.store.keys(""))
}

func TestGetResumeLink(t *testing.T) {
	key := "resumes/p1/1234abcd-cv.pdf"
	seed := seededProfile("p1", "c1")
	seed.ResumeKey = &key

	tests := []struct {
		name       string
		caller     domain.Identity
		wantStatus int
	}{
		{"owner", candidateUser("c1"), http.StatusOK},
		{"employer", employerUser("e1", 7), http.StatusOK},
		{"other candidate", candidateUser("c2"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCandidateFixture(seed)

			w := f.do(tt.caller, http.MethodGet, "/api/v1/candidates/p1/resume/link", nil, "")
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			body := decode(t, w)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, body.Success)
				assert.Nil(t, body.Data)
				return
			}
			data := dataMap(t, body)
			assert.Contains(t, data["url"], key)
			assert.Equal(t, testNow.Add(time.Hour).Format(time.RFC3339), data["expires_at"])
		})
	}
}

func TestGetProfile_OtherCandidateForbidden(t *testing.T) {
	f := newCandidateFixture(seededProfile("p1", "c1"))

	w := f.do(candidateUser("c2"), http.MethodGet, "/api/v1/candidates/p1", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(candidateUser("c1"), http.MethodGet, "/api/v1/candidates/me", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", dataMap(t, decode(t, w))["id"])
}
