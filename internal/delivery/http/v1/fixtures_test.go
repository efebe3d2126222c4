package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func dataMap(t *testing.T, body response.Response) map[string]interface{} {
	t.Helper()
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", body.Data)
	return data
}

// asUser stands in for AuthMiddleware and places a resolved caller on the context.
func asUser(id domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), id.UserID)
		c.Set(string(domain.KeyUserEmail), id.Email)
		c.Set(string(domain.KeyUserRole), id.Role)
		if id.CompanyID != nil {
			c.Set(string(domain.KeyCompanyID), *id.CompanyID)
		}
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }

func candidateUser(id string) domain.Identity {
	return domain.Identity{UserID: id, Email: id + "@example.com", Role: domain.RoleCandidate}
}

func employerUser(id string, companyID int64) domain.Identity {
	return domain.Identity{UserID: id, Email: id + "@example.com", Role: domain.RoleEmployer, CompanyID: &companyID}
}

func pdfOfSize(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"))
	return data
}

type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// memCandidates is an in-memory CandidateRepository keyed by profile ID.
type memCandidates struct {
	mu   sync.Mutex
	byID map[string]*domain.CandidateProfile
}

func newMemCandidates(seed ...domain.CandidateProfile) *memCandidates {
	m := &memCandidates{byID: map[string]*domain.CandidateProfile{}}
	for i := range seed {
		p := seed[i]
		m.byID[p.ID] = &p
	}
	return m
}

func (m *memCandidates) Create(_ context.Context, profile *domain.CandidateProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.UserID == profile.UserID {
			return domain.ErrConflict
		}
	}
	cp := *profile
	m.byID[profile.ID] = &cp
	return nil
}

func (m *memCandidates) Update(_ context.Context, profile *domain.CandidateProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[profile.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *profile
	m.byID[profile.ID] = &cp
	return nil
}

func (m *memCandidates) GetByID(_ context.Context, id string) (*domain.CandidateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memCandidates) GetByUserID(_ context.Context, userID string) (*domain.CandidateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCandidates) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	_, err := m.GetByUserID(ctx, userID)
	return err == nil, nil
}

func (m *memCandidates) UpdateResume(_ context.Context, id string, key, url *string, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ResumeKey, p.ResumeURL, p.ResumeURLExpiresAt = key, url, expiresAt
	return nil
}

func (m *memCandidates) List(_ context.Context, _ domain.CandidateFilter, _, _ int) ([]domain.CandidateProfile, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CandidateProfile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

// memStore is an in-memory ObjectStorage.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Put(_ context.Context, key string, body []byte, _ string, _ map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?expires=%d", key, int(ttl.Seconds())), nil
}

func (s *memStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *memStore) keys(prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}
