package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-staffing-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, p *domain.CandidateProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, p *domain.CandidateProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) UpdateResume(ctx context.Context, id string, key, url *string, expiresAt *time.Time) error {
	return m.Called(ctx, id, key, url, expiresAt).Error(0)
}

func (m *MockCandidateRepo) List(ctx context.Context, filter domain.CandidateFilter, limit, offset int) ([]domain.CandidateProfile, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	return args.Get(0).([]domain.CandidateProfile), args.Get(1).(int64), args.Error(2)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, id string, role string, companyID *int64) error {
	return m.Called(ctx, id, role, companyID).Error(0)
}

func (m *MockUserRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return m.Called(ctx, id, disabled).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobWithCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobWithCompany), args.Error(1)
}

func (m *MockJobRepo) FetchPublicActiveJobs(ctx context.Context, filter domain.JobFilter, now time.Time, limit, offset int) ([]domain.JobWithCompany, int64, error) {
	args := m.Called(ctx, filter, now, limit, offset)
	return args.Get(0).([]domain.JobWithCompany), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchByCompanyID(ctx context.Context, companyID int64, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, companyID, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, candidateID string, jobID int64) (bool, error) {
	args := m.Called(ctx, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) ListByCandidateID(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.Application, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

func (m *MockAdminRepo) ListUsers(ctx context.Context, role string, page, pageSize int) ([]domain.AdminUser, int64, error) {
	args := m.Called(ctx, role, page, pageSize)
	return args.Get(0).([]domain.AdminUser), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminRepo) ListJobsForAdmin(ctx context.Context, active *bool, page, pageSize int) ([]domain.AdminJob, int64, error) {
	args := m.Called(ctx, active, page, pageSize)
	return args.Get(0).([]domain.AdminJob), args.Get(1).(int64), args.Error(2)
}

// memStore is an in-memory ObjectStorage that records every call.
type memStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	meta     map[string]map[string]string
	deleted  []string
	failPut  error
	failSign error
	failDel  error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, meta: map[string]map[string]string{}}
}

func (s *memStore) Put(_ context.Context, key string, body []byte, _ string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut != nil {
		return s.failPut
	}
	s.objects[key] = body
	s.meta[key] = metadata
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel != nil {
		return s.failDel
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if s.failSign != nil {
		return "", s.failSign
	}
	return fmt.Sprintf("https://bucket.test/%s?X-Amz-Expires=%d", key, int(ttl.Seconds())), nil
}

func (s *memStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *memStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	return out
}

var errDB = errors.New("connection reset by peer")

// fixedClock returns a settable clock.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func ptr[T any](v T) *T { return &v }

func candidate(id string) domain.Identity {
	return domain.Identity{UserID: id, Role: domain.RoleCandidate}
}

func employer(id string, companyID int64) domain.Identity {
	return domain.Identity{UserID: id, Role: domain.RoleEmployer, CompanyID: &companyID}
}

func admin(id string) domain.Identity {
	return domain.Identity{UserID: id, Role: domain.RoleAdmin}
}
