package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	admins     *MockAdminRepo
	users      *MockUserRepo
	candidates *MockCandidateRepo
	apps       *MockApplicationRepo
	uc         domain.AdminUsecase
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		admins:     new(MockAdminRepo),
		users:      new(MockUserRepo),
		candidates: new(MockCandidateRepo),
		apps:       new(MockApplicationRepo),
	}
	f.uc = usecase.NewAdminUsecase(f.admins, f.users, f.candidates, f.apps, nil)
	return f
}

func TestAdmin_RequiresAdminIdentity(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	_, err := f.uc.GetStats(ctx, employer("e1", 3))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	_, err = f.uc.ListUsers(ctx, candidate("c1"), "", 1, 20)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	_, err = f.uc.ListJobs(ctx, domain.Identity{}, nil, 1, 20)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	// the role on the request context no longer grants access on its own
	roleCtx := context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
	_, err = f.uc.ListApplications(roleCtx, employer("e1", 3), "", 1, 20)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	f.admins.AssertNotCalled(t, "GetStats", mock.Anything)
}

func TestAdmin_GetStats(t *testing.T) {
	f := newAdminFixture()
	f.admins.On("GetStats", mock.Anything).Return(&domain.AdminStats{TotalUsers: 4}, nil)

	stats, err := f.uc.GetStats(context.Background(), admin("a1"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalUsers)
}

func TestAdmin_ListCandidatesByType(t *testing.T) {
	f := newAdminFixture()
	f.candidates.On("List", mock.Anything, domain.CandidateFilter{CandidateType: "WOMEN_RETURNING"}, 20, 20).
		Return([]domain.CandidateProfile{}, int64(21), nil)

	res, err := f.uc.ListCandidates(context.Background(), admin("a1"), domain.CandidateFilter{CandidateType: "women_returning"}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPages)
	assert.NotNil(t, res.Data)

	_, err = f.uc.ListCandidates(context.Background(), admin("a1"), domain.CandidateFilter{CandidateType: "OTHER"}, 1, 20)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.CodeOf(err))
}

func TestAdmin_ListApplicationsValidatesStatus(t *testing.T) {
	f := newAdminFixture()
	f.apps.On("List", mock.Anything, "REVIEWED", 20, 0).Return([]domain.Application{{ID: 1}}, int64(1), nil)

	res, err := f.uc.ListApplications(context.Background(), admin("a1"), "reviewed", 1, 20)
	require.NoError(t, err)
	assert.Len(t, res.Data, 1)

	_, err = f.uc.ListApplications(context.Background(), admin("a1"), "HIRED", 1, 20)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.CodeOf(err))
}

func TestAdmin_DisableUser(t *testing.T) {
	f := newAdminFixture()
	f.users.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2", Role: domain.RoleCandidate}, nil)
	f.users.On("SetDisabled", mock.Anything, "u2", true).Return(nil)

	_, err := f.uc.DisableUser(context.Background(), admin("a1"), "a1", true)
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))

	_, err = f.uc.DisableUser(context.Background(), employer("e1", 3), "u2", true)
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	user, err := f.uc.DisableUser(context.Background(), admin("a1"), "u2", true)
	require.NoError(t, err)
	assert.True(t, user.IsDisabled)
}
