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

func TestEnsureUserExists_NewUserIsCandidate(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleCandidate && u.Email == "asha@example.com" && u.CompanyID == nil
	})).Return(nil)

	user := &domain.User{ID: "u1", Email: " Asha@Example.com ", Role: domain.RoleAdmin, CompanyID: ptr(int64(3))}
	require.NoError(t, usecase.NewAuthUsecase(users, nil).EnsureUserExists(context.Background(), user))
	users.AssertExpectations(t)
}

func TestEnsureUserExists_NeverChangesRole(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Email: "old@example.com", Role: domain.RoleEmployer}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleEmployer && u.Email == "new@example.com"
	})).Return(nil)

	user := &domain.User{ID: "u1", Email: "new@example.com", Role: domain.RoleAdmin}
	require.NoError(t, usecase.NewAuthUsecase(users, nil).EnsureUserExists(context.Background(), user))
	assert.Equal(t, domain.RoleEmployer, user.Role)
	users.AssertExpectations(t)
}

func TestEnsureUserExists_EmailTaken(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	err := usecase.NewAuthUsecase(users, nil).EnsureUserExists(context.Background(), &domain.User{ID: "u1", Email: "a@b.co"})
	assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
}

func TestAssignRole(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2", Role: domain.RoleCandidate}, nil)
	users.On("UpdateRole", mock.Anything, "u2", domain.RoleEmployer, ptr(int64(3))).Return(nil)
	users.On("UpdateRole", mock.Anything, "u2", domain.RoleCandidate, (*int64)(nil)).Return(nil)
	uc := usecase.NewAuthUsecase(users, nil)

	_, err := uc.AssignRole(context.Background(), employer("e1", 3), "u2", domain.AssignRoleRequest{Role: domain.RoleAdmin})
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

	_, err = uc.AssignRole(context.Background(), admin("a1"), "u2", domain.AssignRoleRequest{Role: "OWNER"})
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.CodeOf(err))

	user, err := uc.AssignRole(context.Background(), admin("a1"), "u2", domain.AssignRoleRequest{Role: domain.RoleEmployer, CompanyID: ptr(int64(3))})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, user.Role)

	user, err = uc.AssignRole(context.Background(), admin("a1"), "u2", domain.AssignRoleRequest{Role: domain.RoleCandidate, CompanyID: ptr(int64(3))})
	require.NoError(t, err)
	assert.Nil(t, user.CompanyID)
}

func TestCheckEmailExists(t *testing.T) {
	users := new(MockUserRepo)
	users.On("GetByEmail", mock.Anything, "a@b.co").Return(&domain.User{ID: "u1"}, nil)
	users.On("GetByEmail", mock.Anything, "x@b.co").Return(nil, domain.ErrNotFound)
	uc := usecase.NewAuthUsecase(users, nil)

	ok, err := uc.CheckEmailExists(context.Background(), " A@B.co")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.CheckEmailExists(context.Background(), "x@b.co")
	require.NoError(t, err)
	assert.False(t, ok)
}
