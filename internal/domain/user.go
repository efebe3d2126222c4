package domain

import (
	"context"
	"time"
)

// Roles issued by the auth provider and stored on users.role
const (
	RoleCandidate = "CANDIDATE"
	RoleEmployer  = "EMPLOYER"
	RoleAdmin     = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleCandidate, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID         string    `json:"id"` // auth provider UUID
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	Role       string    `json:"role"`
	CompanyID  *int64    `json:"company_id,omitempty"` // employers only
	IsDisabled bool      `json:"is_disabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Identity returns the authorization view of the user.
func (u *User) Identity() Identity {
	return Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

type AssignRoleRequest struct {
	Role      string `json:"role" binding:"required,oneof=CANDIDATE EMPLOYER ADMIN"`
	CompanyID *int64 `json:"company_id"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id string, role string, companyID *int64) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	AssignRole(ctx context.Context, actor Identity, userID string, req AssignRoleRequest) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
}
