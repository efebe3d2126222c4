package domain

import (
	"context"
	"time"
)

// Company is an employer organisation. Employer users attach through users.company_id.
type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	LogoURL     *string   `json:"logo_url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CompanyInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Website     *string `json:"website" validate:"omitempty,url"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

type CompanyRepository interface {
	// CreateForEmployer inserts the company and attaches the employer in one transaction.
	CreateForEmployer(ctx context.Context, company *Company, employerUserID string) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	Update(ctx context.Context, company *Company) error
}

type CompanyUsecase interface {
	GetCompany(ctx context.Context, id int64) (*Company, error)
	CreateMyCompany(ctx context.Context, actor Identity, input *CompanyInput) (*Company, error)
	UpdateMyCompany(ctx context.Context, actor Identity, input *CompanyInput) (*Company, error)
}
