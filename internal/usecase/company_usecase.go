package usecase

import (
	"context"
	"errors"
	"strings"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	validate    *validator.Validate
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, validate *validator.Validate) domain.CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo, validate: validate}
}

func (u *companyUsecase) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Company not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return company, nil
}

// CreateMyCompany creates a company and attaches the calling employer to it
func (u *companyUsecase) CreateMyCompany(ctx context.Context, actor domain.Identity, input *domain.CompanyInput) (*domain.Company, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !actor.IsEmployer() {
		return nil, apperror.Forbidden("Only employers can create a company")
	}
	if actor.CompanyID != nil {
		return nil, apperror.Conflict("A company is already attached to this account")
	}
	if err := u.check(input); err != nil {
		return nil, err
	}

	company := &domain.Company{}
	applyCompanyInput(company, input)
	if err := u.companyRepo.CreateForEmployer(ctx, company, actor.UserID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("A company is already attached to this account")
		}
		logger.Log.Error("company create failed", "user_id", actor.UserID, "error", err)
		return nil, apperror.Internal(err)
	}
	return company, nil
}

func (u *companyUsecase) UpdateMyCompany(ctx context.Context, actor domain.Identity, input *domain.CompanyInput) (*domain.Company, error) {
	if actor.UserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if actor.CompanyID == nil || !domain.CanManageCompany(actor, *actor.CompanyID) {
		return nil, apperror.Forbidden("No company is attached to this account")
	}
	if err := u.check(input); err != nil {
		return nil, err
	}

	company, err := u.GetCompany(ctx, *actor.CompanyID)
	if err != nil {
		return nil, err
	}
	applyCompanyInput(company, input)
	if err := u.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Company not found")
		}
		return nil, apperror.Internal(err)
	}
	return company, nil
}

func (u *companyUsecase) check(input *domain.CompanyInput) error {
	if input == nil {
		return apperror.BadRequest("Invalid request body")
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := u.validate.Struct(input); err != nil {
		return apperror.Validation(validation.FieldErrors(err))
	}
	return nil
}

func applyCompanyInput(c *domain.Company, in *domain.CompanyInput) {
	c.Name = in.Name
	c.Website = in.Website
	c.LogoURL = in.LogoURL
	c.Description = in.Description
}
