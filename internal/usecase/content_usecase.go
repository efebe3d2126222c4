package usecase

import (
	"context"
	"errors"
	"strings"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contentUsecase struct {
	repo     domain.ContentRepository
	validate *validator.Validate
}

func NewContentUsecase(repo domain.ContentRepository, validate *validator.Validate) domain.ContentUsecase {
	return &contentUsecase{repo: repo, validate: validate}
}

// GetPage returns the published sections of a marketing page ordered by position
func (u *contentUsecase) GetPage(ctx context.Context, page string) ([]domain.ContentSection, error) {
	return u.list(ctx, page, true)
}

// ListSections returns every section of a page, drafts included
func (u *contentUsecase) ListSections(ctx context.Context, page string) ([]domain.ContentSection, error) {
	return u.list(ctx, page, false)
}

func (u *contentUsecase) list(ctx context.Context, page string, publishedOnly bool) ([]domain.ContentSection, error) {
	p := domain.ContentPage(strings.ToUpper(strings.TrimSpace(page)))
	if !p.Valid() {
		return nil, apperror.NotFound("Page not found")
	}
	sections, err := u.repo.ListByPage(ctx, p, publishedOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return sections, nil
}

func (u *contentUsecase) CreateSection(ctx context.Context, input *domain.ContentSectionInput) (*domain.ContentSection, error) {
	if err := u.check(input); err != nil {
		return nil, err
	}
	section := &domain.ContentSection{}
	applySectionInput(section, input)
	if err := u.repo.Create(ctx, section); err != nil {
		return nil, apperror.Internal(err)
	}
	return section, nil
}

func (u *contentUsecase) UpdateSection(ctx context.Context, id int64, input *domain.ContentSectionInput) (*domain.ContentSection, error) {
	if err := u.check(input); err != nil {
		return nil, err
	}
	section := &domain.ContentSection{ID: id}
	applySectionInput(section, input)
	if err := u.repo.Update(ctx, section); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Section not found")
		}
		return nil, apperror.Internal(err)
	}
	return section, nil
}

func (u *contentUsecase) DeleteSection(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Section not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *contentUsecase) check(input *domain.ContentSectionInput) error {
	if input == nil {
		return apperror.BadRequest("Invalid request body")
	}
	input.Page = strings.ToUpper(strings.TrimSpace(input.Page))
	input.Kind = strings.ToUpper(strings.TrimSpace(input.Kind))
	input.Title = strings.TrimSpace(input.Title)
	if err := u.validate.Struct(input); err != nil {
		return apperror.Validation(validation.FieldErrors(err))
	}
	return nil
}

func applySectionInput(s *domain.ContentSection, in *domain.ContentSectionInput) {
	s.Page = domain.ContentPage(in.Page)
	s.Kind = in.Kind
	s.Title = in.Title
	s.Body = in.Body
	s.ImageURL = in.ImageURL
	s.LinkURL = in.LinkURL
	s.Position = in.Position
	s.Published = in.Published
}
