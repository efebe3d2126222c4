package domain

import (
	"context"
	"time"
)

type ContentPage string

const (
	PageHome         ContentPage = "HOME"
	PageAbout        ContentPage = "ABOUT"
	PageTraining     ContentPage = "TRAINING"
	PageCapabilities ContentPage = "CAPABILITIES"
	PageContact      ContentPage = "CONTACT"
)

func (p ContentPage) Valid() bool {
	switch p {
	case PageHome, PageAbout, PageTraining, PageCapabilities, PageContact:
		return true
	}
	return false
}

// ContentSection is one CMS block of a marketing page (hero, stat, partner, testimonial, ...)
type ContentSection struct {
	ID        int64       `json:"id"`
	Page      ContentPage `json:"page"`
	Kind      string      `json:"kind"`
	Title     string      `json:"title"`
	Body      *string     `json:"body,omitempty"`
	ImageURL  *string     `json:"image_url,omitempty"`
	LinkURL   *string     `json:"link_url,omitempty"`
	Position  int         `json:"position"`
	Published bool        `json:"published"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type ContentSectionInput struct {
	Page      string  `json:"page" validate:"required,oneof=HOME ABOUT TRAINING CAPABILITIES CONTACT"`
	Kind      string  `json:"kind" validate:"required,oneof=HERO STAT PARTNER TESTIMONIAL SECTION FAQ"`
	Title     string  `json:"title" validate:"required,max=200"`
	Body      *string `json:"body" validate:"omitempty,max=10000"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
	LinkURL   *string `json:"link_url" validate:"omitempty,url"`
	Position  int     `json:"position" validate:"gte=0"`
	Published bool    `json:"published"`
}

type ContentRepository interface {
	ListByPage(ctx context.Context, page ContentPage, publishedOnly bool) ([]ContentSection, error)
	GetByID(ctx context.Context, id int64) (*ContentSection, error)
	Create(ctx context.Context, section *ContentSection) error
	Update(ctx context.Context, section *ContentSection) error
	Delete(ctx context.Context, id int64) error
}

type ContentUsecase interface {
	GetPage(ctx context.Context, page string) ([]ContentSection, error)
	ListSections(ctx context.Context, page string) ([]ContentSection, error)
	CreateSection(ctx context.Context, input *ContentSectionInput) (*ContentSection, error)
	UpdateSection(ctx context.Context, id int64, input *ContentSectionInput) (*ContentSection, error)
	DeleteSection(ctx context.Context, id int64) error
}
