package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/email"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ContactMailer is satisfied by *email.EmailService.
type ContactMailer interface {
	IsConfigured() bool
	SendContactEmail(data email.ContactEmailData) error
}

type contactUsecase struct {
	mailer   ContactMailer
	validate *validator.Validate
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer ContactMailer, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{mailer: mailer, validate: validate}
}

// SendContactMessage validates the contact request and sends the email
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return apperror.BadRequest("Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := uc.validate.Struct(req); err != nil {
		return apperror.Validation(validation.FieldErrors(err))
	}

	if !uc.mailer.IsConfigured() {
		return apperror.New(http.StatusServiceUnavailable, "Contact form is temporarily unavailable", errors.New("smtp not configured"))
	}

	err := uc.mailer.SendContactEmail(email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		logger.Log.Error("contact email failed", "error", err)
		return apperror.New(http.StatusBadGateway, "Failed to send message, please try again later", err)
	}
	return nil
}
