package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/email"
	"go-staffing-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	configured bool
	err        error
	sent       []email.ContactEmailData
}

func (m *stubMailer) IsConfigured() bool { return m.configured }

func (m *stubMailer) SendContactEmail(data email.ContactEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}

func contactRequest() *domain.ContactRequest {
	return &domain.ContactRequest{Name: " Asha ", Email: "asha@example.com", Subject: "Hiring", Message: "Hello"}
}

func TestSendContactMessage(t *testing.T) {
	mailer := &stubMailer{configured: true}
	uc := usecase.NewContactUsecase(mailer, validation.NewValidator())

	require.NoError(t, uc.SendContactMessage(context.Background(), contactRequest()))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Asha", mailer.sent[0].SenderName)
}

func TestSendContactMessage_Failures(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		uc := usecase.NewContactUsecase(&stubMailer{configured: true}, validation.NewValidator())
		req := contactRequest()
		req.Email = "nope"
		err := uc.SendContactMessage(context.Background(), req)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.CodeOf(err))
	})

	t.Run("smtp not configured", func(t *testing.T) {
		uc := usecase.NewContactUsecase(&stubMailer{}, validation.NewValidator())
		err := uc.SendContactMessage(context.Background(), contactRequest())
		assert.Equal(t, http.StatusServiceUnavailable, apperror.CodeOf(err))
	})

	t.Run("send fails", func(t *testing.T) {
		uc := usecase.NewContactUsecase(&stubMailer{configured: true, err: errors.New("dial tcp")}, validation.NewValidator())
		err := uc.SendContactMessage(context.Background(), contactRequest())
		assert.Equal(t, http.StatusBadGateway, apperror.CodeOf(err))
	})
}
