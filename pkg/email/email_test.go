package email

import (
	"net/smtp"
	"strings"
	"testing"

	"go-staffing-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *EmailService {
	return NewEmailService(&config.Config{
		SMTPHost:       "smtp.test",
		SMTPPort:       "587",
		SMTPUsername:   "user",
		SMTPPassword:   "pass",
		SMTPFromEmail:  "noreply@agency.test",
		ContactEmailTo: "hello@agency.test",
	})
}

func TestBuildContactMessage_EscapesAndStripsHeaders(t *testing.T) {
	msg, err := testService().BuildContactMessage(ContactEmailData{
		SenderName:  "Asha",
		SenderEmail: "asha@example.com",
		Subject:     "Hi\r\nBcc: victim@example.com",
		Message:     "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	s := string(msg)
	assert.Contains(t, s, "Subject: Website enquiry: Hi  Bcc: victim@example.com\r\n")
	assert.NotContains(t, s, "\r\nBcc:")
	assert.NotContains(t, s, "<script>")
	assert.Contains(t, s, "&lt;script&gt;")
	assert.Contains(t, s, "<strong>Subject:</strong> Hi  Bcc: victim@example.com</p>")
}

func TestBuildContactMessage_FlattensSenderFieldsInBody(t *testing.T) {
	msg, err := testService().BuildContactMessage(ContactEmailData{
		SenderName:  "Asha\nX-Injected: 1",
		SenderEmail: "asha@example.com\r\nCc: someone@example.com",
		Subject:     "Hello",
		Message:     "line one\nline two",
	})
	require.NoError(t, err)

	s := string(msg)
	assert.NotContains(t, s, "\nX-Injected:")
	assert.NotContains(t, s, "\nCc:")
	assert.Contains(t, s, "Reply-To: asha@example.com  Cc: someone@example.com\r\n")
	assert.Contains(t, s, "line one\nline two")
}

func TestSendContactEmail_UsesTransport(t *testing.T) {
	var gotAddr string
	var gotTo []string
	svc := testService().WithSender(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		assert.Equal(t, "noreply@agency.test", from)
		assert.True(t, strings.HasPrefix(string(msg), "From: noreply@agency.test"))
		return nil
	})

	require.NoError(t, svc.SendContactEmail(ContactEmailData{SenderName: "A", SenderEmail: "a@b.c", Subject: "s", Message: "m"}))
	assert.Equal(t, "smtp.test:587", gotAddr)
	assert.Equal(t, []string{"hello@agency.test"}, gotTo)
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, testService().IsConfigured())
	assert.False(t, NewEmailService(&config.Config{}).IsConfigured())
}
