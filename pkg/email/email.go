package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"go-staffing-backend/config"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends HTML mail over SMTP.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	send      SendFunc
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		toEmail:   cfg.ContactEmailTo,
		send:      smtp.SendMail,
	}
}

// WithSender replaces the SMTP transport.
func (s *EmailService) WithSender(send SendFunc) *EmailService {
	s.send = send
	return s
}

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New enquiry</title>
</head>
<body style="font-family: Arial, sans-serif; color: #222;">
    <h2>New enquiry from the website</h2>
    <p><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <blockquote style="border-left: 4px solid #1b5e20; padding-left: 12px;">{{.Message}}</blockquote>
    <p style="color: #888; font-size: 12px;">Reply directly to {{.SenderEmail}}.</p>
</body>
</html>`))

// BuildContactMessage renders the RFC 5322 message for a contact submission.
func (s *EmailService) BuildContactMessage(data ContactEmailData) ([]byte, error) {
	// single-line fields are flattened for the body too, not only the headers
	data.SenderName = headerSafe(data.SenderName)
	data.SenderEmail = headerSafe(data.SenderEmail)
	data.Subject = headerSafe(data.Subject)

	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", s.toEmail)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", data.SenderEmail)
	fmt.Fprintf(&msg, "Subject: Website enquiry: %s\r\n", data.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// SendContactEmail sends a contact form email to the configured recipient
func (s *EmailService) SendContactEmail(data ContactEmailData) error {
	msg, err := s.BuildContactMessage(data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// headerSafe strips CR/LF so user input cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
