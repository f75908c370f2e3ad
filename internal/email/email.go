package email

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers approved draft replies via SendGrid
type Sender struct {
	apiKey    string
	fromEmail string
}

// NewSender creates a draft reply sender
func NewSender(apiKey, fromEmail string) *Sender {
	if fromEmail == "" {
		fromEmail = "support@mailsift.io"
	}
	return &Sender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
	}
}

// SendDraftReply sends a generated draft as a reply to the original sender
func (s *Sender) SendDraftReply(recipient, originalSubject, draft string) error {
	if s.apiKey == "" {
		return fmt.Errorf("SendGrid API key not configured")
	}

	subject := originalSubject
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}

	from := mail.NewEmail("Support Team", s.fromEmail)
	to := mail.NewEmail("", recipient)
	message := mail.NewSingleEmail(from, subject, to, draft, draft)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
