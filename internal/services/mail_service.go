package services

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// MailService sends transactional email through SendGrid.
type MailService struct {
	apiKey   string
	from     string
	fromName string
}

// NewMailService creates a new MailService.
func NewMailService(apiKey, from, fromName string) *MailService {
	return &MailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

// Send delivers a single HTML email. The context bounds the request so a
// hung send cannot stall a whole sweep run.
func (s *MailService) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.apiKey == "" {
		log.Println("[Mail] SendGrid API key not configured, dropping message")
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		log.Printf("[Mail] send failed: %v", err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("[Mail] unexpected status %d: %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	return nil
}
