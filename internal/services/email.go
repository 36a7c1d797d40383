package services

import (
	"context"
	"fmt"
	"log"

	"seminarbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRegistrationConfirmation sends the booking confirmation using the
// "registration_confirmation" template.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send("registration_confirmation", data)
}

// SendWaitlistNotification tells the attendee they were placed on the
// waiting queue, using the "waitlist_notification" template.
func (s *emailService) SendWaitlistNotification(ctx context.Context, data *domain.RegistrationEmailData) error {
	return s.send("waitlist_notification", data)
}

func (s *emailService) send(templateName string, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("%s data is nil", templateName)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	log.Printf("[EMAIL] %s sent to %s", templateName, data.Email)
	return nil
}
