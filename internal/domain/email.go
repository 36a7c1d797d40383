package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationEmailData holds data for the registration confirmation and
// waitlist notification emails.
type RegistrationEmailData struct {
	Email         string
	Name          string
	EventTitle    string
	EventDate     string
	Seats         int
	TotalPrice    string // formatted amount with currency
	OrganizerName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
	SendWaitlistNotification(ctx context.Context, data *RegistrationEmailData) error
}
