package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seminarbooking/internal/domain"
)

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	r := NewTemplateRenderer()

	data := &domain.RegistrationEmailData{
		Email:         "ada@example.com",
		Name:          "Ada Lovelace",
		EventTitle:    "Go Workshop",
		EventDate:     "01.03.2026",
		Seats:         2,
		TotalPrice:    "60.00 EUR",
		OrganizerName: "ACME Trainings",
	}
	subject, html, text, err := r.Render("registration_confirmation", data)
	require.NoError(t, err)

	assert.Equal(t, "Registration confirmed: Go Workshop", subject)
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "60.00 EUR")
	assert.Contains(t, text, "01.03.2026")
	assert.Contains(t, text, "ACME Trainings")
}

func TestTemplateRenderer_WaitlistNotification(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("waitlist_notification", &domain.RegistrationEmailData{
		Name:       "Ada Lovelace",
		EventTitle: "Go Workshop",
		EventDate:  "01.03.2026",
		Seats:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Waiting list: Go Workshop", subject)
	assert.Contains(t, html, "waiting list")
	assert.Contains(t, text, "waiting list")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("no_such_template", nil)
	assert.Error(t, err)
}
