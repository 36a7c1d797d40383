package domain

import (
	"context"
	"time"
)

// QueueStatus is the queue placement of a registration, fixed at creation
// time from the vacancy situation at that moment. The numeric values are
// stored in the registration_queue column.
type QueueStatus int16

const (
	QueueRegular QueueStatus = 0
	QueueWaiting QueueStatus = 1
)

// Registration represents one attendee signup (possibly a multi-seat party)
// for an event. PriceLabel and TotalPrice are captured from the pricing
// engine at creation time and never recalculated: later price changes on the
// event must not alter booked registrations.
type Registration struct {
	UID      int64 `json:"uid"`
	EventRef int64 `json:"seminar"`
	// UserRef is 0 for offline-recorded signups, which are counted through
	// the event's offline attendee number instead.
	UserRef int64 `json:"user"`

	Title string      `json:"title"`
	Seats int         `json:"seats"`
	Queue QueueStatus `json:"registration_queue"`

	PriceLabel       string `json:"price"`
	TotalPrice       Amount `json:"total_price"`
	PaymentMethodRef int64  `json:"method_of_payment,omitempty"`

	RegisteredThemselves bool   `json:"registered_themselves"`
	AttendeesNames       string `json:"attendees_names,omitempty"`
	Interests            string `json:"interests,omitempty"`
	Expectations         string `json:"expectations,omitempty"`
	Notes                string `json:"notes,omitempty"`

	// Selected option references, persisted as many-to-many links.
	LodgingRefs  []int64 `json:"lodgings,omitempty"`
	FoodRefs     []int64 `json:"foods,omitempty"`
	CheckboxRefs []int64 `json:"checkboxes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OnWaitingList reports whether the registration sits in the waiting queue.
func (r *Registration) OnWaitingList() bool { return r.Queue == QueueWaiting }

// RegistrationInput is the user-entered data a registration is composed
// from. PriceTier may be empty; the composer then picks the first available
// tier in precedence order.
type RegistrationInput struct {
	Seats            int      `json:"seats"`
	PriceTier        PriceKey `json:"price_tier,omitempty"`
	PaymentMethodRef int64    `json:"method_of_payment,omitempty"`

	RegisteredThemselves bool   `json:"registered_themselves"`
	AttendeesNames       string `json:"attendees_names,omitempty"`
	Interests            string `json:"interests,omitempty"`
	Expectations         string `json:"expectations,omitempty"`
	Notes                string `json:"notes,omitempty"`

	LodgingRefs  []int64 `json:"lodgings,omitempty"`
	FoodRefs     []int64 `json:"foods,omitempty"`
	CheckboxRefs []int64 `json:"checkboxes,omitempty"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByUID(ctx context.Context, uid int64) (*Registration, error)
	ListByEvent(ctx context.Context, eventUID int64) ([]*Registration, error)
	ListByUser(ctx context.Context, userUID int64) ([]*Registration, error)
}

// RegistrationWithEvent bundles a registration with its event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationService defines the attendee-facing registration operations.
type RegistrationService interface {
	// Register books the user onto the event: it checks deadlines, schedule
	// collisions, and capacity, composes the registration, persists it, and
	// sends the confirmation mail.
	Register(ctx context.Context, eventUID, userUID int64, in *RegistrationInput) (*Registration, error)
	ListUserRegistrations(ctx context.Context, userUID int64) ([]*RegistrationWithEvent, error)
}
