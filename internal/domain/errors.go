package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a record does not exist. It is distinct
	// from a record that exists with blank fields.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned for caller-contract violations such as
	// negative seat counts or composing against an unpersisted event.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRegistrationClosed is returned when the registration deadline has
	// passed or the event has been canceled.
	ErrRegistrationClosed = errors.New("registration closed")

	// ErrEventFull is returned when the event is booked out and has no
	// waiting queue enabled.
	ErrEventFull = errors.New("event is fully booked")

	// ErrUserBlocked is returned when the user already holds a registration
	// for a time-overlapping, non-combinable event.
	ErrUserBlocked = errors.New("user has a conflicting registration")

	// ErrInvalidCredentials is returned on a failed login. It carries no
	// detail: callers must not learn whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
