package domain

import (
	"context"
	"time"
)

// Organizer represents an event organizer. Organizers belong to the date or
// single record itself and are never read through the topic.
type Organizer struct {
	UID       int64     `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Homepage  string    `json:"homepage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizerRepository defines the interface for organizer storage.
type OrganizerRepository interface {
	GetByUID(ctx context.Context, uid int64) (*Organizer, error)
	ListByUIDs(ctx context.Context, uids []int64) ([]*Organizer, error)
}
