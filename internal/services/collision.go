package services

import (
	"context"
	"errors"
	"fmt"

	"seminarbooking/internal/domain"
)

// CollisionChecker determines whether a user already holds a registration
// for another event that overlaps the candidate in time.
type CollisionChecker struct {
	events domain.EventRepository
	regs   domain.RegistrationRepository
	topics *TopicResolver
}

// NewCollisionChecker creates a CollisionChecker.
func NewCollisionChecker(events domain.EventRepository, regs domain.RegistrationRepository, topics *TopicResolver) *CollisionChecker {
	return &CollisionChecker{
		events: events,
		regs:   regs,
		topics: topics,
	}
}

// IsUserBlocked reports whether registering the user for the candidate event
// would double-book them. It short-circuits to false when there is no user,
// the candidate allows multiple registrations, skips the collision check, or
// has no schedule. One colliding registration is enough; the search stops at
// the first hit.
func (c *CollisionChecker) IsUserBlocked(ctx context.Context, userUID int64, candidate *domain.Event) (bool, error) {
	if userUID <= 0 {
		return false, nil
	}
	allowsMultiple, err := c.allowsMultiple(ctx, candidate)
	if err != nil {
		return false, err
	}
	if allowsMultiple || candidate.SkipCollisionCheck || !candidate.HasDate() {
		return false, nil
	}

	span := candidate.Span()

	regs, err := c.regs.ListByUser(ctx, userUID)
	if err != nil {
		return false, fmt.Errorf("list registrations for user %d: %w", userUID, err)
	}
	for _, reg := range regs {
		if reg.EventRef == candidate.UID {
			continue
		}
		other, err := c.events.GetByUID(ctx, reg.EventRef)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Event deleted but registration remains; skip this entry defensively.
				continue
			}
			return false, fmt.Errorf("load event %d: %w", reg.EventRef, err)
		}
		otherAllowsMultiple, err := c.allowsMultiple(ctx, other)
		if err != nil {
			return false, err
		}
		if otherAllowsMultiple || other.SkipCollisionCheck || !other.HasDate() {
			continue
		}
		if span.Overlaps(other.Span()) {
			return true, nil
		}
	}
	return false, nil
}

// allowsMultiple reads the topic-delegated multiple-registrations flag.
func (c *CollisionChecker) allowsMultiple(ctx context.Context, event *domain.Event) (bool, error) {
	eff, err := c.topics.Effective(ctx, event)
	if err != nil {
		return false, err
	}
	return eff.AllowsMultipleRegistrations, nil
}
