package services

import (
	"context"
	"fmt"

	"seminarbooking/internal/domain"
)

// CapacityTracker computes attendance numbers for events and memoizes them
// per event uid. Statistics are a snapshot: they are not live-reactive to
// concurrent writes and change only through Recompute. Like the topic cache,
// one tracker instance belongs to a single request-scoped flow.
type CapacityTracker struct {
	regs  domain.RegistrationRepository
	stats map[int64]*domain.CapacityStats
}

// NewCapacityTracker creates a CapacityTracker over the given registration
// repository.
func NewCapacityTracker(regs domain.RegistrationRepository) *CapacityTracker {
	return &CapacityTracker{
		regs:  regs,
		stats: make(map[int64]*domain.CapacityStats),
	}
}

// Stats returns the capacity statistics for the event, computing them on
// first access and serving the memoized snapshot afterward.
func (t *CapacityTracker) Stats(ctx context.Context, event *domain.Event) (*domain.CapacityStats, error) {
	if s, ok := t.stats[event.UID]; ok {
		return s, nil
	}
	return t.Recompute(ctx, event)
}

// Recompute discards any memoized snapshot for the event and recalculates
// the statistics from the stored registrations.
func (t *CapacityTracker) Recompute(ctx context.Context, event *domain.Event) (*domain.CapacityStats, error) {
	regs, err := t.regs.ListByEvent(ctx, event.UID)
	if err != nil {
		return nil, fmt.Errorf("list registrations for event %d: %w", event.UID, err)
	}

	s := &domain.CapacityStats{Attendees: event.OfflineAttendees}
	for _, reg := range regs {
		seats := reg.Seats
		if seats < 1 {
			seats = 1
		}
		if reg.OnWaitingList() {
			s.Waiting += seats
		} else {
			s.Attendees += seats
		}
	}

	s.Unlimited = event.UnlimitedVacancies()
	if !s.Unlimited {
		s.Full = s.Attendees >= event.AttendeesMax
		if event.AttendeesMax > s.Attendees {
			s.Vacancies = event.AttendeesMax - s.Attendees
		}
	}
	s.EnoughAttendees = s.Attendees >= event.AttendeesMin

	t.stats[event.UID] = s
	return s, nil
}

// AttendeeCount returns offline attendees plus the seats of all regular
// registrations.
func (t *CapacityTracker) AttendeeCount(ctx context.Context, event *domain.Event) (int, error) {
	s, err := t.Stats(ctx, event)
	if err != nil {
		return 0, err
	}
	return s.Attendees, nil
}

// WaitingCount returns the seats held on the waiting queue.
func (t *CapacityTracker) WaitingCount(ctx context.Context, event *domain.Event) (int, error) {
	s, err := t.Stats(ctx, event)
	if err != nil {
		return 0, err
	}
	return s.Waiting, nil
}

// Vacancies returns the remaining free seats, floored at 0. For unlimited
// events the second return value is true and the number is meaningless.
func (t *CapacityTracker) Vacancies(ctx context.Context, event *domain.Event) (int, bool, error) {
	s, err := t.Stats(ctx, event)
	if err != nil {
		return 0, false, err
	}
	return s.Vacancies, s.Unlimited, nil
}

// IsFull reports whether the event has no vacancies left. Always false for
// unlimited events.
func (t *CapacityTracker) IsFull(ctx context.Context, event *domain.Event) (bool, error) {
	s, err := t.Stats(ctx, event)
	if err != nil {
		return false, err
	}
	return s.Full, nil
}

// HasEnoughAttendees reports whether the minimum attendance is reached.
func (t *CapacityTracker) HasEnoughAttendees(ctx context.Context, event *domain.Event) (bool, error) {
	s, err := t.Stats(ctx, event)
	if err != nil {
		return false, err
	}
	return s.EnoughAttendees, nil
}
