package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seminarbooking/internal/domain"
)

func TestCapacityTracker_CountsOfflineAndSeats(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{UID: 1, NeedsRegistration: true, AttendeesMin: 3, AttendeesMax: 10, OfflineAttendees: 2}
	regs := newFakeRegistrationRepo(
		&domain.Registration{UID: 1, EventRef: 1, Seats: 2, Queue: domain.QueueRegular},
		&domain.Registration{UID: 2, EventRef: 1, Seats: 1, Queue: domain.QueueRegular},
		// Seats below 1 count as one attendee.
		&domain.Registration{UID: 3, EventRef: 1, Seats: 0, Queue: domain.QueueRegular},
		&domain.Registration{UID: 4, EventRef: 1, Seats: 2, Queue: domain.QueueWaiting},
		// Registration of a different event must be ignored.
		&domain.Registration{UID: 5, EventRef: 9, Seats: 5, Queue: domain.QueueRegular},
	)
	tracker := NewCapacityTracker(regs)

	stats, err := tracker.Stats(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Attendees, "2 offline + 2 + 1 + clamped 1")
	assert.Equal(t, 2, stats.Waiting)
	assert.Equal(t, 4, stats.Vacancies)
	assert.False(t, stats.Unlimited)
	assert.False(t, stats.Full)
	assert.True(t, stats.EnoughAttendees)
}

func TestCapacityTracker_VacancyMonotonicity(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{UID: 1, NeedsRegistration: true, AttendeesMax: 10}
	regs := newFakeRegistrationRepo()
	tracker := NewCapacityTracker(regs)

	stats, err := tracker.Stats(ctx, event)
	require.NoError(t, err)
	before := stats.Vacancies

	// One regular registration with n seats lowers vacancies by exactly n.
	require.NoError(t, regs.Create(ctx, &domain.Registration{EventRef: 1, Seats: 3, Queue: domain.QueueRegular}))
	stats, err = tracker.Recompute(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, before-3, stats.Vacancies)

	// A waiting registration does not change vacancies.
	require.NoError(t, regs.Create(ctx, &domain.Registration{EventRef: 1, Seats: 2, Queue: domain.QueueWaiting}))
	stats, err = tracker.Recompute(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, before-3, stats.Vacancies)

	// Vacancies are floored at 0.
	require.NoError(t, regs.Create(ctx, &domain.Registration{EventRef: 1, Seats: 20, Queue: domain.QueueRegular}))
	stats, err = tracker.Recompute(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Vacancies)
	assert.True(t, stats.Full)
}

func TestCapacityTracker_UnlimitedCapacity(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{UID: 1, NeedsRegistration: true, AttendeesMax: 0}
	regs := newFakeRegistrationRepo(
		&domain.Registration{UID: 1, EventRef: 1, Seats: 500, Queue: domain.QueueRegular},
	)
	tracker := NewCapacityTracker(regs)

	stats, err := tracker.Stats(ctx, event)
	require.NoError(t, err)
	assert.True(t, stats.Unlimited)
	assert.False(t, stats.Full)
	assert.Equal(t, 0, stats.Vacancies)
	assert.Equal(t, 500, stats.Attendees)

	full, err := tracker.IsFull(ctx, event)
	require.NoError(t, err)
	assert.False(t, full)
}

func TestCapacityTracker_FullEvent(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{UID: 1, NeedsRegistration: true, AttendeesMax: 2}
	regs := newFakeRegistrationRepo(
		&domain.Registration{UID: 1, EventRef: 1, Seats: 2, Queue: domain.QueueRegular},
	)
	tracker := NewCapacityTracker(regs)

	stats, err := tracker.Stats(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Attendees)
	assert.Equal(t, 0, stats.Vacancies)
	assert.True(t, stats.Full)
}

func TestCapacityTracker_MemoizesUntilRecompute(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{UID: 1, NeedsRegistration: true, AttendeesMax: 10}
	regs := newFakeRegistrationRepo()
	tracker := NewCapacityTracker(regs)

	stats, err := tracker.Stats(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Attendees)

	// New registrations are invisible until an explicit recomputation.
	require.NoError(t, regs.Create(ctx, &domain.Registration{EventRef: 1, Seats: 4, Queue: domain.QueueRegular}))
	stats, err = tracker.Stats(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Attendees)

	stats, err = tracker.Recompute(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Attendees)
}
