package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seminarbooking/internal/domain"
)

func newCollisionChecker(events *fakeEventRepo, regs *fakeRegistrationRepo) *CollisionChecker {
	return NewCollisionChecker(events, regs, NewTopicResolver(events))
}

func at(h int) time.Time {
	return time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC)
}

func TestCollisionChecker_NoOverlapBackToBack(t *testing.T) {
	ctx := context.Background()
	booked := &domain.Event{UID: 1, Begin: at(10), End: at(12), NeedsRegistration: true}
	candidate := &domain.Event{UID: 2, Begin: at(12), End: at(14), NeedsRegistration: true}
	events := newFakeEventRepo(booked, candidate)
	regs := newFakeRegistrationRepo(&domain.Registration{UID: 1, EventRef: 1, UserRef: 7})

	blocked, err := newCollisionChecker(events, regs).IsUserBlocked(ctx, 7, candidate)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestCollisionChecker_OverlapBlocks(t *testing.T) {
	ctx := context.Background()
	booked := &domain.Event{UID: 1, Begin: at(10), End: at(12), NeedsRegistration: true}
	candidate := &domain.Event{UID: 2, Begin: at(11), End: at(13), NeedsRegistration: true}
	events := newFakeEventRepo(booked, candidate)
	regs := newFakeRegistrationRepo(&domain.Registration{UID: 1, EventRef: 1, UserRef: 7})
	checker := newCollisionChecker(events, regs)

	blocked, err := checker.IsUserBlocked(ctx, 7, candidate)
	require.NoError(t, err)
	assert.True(t, blocked)

	// A different user is not affected.
	blocked, err = checker.IsUserBlocked(ctx, 8, candidate)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestCollisionChecker_OpenEndedBlocksFollowingDay(t *testing.T) {
	ctx := context.Background()
	booked := &domain.Event{UID: 1, Begin: at(10), NeedsRegistration: true} // open-ended
	inside := &domain.Event{UID: 2, Begin: at(10).Add(20 * time.Hour), End: at(10).Add(22 * time.Hour), NeedsRegistration: true}
	outside := &domain.Event{UID: 3, Begin: at(10).Add(26 * time.Hour), End: at(10).Add(28 * time.Hour), NeedsRegistration: true}
	events := newFakeEventRepo(booked, inside, outside)
	regs := newFakeRegistrationRepo(&domain.Registration{UID: 1, EventRef: 1, UserRef: 7})
	checker := newCollisionChecker(events, regs)

	blocked, err := checker.IsUserBlocked(ctx, 7, inside)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = checker.IsUserBlocked(ctx, 7, outside)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestCollisionChecker_ShortCircuits(t *testing.T) {
	ctx := context.Background()
	booked := &domain.Event{UID: 1, Begin: at(10), End: at(12), NeedsRegistration: true}
	overlapping := &domain.Event{UID: 2, Begin: at(11), End: at(13), NeedsRegistration: true}
	events := newFakeEventRepo(booked, overlapping)
	regs := newFakeRegistrationRepo(&domain.Registration{UID: 1, EventRef: 1, UserRef: 7})
	checker := newCollisionChecker(events, regs)

	// No user.
	blocked, err := checker.IsUserBlocked(ctx, 0, overlapping)
	require.NoError(t, err)
	assert.False(t, blocked)

	// Candidate allows multiple registrations.
	multi := &domain.Event{UID: 3, Begin: at(11), End: at(13), AllowsMultipleRegistrations: true}
	events.byUID[3] = multi
	blocked, err = checker.IsUserBlocked(ctx, 7, multi)
	require.NoError(t, err)
	assert.False(t, blocked)

	// Candidate skips the collision check.
	skip := &domain.Event{UID: 4, Begin: at(11), End: at(13), SkipCollisionCheck: true}
	events.byUID[4] = skip
	blocked, err = checker.IsUserBlocked(ctx, 7, skip)
	require.NoError(t, err)
	assert.False(t, blocked)

	// Candidate has no schedule.
	unscheduled := &domain.Event{UID: 5}
	events.byUID[5] = unscheduled
	blocked, err = checker.IsUserBlocked(ctx, 7, unscheduled)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestCollisionChecker_MultipleRegistrationsFlagIsTopicDelegated(t *testing.T) {
	ctx := context.Background()
	topic := &domain.Event{UID: 10, Kind: domain.RecordTypeTopic, AllowsMultipleRegistrations: true}
	bookedDate := &domain.Event{UID: 1, Kind: domain.RecordTypeDate, TopicRef: 10, Begin: at(10), End: at(12)}
	candidate := &domain.Event{UID: 2, Begin: at(11), End: at(13), NeedsRegistration: true}
	events := newFakeEventRepo(topic, bookedDate, candidate)
	regs := newFakeRegistrationRepo(&domain.Registration{UID: 1, EventRef: 1, UserRef: 7})

	// The booked event's topic allows multiple registrations, so the
	// overlapping booking does not block the candidate.
	blocked, err := newCollisionChecker(events, regs).IsUserBlocked(ctx, 7, candidate)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestCollisionChecker_SkipsDanglingEventRefs(t *testing.T) {
	ctx := context.Background()
	candidate := &domain.Event{UID: 2, Begin: at(11), End: at(13), NeedsRegistration: true}
	events := newFakeEventRepo(candidate)
	// Registration points at a deleted event.
	regs := newFakeRegistrationRepo(&domain.Registration{UID: 1, EventRef: 99, UserRef: 7})

	blocked, err := newCollisionChecker(events, regs).IsUserBlocked(ctx, 7, candidate)
	require.NoError(t, err)
	assert.False(t, blocked)
}
