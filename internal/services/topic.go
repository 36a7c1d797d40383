package services

import (
	"context"
	"errors"
	"fmt"

	"seminarbooking/internal/domain"
)

// TopicResolver resolves the topic record of a date event and caches the
// result per event uid. The cache belongs to one request-scoped resolver
// instance and is not safe for concurrent use.
type TopicResolver struct {
	events domain.EventRepository
	// cache maps event uid to its resolved topic; a stored nil means
	// resolution was attempted and failed (dangling or cyclic reference).
	cache map[int64]*domain.Event
}

// NewTopicResolver creates a TopicResolver over the given event repository.
func NewTopicResolver(events domain.EventRepository) *TopicResolver {
	return &TopicResolver{
		events: events,
		cache:  make(map[int64]*domain.Event),
	}
}

// Resolve returns the topic record of a date event, or nil if the event is
// not a date record or its topic reference cannot be used. A dangling
// reference and a topic that is itself a date record (a historically
// tolerated inconsistency that would otherwise recurse) both resolve to nil
// without an error; only storage failures are reported.
func (r *TopicResolver) Resolve(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.Kind != domain.RecordTypeDate {
		return nil, nil
	}
	if topic, ok := r.cache[event.UID]; ok {
		return topic, nil
	}
	if event.TopicRef == 0 {
		r.cache[event.UID] = nil
		return nil, nil
	}

	topic, err := r.events.GetByUID(ctx, event.TopicRef)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.cache[event.UID] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("load topic %d: %w", event.TopicRef, err)
	}
	if topic.Kind == domain.RecordTypeDate {
		r.cache[event.UID] = nil
		return nil, nil
	}

	r.cache[event.UID] = topic
	return topic, nil
}

// Effective returns the record that descriptive, pricing, and relational
// attributes must be read from: the resolved topic for date events, the
// event itself otherwise or when resolution fails.
func (r *TopicResolver) Effective(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	topic, err := r.Resolve(ctx, event)
	if err != nil {
		return nil, err
	}
	if topic != nil {
		return topic, nil
	}
	return event, nil
}

// Invalidate drops the cached resolution for one event uid.
func (r *TopicResolver) Invalidate(eventUID int64) {
	delete(r.cache, eventUID)
}
