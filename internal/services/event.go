package services

import (
	"context"
	"errors"
	"fmt"

	"seminarbooking/internal/domain"
)

type eventService struct {
	events     domain.EventRepository
	regs       domain.RegistrationRepository
	clock      domain.Clock
	translator domain.Translator
}

// NewEventService creates the read-side event service used by the delivery
// layer. The topic resolver and capacity tracker carry request-scoped
// caches, so every call builds fresh ones instead of sharing them.
func NewEventService(events domain.EventRepository, regs domain.RegistrationRepository, clock domain.Clock, translator domain.Translator) domain.EventService {
	return &eventService{
		events:     events,
		regs:       regs,
		clock:      clock,
		translator: translator,
	}
}

func (s *eventService) GetEventDetails(ctx context.Context, uid int64) (*domain.EventDetails, error) {
	event, err := s.events.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.IsTopicRecord() {
		// Topic templates have no schedule of their own and are not shown.
		return nil, domain.ErrNotFound
	}

	topics := NewTopicResolver(s.events)
	topic, err := topics.Resolve(ctx, event)
	if err != nil {
		return nil, err
	}

	pricing := NewPricingEngine(topics, s.clock, s.translator)
	prices, err := pricing.AvailablePrices(ctx, event)
	if err != nil {
		return nil, err
	}
	stats, err := NewCapacityTracker(s.regs).Stats(ctx, event)
	if err != nil {
		return nil, err
	}
	slots, err := s.events.ListTimeSlots(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}

	return &domain.EventDetails{
		Event:    event.WithTopicAttributes(topic),
		Prices:   prices,
		Capacity: stats,
		Slots:    slots,
	}, nil
}

func (s *eventService) ListUpcoming(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.events.ListUpcoming(ctx, s.clock.Now(), p)
	if err != nil {
		return nil, 0, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}
