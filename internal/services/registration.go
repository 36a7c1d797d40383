package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"seminarbooking/internal/domain"
)

type registrationService struct {
	events       domain.EventRepository
	regs         domain.RegistrationRepository
	users        domain.UserRepository
	organizers   domain.OrganizerRepository
	clock        domain.Clock
	translator   domain.Translator
	currency     domain.CurrencyFormatter
	currencyCode string
	email        domain.EmailService
}

// NewRegistrationService creates the attendee registration service. The
// email service may be nil; confirmation mail is then skipped.
func NewRegistrationService(
	events domain.EventRepository,
	regs domain.RegistrationRepository,
	users domain.UserRepository,
	organizers domain.OrganizerRepository,
	clock domain.Clock,
	translator domain.Translator,
	currency domain.CurrencyFormatter,
	currencyCode string,
	email domain.EmailService,
) domain.RegistrationService {
	return &registrationService{
		events:       events,
		regs:         regs,
		users:        users,
		organizers:   organizers,
		clock:        clock,
		translator:   translator,
		currency:     currency,
		currencyCode: currencyCode,
		email:        email,
	}
}

// bookingFlow bundles the engines of one registration flow. The topic and
// capacity caches inside are not safe for concurrent use, so every service
// call builds a fresh flow instead of sharing one across requests.
type bookingFlow struct {
	topics     *TopicResolver
	pricing    *PricingEngine
	capacity   *CapacityTracker
	collisions *CollisionChecker
}

func (s *registrationService) newFlow() *bookingFlow {
	topics := NewTopicResolver(s.events)
	return &bookingFlow{
		topics:     topics,
		pricing:    NewPricingEngine(topics, s.clock, s.translator),
		capacity:   NewCapacityTracker(s.regs),
		collisions: NewCollisionChecker(s.events, s.regs, topics),
	}
}

// Compose builds an unpersisted registration from user input and an event.
// It selects the price tier (falling back along the precedence order),
// freezes the total price, auto-selects a sole payment method for non-free
// totals, and fixes the queue placement from the vacancy snapshot taken
// right now. The placement is never re-evaluated later.
func (s *registrationService) Compose(ctx context.Context, event *domain.Event, user *domain.FrontEndUser, in *domain.RegistrationInput) (*domain.Registration, error) {
	return s.compose(ctx, s.newFlow(), event, user, in)
}

func (s *registrationService) compose(ctx context.Context, flow *bookingFlow, event *domain.Event, user *domain.FrontEndUser, in *domain.RegistrationInput) (*domain.Registration, error) {
	if event == nil || event.UID == 0 {
		return nil, fmt.Errorf("compose against unpersisted event: %w", domain.ErrInvalidInput)
	}
	if in == nil {
		return nil, fmt.Errorf("missing registration input: %w", domain.ErrInvalidInput)
	}
	if in.PaymentMethodRef < 0 {
		return nil, fmt.Errorf("negative payment method reference: %w", domain.ErrInvalidInput)
	}

	seats := in.Seats
	if seats < 1 {
		seats = 1
	}

	prices, err := flow.pricing.AvailablePrices(ctx, event)
	if err != nil {
		return nil, err
	}
	tier, err := s.selectTier(prices, in.PriceTier)
	if err != nil {
		return nil, err
	}
	total := tier.Amount.Times(seats)

	eff, err := flow.topics.Effective(ctx, event)
	if err != nil {
		return nil, err
	}

	payment := in.PaymentMethodRef
	if payment == 0 && !total.IsZero() && len(eff.PaymentMethodRefs) == 1 {
		payment = eff.PaymentMethodRefs[0]
	}

	stats, err := flow.capacity.Stats(ctx, event)
	if err != nil {
		return nil, err
	}
	queue := domain.QueueRegular
	if stats.Full {
		queue = domain.QueueWaiting
	}

	name := in.AttendeesNames
	if user != nil {
		name = user.DisplayName()
	}

	now := s.clock.Now()
	reg := &domain.Registration{
		EventRef:             event.UID,
		Title:                fmt.Sprintf("%s / %s, %s", name, eff.Title, event.Span().DateRange()),
		Seats:                seats,
		Queue:                queue,
		PriceLabel:           string(tier.Key),
		TotalPrice:           total,
		PaymentMethodRef:     payment,
		RegisteredThemselves: in.RegisteredThemselves,
		AttendeesNames:       in.AttendeesNames,
		Interests:            in.Interests,
		Expectations:         in.Expectations,
		Notes:                in.Notes,
		LodgingRefs:          in.LodgingRefs,
		FoodRefs:             in.FoodRefs,
		CheckboxRefs:         in.CheckboxRefs,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if user != nil {
		reg.UserRef = user.UID
	}
	return reg, nil
}

// selectTier picks the requested tier if it is currently available, else the
// first tier in precedence order. A tier explicitly requested when nothing
// is bookable is a caller error; with no request and no tiers the event is
// free and books as a zero-amount regular registration.
func (s *registrationService) selectTier(prices []domain.Price, requested domain.PriceKey) (domain.Price, error) {
	if len(prices) == 0 {
		if requested != "" {
			return domain.Price{}, fmt.Errorf("no bookable price tier: %w", domain.ErrInvalidInput)
		}
		return domain.Price{Key: domain.PriceKeyRegular}, nil
	}
	if requested != "" {
		if p := domain.FindPrice(prices, requested); p != nil {
			return *p, nil
		}
	}
	return prices[0], nil
}

func (s *registrationService) Register(ctx context.Context, eventUID, userUID int64, in *domain.RegistrationInput) (*domain.Registration, error) {
	event, err := s.events.GetByUID(ctx, eventUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.IsTopicRecord() || !event.NeedsRegistration {
		return nil, fmt.Errorf("event does not take registrations: %w", domain.ErrInvalidInput)
	}
	if event.Status == domain.StatusCanceled {
		return nil, domain.ErrRegistrationClosed
	}
	now := s.clock.Now()
	if !event.RegistrationDeadline.IsZero() && !now.Before(event.RegistrationDeadline) {
		return nil, domain.ErrRegistrationClosed
	}

	var user *domain.FrontEndUser
	if userUID > 0 {
		user, err = s.users.GetByUID(ctx, userUID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
	}

	flow := s.newFlow()

	blocked, err := flow.collisions.IsUserBlocked(ctx, userUID, event)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, domain.ErrUserBlocked
	}

	stats, err := flow.capacity.Stats(ctx, event)
	if err != nil {
		return nil, err
	}
	if stats.Full && !event.UnlimitedVacancies() && !event.QueueEnabled {
		return nil, domain.ErrEventFull
	}

	reg, err := s.compose(ctx, flow, event, user, in)
	if err != nil {
		return nil, err
	}
	if err := s.regs.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// The snapshot taken for placement is stale now; recompute so later
	// reads in this flow see the new occupancy.
	if _, err := flow.capacity.Recompute(ctx, event); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, flow, event, user, reg)
	return reg, nil
}

// sendConfirmation mails the confirmation or waitlist notification.
// Failures are logged, not returned: the registration is already booked.
func (s *registrationService) sendConfirmation(ctx context.Context, flow *bookingFlow, event *domain.Event, user *domain.FrontEndUser, reg *domain.Registration) {
	if s.email == nil || user == nil || user.Email == "" {
		return
	}
	eff, err := flow.topics.Effective(ctx, event)
	if err != nil {
		log.Printf("[REGISTRATION] confirmation mail skipped: %v", err)
		return
	}
	data := &domain.RegistrationEmailData{
		Email:      user.Email,
		Name:       user.DisplayName(),
		EventTitle: eff.Title,
		EventDate:  event.Span().DateRange(),
		Seats:      reg.Seats,
		TotalPrice: s.currency.Format(reg.TotalPrice, s.currencyCode),
	}
	if len(event.OrganizerRefs) > 0 {
		if org, err := s.organizers.GetByUID(ctx, event.OrganizerRefs[0]); err == nil {
			data.OrganizerName = org.Name
		}
	}
	if reg.OnWaitingList() {
		err = s.email.SendWaitlistNotification(ctx, data)
	} else {
		err = s.email.SendRegistrationConfirmation(ctx, data)
	}
	if err != nil {
		log.Printf("[REGISTRATION] confirmation mail failed: %v", err)
	}
}

func (s *registrationService) ListUserRegistrations(ctx context.Context, userUID int64) ([]*domain.RegistrationWithEvent, error) {
	regs, err := s.regs.ListByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(regs) == 0 {
		return []*domain.RegistrationWithEvent{}, nil
	}

	// Fetch events one by one (N+1). This keeps the implementation simple; we can optimize later if needed.
	eventsByUID := make(map[int64]*domain.Event)
	var result []*domain.RegistrationWithEvent

	for _, reg := range regs {
		ev, ok := eventsByUID[reg.EventRef]
		if !ok {
			ev, err = s.events.GetByUID(ctx, reg.EventRef)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but registration remains; skip this entry defensively.
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByUID[reg.EventRef] = ev
		}
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}

	if result == nil {
		result = []*domain.RegistrationWithEvent{}
	}
	return result, nil
}
