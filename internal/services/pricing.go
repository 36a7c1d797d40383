package services

import (
	"context"
	"fmt"
	"time"

	"seminarbooking/internal/domain"
)

// PricingEngine computes the currently available price tiers of an event.
// Monetary fields are read through the topic resolver; deadlines stay on the
// date record itself.
type PricingEngine struct {
	topics     *TopicResolver
	clock      domain.Clock
	translator domain.Translator
}

// NewPricingEngine creates a PricingEngine.
func NewPricingEngine(topics *TopicResolver, clock domain.Clock, translator domain.Translator) *PricingEngine {
	return &PricingEngine{
		topics:     topics,
		clock:      clock,
		translator: translator,
	}
}

// AvailablePrices returns the price tiers bookable right now, in the fixed
// precedence order. Exactly one of regular/regular_early is present, same
// for special/special_early; board tiers are independent add-ons. The
// regular tier is always present, even at 0.00 for free events; special and
// board tiers with a zero amount are absent. The priceOnRequest flag does
// not suppress the tiers here; callers decide whether to display them.
func (e *PricingEngine) AvailablePrices(ctx context.Context, event *domain.Event) ([]domain.Price, error) {
	eff, err := e.topics.Effective(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("resolve prices: %w", err)
	}

	early := e.earlyBirdApplies(event, eff, e.clock.Now())

	var prices []domain.Price
	if early {
		prices = append(prices, e.price(domain.PriceKeyRegularEarly, eff.PriceRegularEarly))
	} else {
		prices = append(prices, e.price(domain.PriceKeyRegular, eff.PriceRegular))
	}
	if !eff.PriceRegularBoard.IsZero() {
		prices = append(prices, e.price(domain.PriceKeyRegularBoard, eff.PriceRegularBoard))
	}
	if !eff.PriceSpecial.IsZero() {
		if early {
			prices = append(prices, e.price(domain.PriceKeySpecialEarly, eff.PriceSpecialEarly))
		} else {
			prices = append(prices, e.price(domain.PriceKeySpecial, eff.PriceSpecial))
		}
	}
	if !eff.PriceSpecialBoard.IsZero() {
		prices = append(prices, e.price(domain.PriceKeySpecialBoard, eff.PriceSpecialBoard))
	}
	return prices, nil
}

// CurrentPrice returns the amount of the given tier if it is available right
// now. An empty key selects the first tier in precedence order. Requesting a
// tier that is not currently available returns ErrNotFound.
func (e *PricingEngine) CurrentPrice(ctx context.Context, event *domain.Event, key domain.PriceKey) (domain.Price, error) {
	prices, err := e.AvailablePrices(ctx, event)
	if err != nil {
		return domain.Price{}, err
	}
	if key == "" {
		return prices[0], nil
	}
	if p := domain.FindPrice(prices, key); p != nil {
		return *p, nil
	}
	return domain.Price{}, fmt.Errorf("price tier %q: %w", key, domain.ErrNotFound)
}

// earlyBirdApplies implements the all-or-nothing early-bird rule: the
// deadline must be set and unexpired, a regular early-bird amount must be
// configured, and if a special price exists at all its early-bird variant
// must be configured too. A missing special early-bird amount disables
// early-bird pricing for both tiers.
func (e *PricingEngine) earlyBirdApplies(event, eff *domain.Event, now time.Time) bool {
	if event.EarlyBirdDeadline.IsZero() || !now.Before(event.EarlyBirdDeadline) {
		return false
	}
	if eff.PriceRegularEarly.IsZero() {
		return false
	}
	if !eff.PriceSpecial.IsZero() && eff.PriceSpecialEarly.IsZero() {
		return false
	}
	return true
}

func (e *PricingEngine) price(key domain.PriceKey, amount domain.Amount) domain.Price {
	return domain.Price{
		Key:    key,
		Label:  e.translator.Translate("price_" + string(key)),
		Amount: amount,
	}
}
