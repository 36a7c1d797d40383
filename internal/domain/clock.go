package domain

import "time"

// Clock provides the current time. Pricing, deadlines, and collision windows
// depend on "now", so it is injected rather than read from time.Now inline.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Translator resolves a message key to a display string. The engine only
// uses it for price tier labels and mail subjects; missing keys fall back to
// the key itself.
type Translator interface {
	Translate(key string) string
}

// CurrencyFormatter renders a raw amount with a currency code for display.
type CurrencyFormatter interface {
	Format(amount Amount, currencyCode string) string
}
