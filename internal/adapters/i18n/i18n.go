// Package i18n provides the built-in English translator and the currency
// formatter used for price labels and registration emails.
package i18n

import "seminarbooking/internal/domain"

var englishLabels = map[string]string{
	"price_regular_early": "Early bird price",
	"price_regular":       "Regular price",
	"price_regular_board": "Regular price (incl. board and lodging)",
	"price_special_early": "Special early bird price",
	"price_special":       "Special price",
	"price_special_board": "Special price (incl. board and lodging)",
}

type translator struct {
	labels map[string]string
}

// NewTranslator returns a Translator with the built-in English labels.
// Unknown keys fall back to the key itself.
func NewTranslator() domain.Translator {
	return &translator{labels: englishLabels}
}

func (t *translator) Translate(key string) string {
	if label, ok := t.labels[key]; ok {
		return label
	}
	return key
}

type currencyFormatter struct{}

// NewCurrencyFormatter returns a CurrencyFormatter that renders amounts as
// "50.00 EUR".
func NewCurrencyFormatter() domain.CurrencyFormatter {
	return &currencyFormatter{}
}

func (currencyFormatter) Format(amount domain.Amount, currencyCode string) string {
	if currencyCode == "" {
		return amount.String()
	}
	return amount.String() + " " + currencyCode
}
