package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seminarbooking/internal/domain"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, "Regular price", tr.Translate("price_regular"))
	assert.Equal(t, "Early bird price", tr.Translate("price_regular_early"))
	// Unknown keys fall back to the key itself.
	assert.Equal(t, "price_unknown", tr.Translate("price_unknown"))
}

func TestCurrencyFormatter(t *testing.T) {
	f := NewCurrencyFormatter()

	assert.Equal(t, "50.00 EUR", f.Format(domain.Amount(5000), "EUR"))
	assert.Equal(t, "0.05", f.Format(domain.Amount(5), ""))
}
