package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary amount in cents. Zero means "not set": the stored
// records treat a 0.00 price as absent rather than as a real zero price.
type Amount int64

// IsZero reports whether the amount is unset.
func (a Amount) IsZero() bool { return a == 0 }

// Times returns the amount multiplied by a seat count.
func (a Amount) Times(n int) Amount { return a * Amount(n) }

// String renders the amount with two fraction digits, e.g. "50.00".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON renders the amount as a decimal string, e.g. "50.00".
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string ("50.00") or a bare number of cents.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		v, err := parseAmount(s[1 : len(s)-1])
		if err != nil {
			return err
		}
		*a = v
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %s", s)
	}
	*a = Amount(n)
	return nil
}

func parseAmount(s string) (Amount, error) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	total := units*100 + cents
	if neg {
		total = -total
	}
	return Amount(total), nil
}

// PriceKey identifies a price tier. The string values are part of the stored
// data contract and must not change.
type PriceKey string

const (
	PriceKeyRegularEarly PriceKey = "regular_early"
	PriceKeyRegular      PriceKey = "regular"
	PriceKeyRegularBoard PriceKey = "regular_board"
	PriceKeySpecialEarly PriceKey = "special_early"
	PriceKeySpecial      PriceKey = "special"
	PriceKeySpecialBoard PriceKey = "special_board"
)

// PriceKeyOrder is the fixed precedence order of price tiers. Tier fallback
// during registration picks the first available key in this order.
var PriceKeyOrder = []PriceKey{
	PriceKeyRegularEarly,
	PriceKeyRegular,
	PriceKeyRegularBoard,
	PriceKeySpecialEarly,
	PriceKeySpecial,
	PriceKeySpecialBoard,
}

// Price is one currently available price tier of an event.
// swagger:model Price
type Price struct {
	Key    PriceKey `json:"key"`
	Label  string   `json:"label"`
	Amount Amount   `json:"amount"`
}

// FindPrice returns the price with the given key from an ordered tier list,
// or nil if the key is not present.
func FindPrice(prices []Price, key PriceKey) *Price {
	for i := range prices {
		if prices[i].Key == key {
			return &prices[i]
		}
	}
	return nil
}
