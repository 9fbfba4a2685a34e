package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fraction digits every price carries.
const PriceScale = 2

// Price is a monetary amount fixed at two fraction digits.
type Price struct {
	d decimal.Decimal
}

// NewPriceFromCents builds a price from an integer number of cents.
func NewPriceFromCents(cents int64) Price {
	return Price{d: decimal.New(cents, -PriceScale)}
}

// ParsePrice parses a decimal string and rounds it to two fraction digits.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{d: d.Round(PriceScale)}, nil
}

// Decimal returns the underlying decimal value.
func (p Price) Decimal() decimal.Decimal {
	return p.d
}

// Cmp compares two prices.
func (p Price) Cmp(o Price) int {
	return p.d.Cmp(o.d)
}

func (p Price) String() string {
	return p.d.StringFixed(PriceScale)
}

// MarshalJSON writes an unquoted number with exactly two fraction digits.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts both quoted and unquoted numbers.
func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*p = Price{}
		return nil
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner.
func (p *Price) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	p.d = d.Round(PriceScale)
	return nil
}
