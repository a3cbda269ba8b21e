// Package money represents currency amounts in integer paise so cart and
// order arithmetic never touches floating point.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Paise is an amount in minor currency units (1 rupee = 100 paise).
type Paise int64

var hundred = decimal.NewFromInt(100)

// FromRupees converts a decimal rupee amount to paise, rounding half-up to
// the nearest paisa.
func FromRupees(r decimal.Decimal) Paise {
	return Paise(r.Mul(hundred).Round(0).IntPart())
}

// FromRupeeInt converts a whole-rupee amount to paise.
func FromRupeeInt(n int64) Paise {
	return Paise(n * 100)
}

// Rupees returns the amount as a decimal rupee value.
func (p Paise) Rupees() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

// Mul scales the amount by an integer quantity.
func (p Paise) Mul(qty int) Paise {
	return p * Paise(qty)
}

// Percent returns pct% of the amount, rounded half-up to the nearest paisa.
func (p Paise) Percent(pct decimal.Decimal) Paise {
	return Paise(decimal.NewFromInt(int64(p)).Mul(pct).Div(hundred).Round(0).IntPart())
}

// PercentToRupee returns pct% of the amount, rounded half-up to the nearest
// whole rupee. This is the POS counter rounding rule.
func (p Paise) PercentToRupee(pct decimal.Decimal) Paise {
	rupees := p.Rupees().Mul(pct).Div(hundred).Round(0)
	return FromRupees(rupees)
}

// String renders the amount as rupees with two decimal places.
func (p Paise) String() string {
	return p.Rupees().StringFixed(2)
}

// MarshalJSON encodes the amount as a rupee number, matching the shape the
// storefront clients already consume.
func (p Paise) MarshalJSON() ([]byte, error) {
	return []byte(p.Rupees().String()), nil
}

// UnmarshalJSON decodes a rupee number into paise.
func (p *Paise) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", string(b), err)
	}
	*p = FromRupees(d)
	return nil
}
