package valueobjects

import (
	"fmt"

	"github.com/binna/binna-backend/errors"
	"github.com/shopspring/decimal"
)

// LineItem is one priced quantity.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals is the priced result of a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// TaxPolicy prices lines with a flat VAT rate. Tax is computed on the
// subtotal and rounded half away from zero to two places.
type TaxPolicy struct {
	Rate     decimal.Decimal
	Currency Currency
}

// DefaultTaxPolicy is Saudi VAT.
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{Rate: decimal.RequireFromString("0.15"), Currency: SAR}
}

// NewTaxPolicy validates the rate and currency code.
func NewTaxPolicy(rate decimal.Decimal, currency string) (TaxPolicy, error) {
	c, err := ParseCurrency(currency)
	if err != nil {
		return TaxPolicy{}, err
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return TaxPolicy{}, errors.ValidationFailed("invalid tax rate", fmt.Sprintf("rate %s must be in [0, 1)", rate))
	}
	return TaxPolicy{Rate: rate, Currency: c}, nil
}

// Compute prices the given lines.
func (p TaxPolicy) Compute(lines []LineItem) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(p.Rate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
