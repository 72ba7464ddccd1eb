package valueobjects

import (
	"fmt"
	"strings"

	"github.com/binna/binna-backend/errors"
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code.
type Currency string

const (
	SAR Currency = "SAR"
	USD Currency = "USD"
	AED Currency = "AED"
)

var validCurrencies = map[Currency]bool{
	SAR: true,
	USD: true,
	AED: true,
}

// ParseCurrency upper-cases and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !validCurrencies[c] {
		return "", errors.ValidationFailed("unsupported currency", fmt.Sprintf("currency %s is not supported", code))
	}
	return c, nil
}

// AmountRule constrains a money amount entered by a client.
type AmountRule int

const (
	// NonNegative admits zero, e.g. an unset budget.
	NonNegative AmountRule = iota
	// Positive is for prices and expenses.
	Positive
)

// CheckAmount validates sign and scale. field names the amount in the error.
func CheckAmount(field string, amount decimal.Decimal, rule AmountRule) error {
	switch {
	case rule == Positive && !amount.IsPositive():
		return errors.ValidationFailed(field+" must be positive", amount.String())
	case amount.IsNegative():
		return errors.ValidationFailed(field+" must not be negative", amount.String())
	case !amount.Equal(amount.Round(2)):
		return errors.ValidationFailed(field+" cannot have more than 2 decimal places", amount.String())
	}
	return nil
}
