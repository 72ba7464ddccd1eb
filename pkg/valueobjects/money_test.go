package valueobjects

import (
	"testing"

	"github.com/binna/binna-backend/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		rule    AmountRule
		wantErr string
	}{
		{name: "valid price", amount: "10.99", rule: Positive},
		{name: "trailing zero scale is fine", amount: "10.990", rule: Positive},
		{name: "zero budget", amount: "0", rule: NonNegative},
		{name: "zero price", amount: "0", rule: Positive, wantErr: "must be positive"},
		{name: "negative budget", amount: "-10.99", rule: NonNegative, wantErr: "must not be negative"},
		{name: "too many decimal places", amount: "10.999", rule: Positive, wantErr: "2 decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAmount("amount", decimal.RequireFromString(tt.amount), tt.rule)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ValidationError))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" sar ")
	require.NoError(t, err)
	assert.Equal(t, SAR, c)

	_, err = ParseCurrency("btc")
	assert.Error(t, err)
}
