package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	assert.True(t, PercentOf(decimal.NewFromInt(1000), decimal.NewFromInt(70)).Equal(decimal.NewFromInt(700)))
	assert.True(t, PercentOf(decimal.NewFromInt(1000), decimal.Zero).IsZero())
	assert.True(t, PercentOf(decimal.RequireFromString("99.99"), decimal.RequireFromString("12.5")).
		Equal(decimal.RequireFromString("12.49875")))
}

func TestMinDecimal(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(5)
	assert.True(t, MinDecimal(a, b).Equal(a))
	assert.True(t, MinDecimal(b, a).Equal(a))
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero uses default", 0, 50},
		{"negative uses default", -1, 50},
		{"within bounds", 20, 20},
		{"above max is clamped", 9999, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampLimit(tt.requested, 50, 500))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234.50 USD", FormatAmount(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "0.00 EUR", FormatAmount(decimal.Zero, "eur"))
	assert.Equal(t, "7.00 PTS", FormatAmount(decimal.NewFromInt(7), "PTS"))
}

func TestIsCurrencyCode(t *testing.T) {
	assert.True(t, IsCurrencyCode("USD"))
	assert.False(t, IsCurrencyCode("NOPE"))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "crypto", NormalizeCategory("  Crypto "))
	assert.Equal(t, "stocks", NormalizeCategory("STOCKS"))
}
