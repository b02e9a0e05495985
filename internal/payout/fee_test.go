package payout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculatePayoutFee(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		method domain.PayoutMethod
		want   string
	}{
		{"instant", "1000", domain.PayoutMethodInstant, "15.5"},
		{"standard", "1000", domain.PayoutMethodStandard, "2.5"},
		{"standard cap", "10000", domain.PayoutMethodStandard, "5"},
		{"standard at cap boundary", "2000", domain.PayoutMethodStandard, "5"},
		{"instant small", "10", domain.PayoutMethodInstant, "0.65"},
		{"zero amount instant", "0", domain.PayoutMethodInstant, "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := CalculatePayoutFee(d(tt.amount), tt.method)
			require.NoError(t, err)
			assert.True(t, fee.Equal(d(tt.want)), "got %s want %s", fee, tt.want)
		})
	}
}

func TestCalculatePayoutFee_UnknownMethod(t *testing.T) {
	_, err := CalculatePayoutFee(d("100"), domain.PayoutMethod("wire"))
	assert.ErrorIs(t, err, domain.ErrInvalidPayoutMethod)
}

func TestQuoteFee(t *testing.T) {
	q, err := QuoteFee(d("1000"), domain.PayoutMethodInstant, "")
	require.NoError(t, err)

	assert.True(t, q.Fee.Equal(d("15.5")))
	assert.True(t, q.NetAmount.Equal(d("984.5")))
	assert.Equal(t, domain.DefaultCurrency, q.Currency)
	assert.Equal(t, "984.50 USD", q.NetDisplay)
}

func TestQuoteFee_RoundsFeeUpToCents(t *testing.T) {
	// 10.01 * 0.015 + 0.5 = 0.65015
	q, err := QuoteFee(d("10.01"), domain.PayoutMethodInstant, "USD")
	require.NoError(t, err)

	assert.True(t, q.Fee.Equal(d("0.66")))
	assert.True(t, q.NetAmount.Equal(d("9.35")))
}

func TestQuoteFee_Rejections(t *testing.T) {
	_, err := QuoteFee(d("0"), domain.PayoutMethodStandard, "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = QuoteFee(d("0.5"), domain.PayoutMethodInstant, "USD")
	assert.ErrorIs(t, err, domain.ErrPayoutBelowMinimum)

	_, err = QuoteFee(d("100"), domain.PayoutMethod(""), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidPayoutMethod)
}
