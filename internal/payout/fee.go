package payout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// CalculatePayoutFee returns the processor fee for withdrawing amount.
//
//	instant:  amount * 1.5% + 0.50
//	standard: amount * 0.25%, capped at 5
func CalculatePayoutFee(amount decimal.Decimal, method domain.PayoutMethod) (decimal.Decimal, error) {
	switch method {
	case domain.PayoutMethodInstant:
		return amount.Mul(instantFeeRate).Add(instantFeeFixed), nil
	case domain.PayoutMethodStandard:
		return utils.MinDecimal(amount.Mul(standardFeeRate), standardFeeCap), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidPayoutMethod, method)
	}
}

// FeeQuote is the fee breakdown shown before a payout is requested
type FeeQuote struct {
	Amount     decimal.Decimal     `json:"amount"`
	Fee        decimal.Decimal     `json:"fee"`
	NetAmount  decimal.Decimal     `json:"net_amount"`
	Method     domain.PayoutMethod `json:"method"`
	Currency   string              `json:"currency"`
	NetDisplay string              `json:"net_display"`
}

// QuoteFee computes the fee and the net amount for a withdrawal.
// The fee is rounded up to cents so the net never overstates what arrives.
func QuoteFee(amount decimal.Decimal, method domain.PayoutMethod, currency string) (*FeeQuote, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	fee, err := CalculatePayoutFee(amount, method)
	if err != nil {
		return nil, err
	}
	fee = fee.RoundCeil(utils.MoneyScale)
	net := amount.Sub(fee)
	if !net.IsPositive() {
		return nil, fmt.Errorf("%w: amount %s, fee %s", domain.ErrPayoutBelowMinimum, amount, fee)
	}

	return &FeeQuote{
		Amount:     amount,
		Fee:        fee,
		NetAmount:  net,
		Method:     method,
		Currency:   currency,
		NetDisplay: utils.FormatAmount(net, currency),
	}, nil
}
