package domain

import "github.com/shopspring/decimal"

// RangeConfig describes the numeric space users predict over
type RangeConfig struct {
	Min                  decimal.Decimal `json:"min_prediction"`
	Max                  decimal.Decimal `json:"max_prediction"`
	Increment            decimal.Decimal `json:"increment"`
	EntriesPerPrediction int             `json:"number_of_entries_per_prediction"`
}

// PricingPolicy prices each generated slot
type PricingPolicy struct {
	Type      PricingType     `json:"pricing_type"`
	FlatPrice decimal.Decimal `json:"flat_price"`
	Tiers     []PricingTier   `json:"tiers,omitempty"`
	PrizePool decimal.Decimal `json:"prize_pool"`
}

// RangeConfig returns the contest's prediction range
func (c *Contest) RangeConfig() RangeConfig {
	return RangeConfig{
		Min:                  c.MinPrediction,
		Max:                  c.MaxPrediction,
		Increment:            c.Increment,
		EntriesPerPrediction: c.NumberOfEntriesPerPrediction,
	}
}

// PricingPolicy returns the contest's slot pricing
func (c *Contest) PricingPolicy() PricingPolicy {
	return PricingPolicy{
		Type:      c.PricingType,
		FlatPrice: c.FlatPrice,
		Tiers:     c.Tiers,
		PrizePool: c.PrizePool,
	}
}

// PriceFor resolves the price of an arbitrary value under the policy.
// The second return is false when no band covers the value.
func (p PricingPolicy) PriceFor(value decimal.Decimal) (decimal.Decimal, bool) {
	switch p.Type {
	case PricingFlat, "":
		return p.FlatPrice, true
	case PricingTiered:
		for _, t := range p.Tiers {
			if t.Contains(value) {
				return t.PricePerPrediction, true
			}
		}
	case PricingTieredPercentage:
		for _, t := range p.Tiers {
			if t.Contains(value) {
				return p.PrizePool.Mul(t.Percentage).Div(decimal.NewFromInt(100)), true
			}
		}
	}
	return decimal.Zero, false
}
