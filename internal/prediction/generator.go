package prediction

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

// Result is the output of one generation run.
// Skipped holds the values that no pricing band covered.
type Result struct {
	Predictions []domain.GeneratedPrediction
	Skipped     []decimal.Decimal
}

// Empty reports whether no slot could be priced. Callers must not publish an empty result.
func (r Result) Empty() bool {
	return len(r.Predictions) == 0
}

// Generate expands a range config into priced prediction slots.
//
// Values run min, min+inc, ... up to max. When (max-min) is not a multiple of the
// increment, max itself is appended as the final slot. Slots are numbered by their
// position in that sequence, so a skipped value leaves a gap in the tier ids.
func Generate(cfg domain.RangeConfig, policy domain.PricingPolicy) (Result, error) {
	if err := ValidateRange(cfg); err != nil {
		return Result{}, err
	}
	if err := ValidatePolicy(policy, cfg.Increment); err != nil {
		return Result{}, err
	}

	values := Values(cfg)
	result := Result{Predictions: make([]domain.GeneratedPrediction, 0, len(values))}

	for i, v := range values {
		price, ok := policy.PriceFor(v)
		if !ok {
			result.Skipped = append(result.Skipped, v)
			continue
		}
		result.Predictions = append(result.Predictions, domain.GeneratedPrediction{
			TierID:         TierID(i + 1),
			Value:          v,
			Price:          price,
			CurrentEntries: 0,
			MaxEntries:     cfg.EntriesPerPrediction,
			IsAvailable:    true,
		})
	}

	return result, nil
}

// Values returns the stepped value sequence of a validated range
func Values(cfg domain.RangeConfig) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, slotCount(cfg))
	v := cfg.Min
	for v.LessThanOrEqual(cfg.Max) {
		values = append(values, v)
		v = v.Add(cfg.Increment)
	}
	if !values[len(values)-1].Equal(cfg.Max) {
		values = append(values, cfg.Max)
	}
	return values
}

// TierID builds the synthetic identifier of the n-th slot (1-based)
func TierID(n int) string {
	return domain.TierIDPrefix + strconv.Itoa(n)
}

// ValidateRange checks the numeric range before any slot is produced
func ValidateRange(cfg domain.RangeConfig) error {
	if cfg.Min.GreaterThanOrEqual(cfg.Max) {
		return fmt.Errorf("%w: min %s must be below max %s", domain.ErrInvalidRange, cfg.Min, cfg.Max)
	}
	if !cfg.Increment.IsPositive() {
		return fmt.Errorf("%w: increment must be positive, got %s", domain.ErrInvalidRange, cfg.Increment)
	}
	if cfg.EntriesPerPrediction <= 0 {
		return fmt.Errorf("%w: entries per prediction must be positive, got %d", domain.ErrInvalidRange, cfg.EntriesPerPrediction)
	}
	if slotCount(cfg) > MaxSlots {
		return fmt.Errorf("%w: range produces more than %d slots", domain.ErrInvalidRange, MaxSlots)
	}
	return nil
}

// ValidatePolicy checks the pricing bands. Bands must be ordered, non-overlapping and
// non-negative, and consecutive bands may not leave a gap wider than one increment.
func ValidatePolicy(policy domain.PricingPolicy, increment decimal.Decimal) error {
	switch policy.Type {
	case domain.PricingFlat, "":
		if policy.FlatPrice.IsNegative() {
			return fmt.Errorf("%w: flat price must not be negative", domain.ErrInvalidPricingTier)
		}
		return nil
	case domain.PricingTiered, domain.PricingTieredPercentage:
	default:
		return fmt.Errorf("%w: unknown pricing type %q", domain.ErrInvalidPricingTier, policy.Type)
	}

	if len(policy.Tiers) == 0 {
		return fmt.Errorf("%w: %s pricing requires at least one band", domain.ErrInvalidPricingTier, policy.Type)
	}
	if policy.Type == domain.PricingTieredPercentage && policy.PrizePool.IsNegative() {
		return fmt.Errorf("%w: prize pool must not be negative", domain.ErrInvalidPricingTier)
	}

	hundred := decimal.NewFromInt(percentBase)
	for i, t := range policy.Tiers {
		if t.Min.GreaterThan(t.Max) {
			return fmt.Errorf("%w: band %d min %s exceeds max %s", domain.ErrInvalidPricingTier, i, t.Min, t.Max)
		}
		switch policy.Type {
		case domain.PricingTiered:
			if t.PricePerPrediction.IsNegative() {
				return fmt.Errorf("%w: band %d has a negative price", domain.ErrInvalidPricingTier, i)
			}
		case domain.PricingTieredPercentage:
			if t.Percentage.IsNegative() || t.Percentage.GreaterThan(hundred) {
				return fmt.Errorf("%w: band %d percentage must be within 0-100", domain.ErrInvalidPricingTier, i)
			}
		}
		if i == 0 {
			continue
		}
		prev := policy.Tiers[i-1]
		if !t.Min.GreaterThan(prev.Max) {
			return fmt.Errorf("%w: band %d overlaps or precedes band %d", domain.ErrInvalidPricingTier, i, i-1)
		}
		if t.Min.Sub(prev.Max).GreaterThan(increment) {
			return fmt.Errorf("%w: gap between band %d and band %d exceeds the increment", domain.ErrInvalidPricingTier, i-1, i)
		}
	}
	return nil
}

// slotCount saturates at MaxSlots+1; the step count is compared as a decimal
// because IntPart wraps once it no longer fits in an int64.
func slotCount(cfg domain.RangeConfig) int64 {
	steps := cfg.Max.Sub(cfg.Min).Div(cfg.Increment).Ceil()
	if steps.GreaterThanOrEqual(decimal.NewFromInt(MaxSlots)) {
		return MaxSlots + 1
	}
	return steps.IntPart() + 1
}
