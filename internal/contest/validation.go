package contest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/prediction"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// normalize fills defaults and canonical forms in place
func normalize(c *domain.Contest) {
	c.Name = strings.TrimSpace(c.Name)
	c.Category = utils.NormalizeCategory(c.Category)
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = domain.DefaultCurrency
	}
	c.ResultSymbol = strings.ToUpper(strings.TrimSpace(c.ResultSymbol))
	if c.PricingType == "" {
		c.PricingType = domain.PricingFlat
	}
}

func validateContest(c *domain.Contest) error {
	if c.Name == "" || len(c.Name) > MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidInput, MaxNameLength)
	}
	if c.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if !utils.IsCurrencyCode(c.Currency) {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, c.Currency)
	}
	if c.PrizePool.IsNegative() {
		return fmt.Errorf("%w: prize pool must not be negative", domain.ErrInvalidInput)
	}
	if c.StartTime != nil && c.EndTime != nil && !c.EndTime.After(*c.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	if err := validatePlaces(c.PlacePercentages); err != nil {
		return err
	}
	if err := prediction.ValidateRange(c.RangeConfig()); err != nil {
		return err
	}
	return prediction.ValidatePolicy(c.PricingPolicy(), c.Increment)
}

// validatePlaces accepts any table of distinct places >= 1 with percentages in 0..100.
// The table need not sum to 100.
func validatePlaces(places domain.PlacePercentages) error {
	if len(places) == 0 {
		return fmt.Errorf("%w: at least one prize place is required", domain.ErrInvalidInput)
	}
	if len(places) > MaxPlaces {
		return fmt.Errorf("%w: at most %d prize places", domain.ErrInvalidInput, MaxPlaces)
	}
	hundred := decimal.NewFromInt(maxPercentage)
	seen := make(map[int]bool, len(places))
	for _, p := range places {
		if p.Place < 1 {
			return fmt.Errorf("%w: place must be 1 or greater, got %d", domain.ErrInvalidInput, p.Place)
		}
		if seen[p.Place] {
			return fmt.Errorf("%w: place %d listed twice", domain.ErrInvalidInput, p.Place)
		}
		seen[p.Place] = true
		if p.Percentage.IsNegative() || p.Percentage.GreaterThan(hundred) {
			return fmt.Errorf("%w: place %d percentage must be within 0-100", domain.ErrInvalidInput, p.Place)
		}
	}
	return nil
}
