package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContestStatus represents the lifecycle state of a contest
type ContestStatus string

const (
	ContestStatusDraft     ContestStatus = "Draft"
	ContestStatusActive    ContestStatus = "Active"
	ContestStatusCompleted ContestStatus = "Completed"
	ContestStatusDeleted   ContestStatus = "Deleted"
)

// PricingType selects how generated prediction slots are priced
type PricingType string

const (
	PricingFlat             PricingType = "flat"
	PricingTiered           PricingType = "tiered"
	PricingTieredPercentage PricingType = "tieredPercentage"
)

// DefaultCurrency is used when a contest does not declare one
const DefaultCurrency = "USD"

// PricingTier is one price band over a closed value range.
// Tiered contests use PricePerPrediction, tieredPercentage contests use Percentage
// (a percentage of the prize pool charged per entry).
type PricingTier struct {
	Min                decimal.Decimal `json:"min"`
	Max                decimal.Decimal `json:"max"`
	PricePerPrediction decimal.Decimal `json:"price_per_prediction"`
	Percentage         decimal.Decimal `json:"percentage"`
}

// Contains reports whether value lies inside the band
func (t PricingTier) Contains(value decimal.Decimal) bool {
	return value.GreaterThanOrEqual(t.Min) && value.LessThanOrEqual(t.Max)
}

// GeneratedPrediction is one discrete, priced, capacity-bounded slot a user can buy into
type GeneratedPrediction struct {
	TierID         string          `json:"tier_id"`
	Value          decimal.Decimal `json:"value"`
	Price          decimal.Decimal `json:"price"`
	CurrentEntries int             `json:"current_entries"`
	MaxEntries     int             `json:"max_entries"`
	IsAvailable    bool            `json:"is_available"`
}

// Refresh recomputes IsAvailable from the entry counters
func (p *GeneratedPrediction) Refresh() {
	p.IsAvailable = p.CurrentEntries < p.MaxEntries
}

// PlacePercentage maps one place rank to its share of the prize pool
type PlacePercentage struct {
	Place      int             `json:"place" validate:"min=1"`
	Percentage decimal.Decimal `json:"percentage"`
}

// PlacePercentages is the prize table of a contest, kept sorted by place
type PlacePercentages []PlacePercentage

// Sorted returns a copy ordered by ascending place
func (p PlacePercentages) Sorted() PlacePercentages {
	out := make(PlacePercentages, len(p))
	copy(out, p)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Place < out[j].Place })
	return out
}

// Lookup returns the percentage configured for a place
func (p PlacePercentages) Lookup(place int) (decimal.Decimal, bool) {
	for _, pp := range p {
		if pp.Place == place {
			return pp.Percentage, true
		}
	}
	return decimal.Zero, false
}

// Winner is one assigned place in a settled contest
type Winner struct {
	Place           int             `json:"place"`
	OrderID         uuid.UUID       `json:"order_id"`
	UserID          string          `json:"user_id"`
	PredictionValue decimal.Decimal `json:"prediction_value"`
	Difference      decimal.Decimal `json:"difference"`
	Percentage      decimal.Decimal `json:"percentage"`
	PrizeAmount     decimal.Decimal `json:"prize_amount"`
}

// ContestResults is written once, by settlement
type ContestResults struct {
	ActualValue      *decimal.Decimal `json:"actual_value,omitempty"`
	WinningOrderIDs  []uuid.UUID      `json:"winning_predictions"`
	Winners          []Winner         `json:"winners"`
	PrizeDistributed bool             `json:"prize_distributed"`
	EndedAt          *time.Time       `json:"ended_at,omitempty"`
}

// Contest is a prediction contest with its generated slots and prize table
type Contest struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Description  string        `json:"description"`
	Unit         string        `json:"unit"`
	Currency     string        `json:"currency"`
	ResultSymbol string        `json:"result_symbol,omitempty"`
	Status       ContestStatus `json:"status"`

	MinPrediction                decimal.Decimal `json:"min_prediction"`
	MaxPrediction                decimal.Decimal `json:"max_prediction"`
	Increment                    decimal.Decimal `json:"increment"`
	NumberOfEntriesPerPrediction int             `json:"number_of_entries_per_prediction"`

	PricingType PricingType     `json:"pricing_type"`
	FlatPrice   decimal.Decimal `json:"flat_price"`
	Tiers       []PricingTier   `json:"tiers,omitempty"`

	GeneratedPredictions []GeneratedPrediction `json:"generated_predictions"`

	PrizePool        decimal.Decimal  `json:"prize_pool"`
	PlacePercentages PlacePercentages `json:"place_percentages"`
	TotalEntries     int              `json:"total_entries"`

	StartTime *time.Time     `json:"start_time,omitempty"`
	EndTime   *time.Time     `json:"end_time,omitempty"`
	Results   ContestResults `json:"results"`
	IsDeleted bool           `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FindPrediction returns the generated slot with the given tier id
func (c *Contest) FindPrediction(tierID string) (*GeneratedPrediction, bool) {
	for i := range c.GeneratedPredictions {
		if c.GeneratedPredictions[i].TierID == tierID {
			return &c.GeneratedPredictions[i], true
		}
	}
	return nil, false
}

// CanRegenerate reports whether the slot list may be replaced
func (c *Contest) CanRegenerate() bool {
	switch c.Status {
	case ContestStatusDraft:
		return true
	case ContestStatusActive:
		return c.TotalEntries == 0
	default:
		return false
	}
}

// IsSettleable reports whether settlement may run against the contest
func (c *Contest) IsSettleable() bool {
	return !c.IsDeleted &&
		c.Status != ContestStatusCompleted &&
		c.Status != ContestStatusDeleted &&
		!c.Results.PrizeDistributed
}

// HasEnded reports whether the contest end time has passed
func (c *Contest) HasEnded(now time.Time) bool {
	return c.EndTime != nil && !now.Before(*c.EndTime)
}
