package settlement

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// Candidate is one scored prediction taken from an eligible order
type Candidate struct {
	OrderID    uuid.UUID
	UserID     string
	Value      decimal.Decimal
	Price      decimal.Decimal
	Difference decimal.Decimal
}

// Outcome is the pure result of ranking a contest's orders against the actual value
type Outcome struct {
	ActualValue     decimal.Decimal
	Winners         []domain.Winner
	WinningOrderIDs []uuid.UUID
	Orders          []domain.OrderSettlement
}

// TotalAwarded sums the prize amounts of every assigned place
func (o Outcome) TotalAwarded() decimal.Decimal {
	total := decimal.Zero
	for _, w := range o.Winners {
		total = total.Add(w.PrizeAmount)
	}
	return total
}

// LedgerCredits returns one credit per winner with a positive prize
func (o Outcome) LedgerCredits(contestID uuid.UUID) []domain.LedgerEntry {
	credits := make([]domain.LedgerEntry, 0, len(o.Winners))
	for _, w := range o.Winners {
		if !w.PrizeAmount.IsPositive() {
			continue
		}
		credits = append(credits, domain.LedgerEntry{
			UserID:    w.UserID,
			Amount:    w.PrizeAmount,
			Reason:    domain.LedgerReasonPrize,
			Reference: contestID.String() + "/" + w.OrderID.String(),
		})
	}
	return credits
}

// CalculatePrizeForPlace returns pool * percentage(place) / 100, or zero for an unmapped place
func CalculatePrizeForPlace(pool decimal.Decimal, percentages domain.PlacePercentages, place int) decimal.Decimal {
	pct, ok := percentages.Lookup(place)
	if !ok {
		return decimal.Zero
	}
	return utils.PercentOf(pool, pct)
}

// DetermineWinners ranks every prediction of the eligible orders by distance to the
// actual value and assigns places from the contest's prize table.
//
// Ties on distance go to the lexicographically smaller order id. An order wins at most
// one place; places beyond the number of distinct orders stay unassigned.
func DetermineWinners(contest *domain.Contest, orders []domain.Order, actual decimal.Decimal) Outcome {
	outcome := Outcome{
		ActualValue:     actual,
		Winners:         []domain.Winner{},
		WinningOrderIDs: []uuid.UUID{},
	}

	eligible := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsEligible() {
			eligible = append(eligible, o)
		}
	}
	if len(eligible) == 0 {
		return outcome
	}

	candidates := rankCandidates(eligible, actual)

	won := make(map[uuid.UUID]domain.Winner)
	next := 0
	seenPlace := make(map[int]bool)
	for _, pp := range contest.PlacePercentages.Sorted() {
		if seenPlace[pp.Place] {
			continue
		}
		seenPlace[pp.Place] = true

		for next < len(candidates) {
			if _, taken := won[candidates[next].OrderID]; !taken {
				break
			}
			next++
		}
		if next >= len(candidates) {
			break
		}

		c := candidates[next]
		next++
		w := domain.Winner{
			Place:           pp.Place,
			OrderID:         c.OrderID,
			UserID:          c.UserID,
			PredictionValue: c.Value,
			Difference:      c.Difference,
			Percentage:      pp.Percentage,
			PrizeAmount:     utils.PercentOf(contest.PrizePool, pp.Percentage),
		}
		won[c.OrderID] = w
		outcome.Winners = append(outcome.Winners, w)
		outcome.WinningOrderIDs = append(outcome.WinningOrderIDs, c.OrderID)
	}

	best := bestCandidatePerOrder(candidates)
	outcome.Orders = make([]domain.OrderSettlement, 0, len(eligible))
	for _, o := range eligible {
		s := domain.OrderSettlement{OrderID: o.ID, UserID: o.UserID, Status: domain.OrderStatusLost}
		if w, ok := won[o.ID]; ok {
			s.Status = domain.OrderStatusWon
			s.Result = domain.OrderResult{
				Place:           w.Place,
				PredictionValue: w.PredictionValue,
				ActualValue:     actual,
				Difference:      w.Difference,
				PrizeAmount:     w.PrizeAmount,
				Percentage:      w.Percentage,
			}
		} else if c, ok := best[o.ID]; ok {
			s.Result = domain.OrderResult{
				PredictionValue: c.Value,
				ActualValue:     actual,
				Difference:      c.Difference,
				PrizeAmount:     decimal.Zero,
				Percentage:      decimal.Zero,
			}
		} else {
			s.Result = domain.OrderResult{ActualValue: actual}
		}
		outcome.Orders = append(outcome.Orders, s)
	}

	return outcome
}

// rankCandidates flattens slot and custom predictions and sorts them by
// difference, then by order id. Predictions of the same order keep their input order.
func rankCandidates(orders []domain.Order, actual decimal.Decimal) []Candidate {
	var candidates []Candidate
	for _, o := range orders {
		for _, p := range o.AllPredictions() {
			candidates = append(candidates, Candidate{
				OrderID:    o.ID,
				UserID:     o.UserID,
				Value:      p.Value,
				Price:      p.Price,
				Difference: p.Value.Sub(actual).Abs(),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if cmp := candidates[i].Difference.Cmp(candidates[j].Difference); cmp != 0 {
			return cmp < 0
		}
		return candidates[i].OrderID.String() < candidates[j].OrderID.String()
	})
	return candidates
}

func bestCandidatePerOrder(ranked []Candidate) map[uuid.UUID]Candidate {
	best := make(map[uuid.UUID]Candidate)
	for _, c := range ranked {
		if _, ok := best[c.OrderID]; !ok {
			best[c.OrderID] = c
		}
	}
	return best
}
