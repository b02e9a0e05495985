package settlement

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func oid(suffix string) uuid.UUID {
	return uuid.MustParse("00000000-0000-0000-0000-" + suffix)
}

func order(id uuid.UUID, user string, values ...string) domain.Order {
	o := domain.Order{ID: id, UserID: user, Status: domain.OrderStatusProcessing}
	for _, v := range values {
		o.Predictions = append(o.Predictions, domain.OrderPrediction{Value: d(v), Price: d("1")})
	}
	return o
}

func contestWith(pool string, places ...domain.PlacePercentage) *domain.Contest {
	return &domain.Contest{ID: uuid.New(), PrizePool: d(pool), PlacePercentages: places}
}

func place(p int, pct string) domain.PlacePercentage {
	return domain.PlacePercentage{Place: p, Percentage: d(pct)}
}

var (
	idA = oid("00000000000a")
	idB = oid("00000000000b")
	idC = oid("00000000000c")
)

func TestDetermineWinners_Scenario(t *testing.T) {
	c := contestWith("1000", place(1, "70"), place(2, "30"))
	orders := []domain.Order{
		order(idA, "alice", "118200"),
		order(idB, "bob", "118600"),
		order(idC, "carol", "119000"),
	}

	out := DetermineWinners(c, orders, d("118500"))

	require.Len(t, out.Winners, 2)
	assert.Equal(t, 1, out.Winners[0].Place)
	assert.Equal(t, idB, out.Winners[0].OrderID)
	assert.True(t, out.Winners[0].Difference.Equal(d("100")))
	assert.True(t, out.Winners[0].PrizeAmount.Equal(d("700")))

	assert.Equal(t, 2, out.Winners[1].Place)
	assert.Equal(t, idA, out.Winners[1].OrderID)
	assert.True(t, out.Winners[1].Difference.Equal(d("300")))
	assert.True(t, out.Winners[1].PrizeAmount.Equal(d("300")))

	assert.Equal(t, []uuid.UUID{idB, idA}, out.WinningOrderIDs)

	statuses := map[uuid.UUID]domain.OrderSettlement{}
	for _, s := range out.Orders {
		statuses[s.OrderID] = s
	}
	assert.Equal(t, domain.OrderStatusWon, statuses[idA].Status)
	assert.Equal(t, domain.OrderStatusWon, statuses[idB].Status)
	assert.Equal(t, domain.OrderStatusLost, statuses[idC].Status)
	assert.True(t, statuses[idC].Result.Difference.Equal(d("500")))
	assert.True(t, statuses[idC].Result.PrizeAmount.IsZero())
	assert.Equal(t, 0, statuses[idC].Result.Place)
	assert.True(t, statuses[idC].Result.ActualValue.Equal(d("118500")))
}

func TestDetermineWinners_Deterministic(t *testing.T) {
	c := contestWith("500", place(1, "50"), place(2, "25"), place(3, "10"))
	orders := []domain.Order{
		order(idC, "carol", "10", "30"),
		order(idA, "alice", "20"),
		order(idB, "bob", "20", "25"),
	}

	first := DetermineWinners(c, orders, d("21"))
	second := DetermineWinners(c, orders, d("21"))

	assert.Equal(t, first.Winners, second.Winners)
	assert.Equal(t, first.WinningOrderIDs, second.WinningOrderIDs)
	assert.Equal(t, first.Orders, second.Orders)
}

func TestDetermineWinners_TieBreakByOrderID(t *testing.T) {
	c := contestWith("100", place(1, "60"), place(2, "40"))
	// both 5 away; B listed first to prove input order does not matter
	orders := []domain.Order{
		order(idB, "bob", "105"),
		order(idA, "alice", "95"),
	}

	out := DetermineWinners(c, orders, d("100"))

	require.Len(t, out.Winners, 2)
	assert.Equal(t, idA, out.Winners[0].OrderID)
	assert.Equal(t, idB, out.Winners[1].OrderID)
}

func TestDetermineWinners_OnePlacePerOrder(t *testing.T) {
	c := contestWith("100", place(1, "50"), place(2, "30"), place(3, "20"))
	orders := []domain.Order{
		order(idA, "alice", "100", "101", "102"),
		order(idB, "bob", "110"),
	}

	out := DetermineWinners(c, orders, d("100"))

	require.Len(t, out.Winners, 2, "third place stays unassigned")
	seen := map[uuid.UUID]int{}
	for _, w := range out.Winners {
		seen[w.OrderID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "order %s placed more than once", id)
	}
	assert.Equal(t, idA, out.Winners[0].OrderID)
	assert.True(t, out.Winners[0].PredictionValue.Equal(d("100")))
	assert.Equal(t, idB, out.Winners[1].OrderID)
	assert.True(t, out.TotalAwarded().Equal(d("80")))
}

func TestDetermineWinners_CustomPredictionsScored(t *testing.T) {
	c := contestWith("200", place(1, "100"))
	withCustom := order(idA, "alice", "150")
	withCustom.CustomPredictions = []domain.OrderPrediction{{Value: d("199.5"), Price: d("2")}}
	orders := []domain.Order{withCustom, order(idB, "bob", "190")}

	out := DetermineWinners(c, orders, d("200"))

	require.Len(t, out.Winners, 1)
	assert.Equal(t, idA, out.Winners[0].OrderID)
	assert.True(t, out.Winners[0].PredictionValue.Equal(d("199.5")))
	assert.True(t, out.Winners[0].PrizeAmount.Equal(d("200")))
}

func TestDetermineWinners_IneligibleOrdersIgnored(t *testing.T) {
	c := contestWith("100", place(1, "100"))
	cancelled := order(idA, "alice", "100")
	cancelled.Status = domain.OrderStatusCancelled
	deleted := order(idB, "bob", "100")
	deleted.IsDeleted = true
	orders := []domain.Order{cancelled, deleted, order(idC, "carol", "500")}

	out := DetermineWinners(c, orders, d("100"))

	require.Len(t, out.Winners, 1)
	assert.Equal(t, idC, out.Winners[0].OrderID)
	require.Len(t, out.Orders, 1, "ineligible orders receive no status")
}

func TestDetermineWinners_ZeroOrders(t *testing.T) {
	c := contestWith("100", place(1, "100"))

	out := DetermineWinners(c, nil, d("42"))

	assert.Empty(t, out.Winners)
	assert.NotNil(t, out.WinningOrderIDs)
	assert.Empty(t, out.WinningOrderIDs)
	assert.Empty(t, out.Orders)
	assert.True(t, out.TotalAwarded().IsZero())
}

func TestDetermineWinners_PlacesSortedAndDeduplicated(t *testing.T) {
	c := contestWith("100", place(2, "20"), place(1, "70"), place(2, "99"))
	orders := []domain.Order{order(idA, "alice", "1"), order(idB, "bob", "2"), order(idC, "carol", "3")}

	out := DetermineWinners(c, orders, d("0"))

	require.Len(t, out.Winners, 2)
	assert.Equal(t, 1, out.Winners[0].Place)
	assert.Equal(t, 2, out.Winners[1].Place)
	assert.True(t, out.Winners[1].PrizeAmount.Equal(d("20")))
}

func TestDetermineWinners_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		places := []domain.PlacePercentage{}
		remaining := 100
		for p := 1; p <= 1+rng.Intn(5) && remaining > 0; p++ {
			pct := rng.Intn(remaining + 1)
			remaining -= pct
			places = append(places, place(p, decimal.NewFromInt(int64(pct)).String()))
		}
		c := contestWith("1234.56", places...)

		var orders []domain.Order
		for j := 0; j < rng.Intn(8); j++ {
			orders = append(orders, order(uuid.New(), "u", decimal.NewFromInt(int64(rng.Intn(1000))).String()))
		}

		out := DetermineWinners(c, orders, d("500"))

		assert.True(t, out.TotalAwarded().LessThanOrEqual(c.PrizePool), "run %d awarded %s", i, out.TotalAwarded())
		assert.LessOrEqual(t, len(out.Winners), len(orders))
	}
}

func TestDetermineWinners_FullTableAwardsWholePool(t *testing.T) {
	c := contestWith("999.99", place(1, "50"), place(2, "30"), place(3, "20"))
	orders := []domain.Order{order(idA, "a", "1"), order(idB, "b", "2"), order(idC, "c", "3")}

	out := DetermineWinners(c, orders, d("0"))

	assert.True(t, out.TotalAwarded().Equal(c.PrizePool))
}

func TestCalculatePrizeForPlace(t *testing.T) {
	table := domain.PlacePercentages{place(1, "70"), place(2, "30")}

	assert.True(t, CalculatePrizeForPlace(d("1000"), table, 1).Equal(d("700")))
	assert.True(t, CalculatePrizeForPlace(d("1000"), table, 2).Equal(d("300")))
	assert.True(t, CalculatePrizeForPlace(d("1000"), table, 3).IsZero())
	assert.True(t, CalculatePrizeForPlace(d("0"), table, 1).IsZero())
}

func TestOutcome_LedgerCredits(t *testing.T) {
	c := contestWith("100", place(1, "100"), place(2, "0"))
	out := DetermineWinners(c, []domain.Order{order(idA, "alice", "1"), order(idB, "bob", "2")}, d("1"))

	credits := out.LedgerCredits(c.ID)

	require.Len(t, credits, 1, "zero prizes are not credited")
	assert.Equal(t, "alice", credits[0].UserID)
	assert.Equal(t, domain.LedgerReasonPrize, credits[0].Reason)
	assert.True(t, credits[0].Amount.Equal(d("100")))
}
