package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

// Settlement defines the data access required to settle a contest
type Settlement interface {
	GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error)

	// ListEligibleOrders returns the contest's orders with
	// status <> 'cancelled' AND is_deleted = false, ordered by id.
	ListEligibleOrders(ctx context.Context, contestID uuid.UUID) ([]domain.Order, error)

	BeginSettlementTx(ctx context.Context) (SettlementTx, error)
}

// SettlementTx applies the settlement latch, order results and prize credits atomically
type SettlementTx interface {
	Tx // Commit, Rollback

	// MarkContestSettled flips prize_distributed false->true, sets status Completed and
	// stores the results. Zero rows means another settlement already won.
	MarkContestSettled(ctx context.Context, contestID uuid.UUID, results domain.ContestResults) (int64, error)

	UpdateOrderResults(ctx context.Context, settlements []domain.OrderSettlement) error
	CreditLedger(ctx context.Context, entries []domain.LedgerEntry) error
}
