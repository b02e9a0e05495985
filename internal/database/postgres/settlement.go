package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

const (
	listEligibleOrdersSQL = `SELECT ` + orderColumns + ` FROM orders
		WHERE contest_id = $1 AND status <> 'cancelled' AND NOT is_deleted
		ORDER BY order_id`

	// prize_distributed is the at-most-once latch
	markContestSettledSQL = `
		UPDATE contests SET
			prize_distributed = TRUE,
			status = 'Completed',
			actual_value = $2::numeric,
			winning_order_ids = $3,
			winners = $4,
			ended_at = $5,
			updated_at = NOW()
		WHERE contest_id = $1
		  AND prize_distributed = FALSE
		  AND NOT is_deleted
		  AND status NOT IN ('Completed', 'Deleted')`

	updateOrderResultSQL = `
		UPDATE orders SET status = $2, result = $3, updated_at = NOW()
		WHERE order_id = $1 AND status <> 'cancelled' AND NOT is_deleted`
)

// SettlementRepository implements repository.Settlement for PostgreSQL
type SettlementRepository struct {
	db *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository
func NewSettlementRepository(db *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{db: db}
}

var _ repository.Settlement = (*SettlementRepository)(nil)

// GetContest returns the contest to settle, or (nil, nil) when it does not exist
func (r *SettlementRepository) GetContest(ctx context.Context, id uuid.UUID) (*domain.Contest, error) {
	return getContest(ctx, r.db, id)
}

// ListEligibleOrders returns the orders taking part in settlement, ordered by id
func (r *SettlementRepository) ListEligibleOrders(ctx context.Context, contestID uuid.UUID) ([]domain.Order, error) {
	return queryOrders(ctx, r.db, listEligibleOrdersSQL, contestID)
}

// BeginSettlementTx starts the transaction holding the latch, order results and credits
func (r *SettlementRepository) BeginSettlementTx(ctx context.Context) (repository.SettlementTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &settlementTx{txWrapper: txWrapper{tx: tx}}, nil
}

type settlementTx struct {
	txWrapper
}

func (t *settlementTx) MarkContestSettled(ctx context.Context, contestID uuid.UUID, results domain.ContestResults) (int64, error) {
	winningIDs := results.WinningOrderIDs
	if winningIDs == nil {
		winningIDs = []uuid.UUID{}
	}
	ids, err := marshalJSON("winning_order_ids", winningIDs)
	if err != nil {
		return 0, err
	}
	winners := results.Winners
	if winners == nil {
		winners = []domain.Winner{}
	}
	winnersJSON, err := marshalJSON("winners", winners)
	if err != nil {
		return 0, err
	}

	tag, err := t.tx.Exec(ctx, markContestSettledSQL,
		contestID, nullableNumericParam(results.ActualValue), ids, winnersJSON, results.EndedAt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateContest, err)
	}
	return tag.RowsAffected(), nil
}

func (t *settlementTx) UpdateOrderResults(ctx context.Context, settlements []domain.OrderSettlement) error {
	if len(settlements) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range settlements {
		result, err := marshalJSON("result", s.Result)
		if err != nil {
			return err
		}
		batch.Queue(updateOrderResultSQL, s.OrderID, string(s.Status), result)
	}

	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, s := range settlements {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToWriteResults, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("%s: order %s is gone or cancelled", ErrMsgFailedToWriteResults, s.OrderID)
		}
	}
	return nil
}

func (t *settlementTx) CreditLedger(ctx context.Context, entries []domain.LedgerEntry) error {
	for _, e := range entries {
		if err := creditLedger(ctx, t.tx, e); err != nil {
			return err
		}
	}
	return nil
}
