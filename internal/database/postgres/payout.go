package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

const payoutColumns = `payout_id, user_id, amount::text, fee::text, net_amount::text, currency, method,
	destination_card, processor_payout_id, status, failure_reason, created_at, updated_at`

const (
	// (reason, reference) is unique, a replayed entry inserts nothing
	insertLedgerEntrySQL = `
		INSERT INTO ledger_entries (user_id, amount, reason, reference)
		VALUES ($1, $2::numeric, $3, $4)
		ON CONFLICT (reason, reference) DO NOTHING`

	creditAccountSQL = `
		INSERT INTO ledger_accounts (user_id, balance, updated_at)
		VALUES ($1, $2::numeric, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET balance = ledger_accounts.balance + EXCLUDED.balance, updated_at = NOW()`

	debitAccountSQL = `
		UPDATE ledger_accounts SET balance = balance - $2::numeric, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2::numeric`

	getBalanceSQL = `SELECT balance::text FROM ledger_accounts WHERE user_id = $1`

	insertPayoutSQL = `
		INSERT INTO payouts (
			payout_id, user_id, amount, fee, net_amount, currency, method,
			destination_card, processor_payout_id, status, failure_reason, created_at, updated_at
		) VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6, $7, $8, $9, $10, $11, $12, $13)`

	updatePayoutStatusSQL = `
		UPDATE payouts SET status = $2, processor_payout_id = $3, failure_reason = $4, updated_at = NOW()
		WHERE payout_id = $1`

	updatePayoutStatusIfMatchesSQL = updatePayoutStatusSQL + ` AND status = $5`

	markPayoutSubmittedSQL = `
		UPDATE payouts SET status = 'processing', processor_payout_id = $2, updated_at = NOW()
		WHERE payout_id = $1 AND status = 'pending'`

	listUnsubmittedPayoutsSQL = `SELECT ` + payoutColumns + ` FROM payouts
		WHERE status = 'pending' AND processor_payout_id = '' AND updated_at < $1
		ORDER BY created_at
		LIMIT $2`
)

// PayoutRepository implements repository.Payout for PostgreSQL
type PayoutRepository struct {
	db *pgxpool.Pool
}

// NewPayoutRepository creates a new PayoutRepository
func NewPayoutRepository(db *pgxpool.Pool) *PayoutRepository {
	return &PayoutRepository{db: db}
}

var _ repository.Payout = (*PayoutRepository)(nil)

// GetPayout returns the payout, or (nil, nil) when it does not exist
func (r *PayoutRepository) GetPayout(ctx context.Context, id uuid.UUID) (*domain.Payout, error) {
	row := r.db.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE payout_id = $1`, id)
	payout, err := scanPayout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPayout, err)
	}
	return payout, nil
}

// UpdatePayoutStatus stores the processor-reported state of a payout
func (r *PayoutRepository) UpdatePayoutStatus(ctx context.Context, payout *domain.Payout) error {
	_, err := r.db.Exec(ctx, updatePayoutStatusSQL,
		payout.ID, string(payout.Status), payout.ProcessorPayoutID, payout.FailureReason)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePayout, err)
	}
	return nil
}

// MarkPayoutSubmitted stores the processor id and moves the payout from pending to
// processing in one statement. Zero rows means it already left pending.
func (r *PayoutRepository) MarkPayoutSubmitted(ctx context.Context, id uuid.UUID, processorPayoutID string) (int64, error) {
	tag, err := r.db.Exec(ctx, markPayoutSubmittedSQL, id, processorPayoutID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePayout, err)
	}
	return tag.RowsAffected(), nil
}

// ListUnsubmittedPayouts returns pending payouts that never got a processor id
// and were last touched before the cutoff, oldest first
func (r *PayoutRepository) ListUnsubmittedPayouts(ctx context.Context, before time.Time, limit int) ([]domain.Payout, error) {
	rows, err := r.db.Query(ctx, listUnsubmittedPayoutsSQL, before, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPayouts, err)
	}
	defer rows.Close()

	payouts := []domain.Payout{}
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPayouts, err)
		}
		payouts = append(payouts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPayouts, err)
	}
	return payouts, nil
}

// GetBalance returns the user's ledger balance, zero when the user has no account yet
func (r *PayoutRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance string
	if err := r.db.QueryRow(ctx, getBalanceSQL, userID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return parseNumeric(balance)
}

// BeginPayoutTx starts the transaction pairing ledger movements with a payout record
func (r *PayoutRepository) BeginPayoutTx(ctx context.Context) (repository.PayoutTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &payoutTx{txWrapper: txWrapper{tx: tx}}, nil
}

type payoutTx struct {
	txWrapper
}

func (t *payoutTx) DebitLedger(ctx context.Context, entry domain.LedgerEntry) (int64, error) {
	tag, err := t.tx.Exec(ctx, debitAccountSQL, entry.UserID, numericParam(entry.Amount))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, nil
	}

	_, err = t.tx.Exec(ctx, insertLedgerEntrySQL,
		entry.UserID, numericParam(entry.Amount.Neg()), string(entry.Reason), entry.Reference)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertLedgerEntry, err)
	}
	return tag.RowsAffected(), nil
}

func (t *payoutTx) CreditLedger(ctx context.Context, entry domain.LedgerEntry) error {
	return creditLedger(ctx, t.tx, entry)
}

func (t *payoutTx) CreatePayout(ctx context.Context, payout *domain.Payout) error {
	_, err := t.tx.Exec(ctx, insertPayoutSQL,
		payout.ID, payout.UserID,
		numericParam(payout.Amount), numericParam(payout.Fee), numericParam(payout.NetAmount),
		payout.Currency, string(payout.Method), payout.DestinationCard, payout.ProcessorPayoutID,
		string(payout.Status), payout.FailureReason, payout.CreatedAt, payout.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPayout, err)
	}
	return nil
}

func (t *payoutTx) UpdatePayoutStatusIfMatches(ctx context.Context, payout *domain.Payout, expected domain.PayoutStatus) (int64, error) {
	tag, err := t.tx.Exec(ctx, updatePayoutStatusIfMatchesSQL,
		payout.ID, string(payout.Status), payout.ProcessorPayoutID, payout.FailureReason, string(expected))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePayout, err)
	}
	return tag.RowsAffected(), nil
}

// creditLedger records the entry and adds it to the balance. A repeated
// (reason, reference) pair is ignored so retried credits never double count.
func creditLedger(ctx context.Context, q querier, entry domain.LedgerEntry) error {
	tag, err := q.Exec(ctx, insertLedgerEntrySQL,
		entry.UserID, numericParam(entry.Amount), string(entry.Reason), entry.Reference)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertLedgerEntry, err)
	}
	if tag.RowsAffected() == 0 {
		return nil
	}

	if _, err := q.Exec(ctx, creditAccountSQL, entry.UserID, numericParam(entry.Amount)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	return nil
}

func scanPayout(row pgx.Row) (*domain.Payout, error) {
	var (
		p                   domain.Payout
		amount, fee, net    string
		method, status, cur string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &amount, &fee, &net, &cur, &method,
		&p.DestinationCard, &p.ProcessorPayoutID, &status, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Currency = strings.TrimSpace(cur)
	p.Method = domain.PayoutMethod(method)
	p.Status = domain.PayoutStatus(status)
	if p.Amount, err = parseNumeric(amount); err != nil {
		return nil, err
	}
	if p.Fee, err = parseNumeric(fee); err != nil {
		return nil, err
	}
	if p.NetAmount, err = parseNumeric(net); err != nil {
		return nil, err
	}
	return &p, nil
}
