package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

// Payout defines the interface for payout and ledger persistence.
// GetPayout returns (nil, nil) when the payout does not exist.
type Payout interface {
	GetPayout(ctx context.Context, id uuid.UUID) (*domain.Payout, error)
	UpdatePayoutStatus(ctx context.Context, payout *domain.Payout) error
	// MarkPayoutSubmitted moves a pending payout to processing together with its
	// processor id. Zero rows means the payout already left pending.
	MarkPayoutSubmitted(ctx context.Context, id uuid.UUID, processorPayoutID string) (int64, error)
	ListUnsubmittedPayouts(ctx context.Context, before time.Time, limit int) ([]domain.Payout, error)
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	BeginPayoutTx(ctx context.Context) (PayoutTx, error)
}

// PayoutTx groups ledger movements with the payout record they belong to
type PayoutTx interface {
	Tx // Commit, Rollback

	// DebitLedger subtracts the amount only if the balance covers it.
	// Zero rows means insufficient funds.
	DebitLedger(ctx context.Context, entry domain.LedgerEntry) (int64, error)
	CreditLedger(ctx context.Context, entry domain.LedgerEntry) error

	CreatePayout(ctx context.Context, payout *domain.Payout) error

	// UpdatePayoutStatusIfMatches writes status, processor id and failure reason
	// only while the stored status equals expected.
	UpdatePayoutStatusIfMatches(ctx context.Context, payout *domain.Payout, expected domain.PayoutStatus) (int64, error)
}
