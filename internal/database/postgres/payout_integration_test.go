package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/payout"
)

type stubProcessor struct {
	createErr error
	status    domain.PayoutStatus
}

func (p *stubProcessor) CreatePayout(context.Context, payout.ProcessorRequest) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	return "po_" + uuid.NewString(), nil
}

func (p *stubProcessor) GetPayoutStatus(context.Context, string) (domain.PayoutStatus, error) {
	return p.status, nil
}

func credit(t *testing.T, repo *PayoutRepository, userID, amount, reference string) {
	t.Helper()
	ctx := context.Background()
	tx, err := repo.BeginPayoutTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreditLedger(ctx, domain.LedgerEntry{
		UserID:    userID,
		Amount:    dec(amount),
		Reason:    domain.LedgerReasonPrize,
		Reference: reference,
	}))
	require.NoError(t, tx.Commit(ctx))
}

func TestPayoutRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewPayoutRepository(pool)

	t.Run("CreditIsIdempotentPerReference", func(t *testing.T) {
		user := "ledger-" + uuid.NewString()
		credit(t, repo, user, "50", "contest-a/order-1")
		credit(t, repo, user, "50", "contest-a/order-1")
		credit(t, repo, user, "25.25", "contest-b/order-9")

		balance, err := repo.GetBalance(ctx, user)
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec("75.25")), "got %s", balance)
	})

	t.Run("BalanceOfUnknownUserIsZero", func(t *testing.T) {
		balance, err := repo.GetBalance(ctx, "nobody-"+uuid.NewString())
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("DebitRefusesOverdraft", func(t *testing.T) {
		user := "debit-" + uuid.NewString()
		credit(t, repo, user, "10", "seed/"+user)

		tx, err := repo.BeginPayoutTx(ctx)
		require.NoError(t, err)
		rows, err := tx.DebitLedger(ctx, domain.LedgerEntry{UserID: user, Amount: dec("10.01"), Reason: domain.LedgerReasonPayout, Reference: uuid.NewString()})
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
		require.NoError(t, tx.Rollback(ctx))

		balance, err := repo.GetBalance(ctx, user)
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec("10")))
	})

	t.Run("RequestPayoutDebitsBalance", func(t *testing.T) {
		user := "payout-" + uuid.NewString()
		credit(t, repo, user, "100", "seed/"+user)
		svc := payout.NewService(repo, &stubProcessor{status: domain.PayoutStatusPaid}, nopPublisher{})

		p, err := svc.RequestPayout(ctx, payout.Request{
			UserID:          user,
			Amount:          dec("40"),
			Method:          domain.PayoutMethodStandard,
			DestinationCard: "card_123",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusProcessing, p.Status)

		stored, err := repo.GetPayout(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, p.ProcessorPayoutID, stored.ProcessorPayoutID)
		assert.True(t, stored.Fee.Equal(dec("0.1")))
		assert.True(t, stored.NetAmount.Equal(dec("39.9")))
		assert.Equal(t, "USD", stored.Currency)

		balance, err := repo.GetBalance(ctx, user)
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec("60")), "got %s", balance)

		refreshed, err := svc.GetPayoutStatus(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusPaid, refreshed.Status)
	})

	t.Run("ProcessorFailureRefunds", func(t *testing.T) {
		user := "refund-" + uuid.NewString()
		credit(t, repo, user, "100", "seed/"+user)
		svc := payout.NewService(repo, &stubProcessor{createErr: errors.New("card declined")}, nopPublisher{})

		p, err := svc.RequestPayout(ctx, payout.Request{
			UserID:          user,
			Amount:          dec("40"),
			Method:          domain.PayoutMethodInstant,
			DestinationCard: "card_123",
		})
		require.ErrorIs(t, err, domain.ErrPayoutFailed)
		require.NotNil(t, p)

		stored, err := repo.GetPayout(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusFailed, stored.Status)
		assert.NotEmpty(t, stored.FailureReason)

		balance, err := repo.GetBalance(ctx, user)
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec("100")), "refund restores the balance, got %s", balance)
	})

	t.Run("UnsubmittedPayoutsAreReconciled", func(t *testing.T) {
		user := "stuck-" + uuid.NewString()
		credit(t, repo, user, "100", "seed/"+user)
		accepted := seedStuckPayout(t, repo, user, "30")
		declined := seedStuckPayout(t, repo, user, "20")
		cutoff := time.Now().UTC().Add(-time.Minute)

		listed, err := repo.ListUnsubmittedPayouts(ctx, cutoff, 1000)
		require.NoError(t, err)
		ids := make([]uuid.UUID, 0, len(listed))
		for _, p := range listed {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, accepted.ID)
		assert.Contains(t, ids, declined.ID)

		rows, err := repo.MarkPayoutSubmitted(ctx, accepted.ID, "po_late")
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		rows, err = repo.MarkPayoutSubmitted(ctx, accepted.ID, "po_other")
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows, "only a pending payout can be submitted")

		stored, err := repo.GetPayout(ctx, accepted.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusProcessing, stored.Status)
		assert.Equal(t, "po_late", stored.ProcessorPayoutID)

		svc := payout.NewService(repo, &stubProcessor{createErr: domain.ErrProcessorDeclined}, nopPublisher{})
		_, err = svc.ReconcilePayouts(ctx, cutoff)
		require.NoError(t, err)

		stored, err = repo.GetPayout(ctx, declined.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusFailed, stored.Status)
		balance, err := repo.GetBalance(ctx, user)
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec("70")), "declined payout refunded, got %s", balance)
	})

	t.Run("GetMissingReturnsNil", func(t *testing.T) {
		got, err := repo.GetPayout(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// seedStuckPayout debits the user and stores a payout that never reached the processor
func seedStuckPayout(t *testing.T, repo *PayoutRepository, userID, amount string) *domain.Payout {
	t.Helper()
	ctx := context.Background()
	stale := time.Now().UTC().Add(-time.Hour)
	p := &domain.Payout{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          dec(amount),
		Fee:             dec("0"),
		NetAmount:       dec(amount),
		Currency:        "USD",
		Method:          domain.PayoutMethodStandard,
		DestinationCard: "card_123",
		Status:          domain.PayoutStatusPending,
		CreatedAt:       stale,
		UpdatedAt:       stale,
	}

	tx, err := repo.BeginPayoutTx(ctx)
	require.NoError(t, err)
	rows, err := tx.DebitLedger(ctx, domain.LedgerEntry{UserID: userID, Amount: p.Amount, Reason: domain.LedgerReasonPayout, Reference: p.ID.String()})
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
	require.NoError(t, tx.CreatePayout(ctx, p))
	require.NoError(t, tx.Commit(ctx))
	return p
}
