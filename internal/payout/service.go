package payout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

// Request describes a withdrawal of ledger winnings
type Request struct {
	UserID          string
	Amount          decimal.Decimal
	Currency        string
	Method          domain.PayoutMethod
	DestinationCard string
}

// Service defines the interface for payout operations
type Service interface {
	RequestPayout(ctx context.Context, req Request) (*domain.Payout, error)
	GetPayoutStatus(ctx context.Context, payoutID uuid.UUID) (*domain.Payout, error)
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	QuoteFee(amount decimal.Decimal, method domain.PayoutMethod, currency string) (*FeeQuote, error)
	ReconcilePayouts(ctx context.Context, before time.Time) (*ReconcileReport, error)
}

// ReconcileReport counts what a reconciliation pass did with each stuck payout
type ReconcileReport struct {
	Submitted int
	Refunded  int
	Deferred  int
}

type service struct {
	repo      repository.Payout
	processor Processor
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new payout service
func NewService(repo repository.Payout, processor Processor, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		processor: processor,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) QuoteFee(amount decimal.Decimal, method domain.PayoutMethod, currency string) (*FeeQuote, error) {
	return QuoteFee(amount, method, currency)
}

func (s *service) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if strings.TrimSpace(userID) == "" {
		return decimal.Zero, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
	}
	return balance, nil
}

// RequestPayout debits the ledger, records the payout and hands it to the processor.
//
// If the processor rejects the payout the debited amount is credited back and the
// payout is marked failed before ErrPayoutFailed is returned.
func (s *service) RequestPayout(ctx context.Context, req Request) (*domain.Payout, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRequestPayoutCalled, "userID", req.UserID, "amount", req.Amount, "method", req.Method)

	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.DestinationCard) == "" {
		return nil, fmt.Errorf("%w: user id and destination card are required", domain.ErrInvalidInput)
	}

	quote, err := QuoteFee(req.Amount, req.Method, req.Currency)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	payout := &domain.Payout{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Amount:          quote.Amount,
		Fee:             quote.Fee,
		NetAmount:       quote.NetAmount,
		Currency:        quote.Currency,
		Method:          req.Method,
		DestinationCard: req.DestinationCard,
		Status:          domain.PayoutStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.debitAndRecord(ctx, payout); err != nil {
		return nil, err
	}
	s.publish(ctx, event.PayoutRequested, payout)

	processorID, err := s.processor.CreatePayout(ctx, processorRequest(payout))
	if err != nil {
		log.Warn(LogMsgProcessorFailed, "payoutID", payout.ID, "error", err)
		if refundErr := s.refund(ctx, payout, domain.PayoutStatusPending, err.Error()); refundErr != nil {
			// Still pending without a processor id; ReconcilePayouts finishes it
			return nil, fmt.Errorf("%w: %v (refund: %v)", domain.ErrPayoutFailed, err, refundErr)
		}
		return payout, fmt.Errorf("%w: %v", domain.ErrPayoutFailed, err)
	}

	// The processor already holds the money; a failed write here must not surface as a failed payout
	if err := s.markSubmitted(ctx, payout, processorID); err != nil {
		log.Error(LogMsgStatusUpdateFailed, "payoutID", payout.ID, "processorPayoutID", processorID, "error", err)
		return payout, nil
	}

	log.Info(LogMsgPayoutSubmitted, "payoutID", payout.ID, "processorPayoutID", processorID, "net", payout.NetAmount)
	return payout, nil
}

// processorRequest keys the submission by payout id, so resubmitting a payout
// never creates a second transfer
func processorRequest(payout *domain.Payout) ProcessorRequest {
	return ProcessorRequest{
		IdempotencyKey:  payout.ID.String(),
		NetAmount:       payout.NetAmount,
		Currency:        payout.Currency,
		DestinationCard: payout.DestinationCard,
		Metadata: map[string]string{
			MetadataKeyPayoutID: payout.ID.String(),
			MetadataKeyUserID:   payout.UserID,
		},
	}
}

// markSubmitted records the processor id with the move to processing.
// Losing the race to another writer leaves payout as that writer stored it.
func (s *service) markSubmitted(ctx context.Context, payout *domain.Payout, processorID string) error {
	rows, err := s.repo.MarkPayoutSubmitted(ctx, payout.ID, processorID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToUpdatePayout, err)
	}
	if rows == 0 {
		current, err := s.repo.GetPayout(ctx, payout.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToGetPayout, err)
		}
		if current != nil {
			*payout = *current
		}
		return nil
	}

	payout.ProcessorPayoutID = processorID
	payout.Status = domain.PayoutStatusProcessing
	payout.UpdatedAt = s.now().UTC()
	return nil
}

// ReconcilePayouts finishes payouts left pending without a processor id, which
// happens when the write after submission or the refund after a rejection
// failed. Each one is resubmitted under its idempotency key: an accepted
// payout gets its processor id recorded, a declined one is refunded, and one
// the processor cannot answer for is left for the next pass.
func (s *service) ReconcilePayouts(ctx context.Context, before time.Time) (*ReconcileReport, error) {
	log := logger.FromContext(ctx)

	stuck, err := s.repo.ListUnsubmittedPayouts(ctx, before, ReconcileBatchSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListStuck, err)
	}

	report := &ReconcileReport{}
	for i := range stuck {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		payout := &stuck[i]

		processorID, err := s.processor.CreatePayout(ctx, processorRequest(payout))
		switch {
		case err == nil:
			if err := s.markSubmitted(ctx, payout, processorID); err != nil {
				log.Error(LogMsgStatusUpdateFailed, "payoutID", payout.ID, "processorPayoutID", processorID, "error", err)
				report.Deferred++
				continue
			}
			report.Submitted++
		case errors.Is(err, domain.ErrProcessorDeclined):
			if refundErr := s.refund(ctx, payout, domain.PayoutStatusPending, err.Error()); refundErr != nil {
				report.Deferred++
				continue
			}
			report.Refunded++
		default:
			log.Warn(LogMsgReconcileDeferred, "payoutID", payout.ID, "error", err)
			report.Deferred++
		}
	}

	log.Info(LogMsgReconcileCompleted, "found", len(stuck),
		"submitted", report.Submitted, "refunded", report.Refunded, "deferred", report.Deferred)
	return report, nil
}

func (s *service) debitAndRecord(ctx context.Context, payout *domain.Payout) error {
	tx, err := s.repo.BeginPayoutTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	rows, err := tx.DebitLedger(ctx, domain.LedgerEntry{
		UserID:    payout.UserID,
		Amount:    payout.Amount,
		Reason:    domain.LedgerReasonPayout,
		Reference: payout.ID.String(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %s cannot withdraw %s", domain.ErrInsufficientFunds, payout.UserID, payout.Amount)
	}

	if err := tx.CreatePayout(ctx, payout); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToRecord, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

// refund credits the full debited amount back and marks the payout failed, both in one
// transaction guarded by the expected status so a payout is refunded at most once.
func (s *service) refund(ctx context.Context, payout *domain.Payout, expected domain.PayoutStatus, reason string) error {
	log := logger.FromContext(ctx)

	failed := *payout
	failed.Status = domain.PayoutStatusFailed
	failed.FailureReason = reason
	failed.UpdatedAt = s.now().UTC()

	applied, err := func() (bool, error) {
		tx, err := s.repo.BeginPayoutTx(ctx)
		if err != nil {
			return false, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
		}
		defer repository.SafeRollback(ctx, tx)

		rows, err := tx.UpdatePayoutStatusIfMatches(ctx, &failed, expected)
		if err != nil {
			return false, fmt.Errorf("%s: %w", ErrContextFailedToUpdatePayout, err)
		}
		if rows == 0 {
			return false, nil
		}

		if err := tx.CreditLedger(ctx, domain.LedgerEntry{
			UserID:    payout.UserID,
			Amount:    payout.Amount,
			Reason:    domain.LedgerReasonPayoutRefund,
			Reference: payout.ID.String(),
		}); err != nil {
			return false, fmt.Errorf("%s: %w", ErrContextFailedToRefund, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return false, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
		}
		return true, nil
	}()
	if err != nil {
		log.Error(LogMsgRefundFailed, "payoutID", payout.ID, "userID", payout.UserID, "amount", payout.Amount, "error", err)
		return err
	}
	if !applied {
		// Another caller already moved the payout on; its refund, if any, stands
		log.Info(LogMsgRefundSkipped, "payoutID", payout.ID)
		return nil
	}

	*payout = failed
	log.Info(LogMsgPayoutRefunded, "payoutID", payout.ID, "amount", payout.Amount)
	s.publish(ctx, event.PayoutFailed, payout)
	return nil
}

// GetPayoutStatus refreshes a non-terminal payout from the processor and persists the result.
// A payout the processor reports as failed is refunded.
func (s *service) GetPayoutStatus(ctx context.Context, payoutID uuid.UUID) (*domain.Payout, error) {
	payout, err := s.repo.GetPayout(ctx, payoutID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetPayout, err)
	}
	if payout == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPayoutNotFound, payoutID)
	}
	if payout.Status.IsTerminal() || payout.ProcessorPayoutID == "" {
		return payout, nil
	}

	status, err := s.processor.GetPayoutStatus(ctx, payout.ProcessorPayoutID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProcessorUnavailable, err)
	}
	if status == payout.Status {
		return payout, nil
	}

	logger.FromContext(ctx).Info(LogMsgStatusRefreshed, "payoutID", payout.ID, "from", payout.Status, "to", status)

	if status == domain.PayoutStatusFailed {
		if err := s.refund(ctx, payout, payout.Status, "processor reported failure"); err != nil {
			return nil, err
		}
		return payout, nil
	}

	payout.Status = status
	payout.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdatePayoutStatus(ctx, payout); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToUpdatePayout, err)
	}
	return payout, nil
}

func (s *service) publish(ctx context.Context, eventType event.Type, payout *domain.Payout) {
	if s.publisher == nil {
		logger.FromContext(ctx).Warn(LogMsgPublisherUnavailable, "type", eventType)
		return
	}
	s.publisher.PublishWithRetry(ctx, event.NewPayoutEvent(eventType, payout))
}
