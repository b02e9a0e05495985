package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/concurrency"
	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/repository"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// ResultSource resolves the actual outcome of a contest
type ResultSource interface {
	FetchActualValue(ctx context.Context, contest *domain.Contest) (decimal.Decimal, error)
}

// Service defines the interface for settlement operations
type Service interface {
	SettleContest(ctx context.Context, contestID uuid.UUID, manualValue *decimal.Decimal) (*Report, error)
	GetResults(ctx context.Context, contestID uuid.UUID) (*Report, error)
}

type service struct {
	repo      repository.Settlement
	results   ResultSource
	locks     *concurrency.LockManager
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new settlement service
func NewService(repo repository.Settlement, results ResultSource, locks *concurrency.LockManager, publisher event.Publisher) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:      repo,
		results:   results,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

// SettleContest resolves a finished contest exactly once.
//
// A manual value takes precedence over the result source. The prize_distributed latch,
// the order results and the prize credits are written in one transaction, so either
// all of them land or none do.
func (s *service) SettleContest(ctx context.Context, contestID uuid.UUID, manualValue *decimal.Decimal) (*Report, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSettleContestCalled, "contestID", contestID, "manual", manualValue != nil)

	contest, err := s.loadSettleable(ctx, contestID)
	if err != nil {
		return nil, err
	}

	actual, source, err := s.resolveActualValue(ctx, contest, manualValue)
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgResultFetched, "contestID", contestID, "actual", actual, "source", source)

	unlock := s.locks.Lock(concurrency.ContestKey(contestID.String()))
	defer unlock()

	// Re-read under the lock: a concurrent settlement may have finished meanwhile
	contest, err = s.loadSettleable(ctx, contestID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ListEligibleOrders(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListOrders, err)
	}

	var outcome Outcome
	if len(orders) == 0 {
		log.Info(LogMsgNoEligibleOrders, "contestID", contestID)
		outcome = Outcome{ActualValue: actual, Winners: []domain.Winner{}, WinningOrderIDs: []uuid.UUID{}}
	} else {
		outcome = DetermineWinners(contest, orders, actual)
	}

	endedAt := s.now().UTC()
	results := domain.ContestResults{
		ActualValue:      &actual,
		WinningOrderIDs:  outcome.WinningOrderIDs,
		Winners:          outcome.Winners,
		PrizeDistributed: true,
		EndedAt:          &endedAt,
	}

	if err := s.commitOutcome(ctx, contestID, results, outcome); err != nil {
		return nil, err
	}

	contest.Status = domain.ContestStatusCompleted
	contest.Results = results

	log.Info(LogMsgContestSettled,
		"contestID", contestID,
		"winners", len(outcome.Winners),
		"orders", len(outcome.Orders),
		"awarded", outcome.TotalAwarded())

	s.publishSettled(ctx, contest, outcome)

	return BuildReport(contest), nil
}

func (s *service) loadSettleable(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	contest, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil || contest.IsDeleted || contest.Status == domain.ContestStatusDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
	}
	if !contest.IsSettleable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadySettled, contestID)
	}
	return contest, nil
}

func (s *service) resolveActualValue(ctx context.Context, contest *domain.Contest, manualValue *decimal.Decimal) (decimal.Decimal, string, error) {
	if manualValue != nil {
		return *manualValue, ResultSourceManual, nil
	}
	if s.results == nil {
		return decimal.Zero, "", fmt.Errorf("%w: no result source configured", domain.ErrResultUnavailable)
	}

	actual, err := s.results.FetchActualValue(ctx, contest)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgResultUnavailable, "contestID", contest.ID, "error", err)
		return decimal.Zero, "", fmt.Errorf("%w: %v", domain.ErrResultUnavailable, err)
	}
	return actual, ResultSourceExternal, nil
}

func (s *service) commitOutcome(ctx context.Context, contestID uuid.UUID, results domain.ContestResults, outcome Outcome) error {
	tx, err := s.repo.BeginSettlementTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	rows, err := tx.MarkContestSettled(ctx, contestID, results)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToMarkSettled, err)
	}
	if rows == 0 {
		logger.FromContext(ctx).Warn(LogMsgSettlementLostRace, "contestID", contestID)
		return fmt.Errorf("%w: %s", domain.ErrAlreadySettled, contestID)
	}

	if len(outcome.Orders) > 0 {
		if err := tx.UpdateOrderResults(ctx, outcome.Orders); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToWriteOrders, err)
		}
	}

	if credits := outcome.LedgerCredits(contestID); len(credits) > 0 {
		if err := tx.CreditLedger(ctx, credits); err != nil {
			return fmt.Errorf("%s: %w", ErrContextFailedToCredit, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}

func (s *service) publishSettled(ctx context.Context, contest *domain.Contest, outcome Outcome) {
	if s.publisher == nil {
		logger.FromContext(ctx).Error(LogMsgPublisherUnavailable, "reason", "publisher is nil")
		return
	}

	winning := make([]string, len(outcome.WinningOrderIDs))
	for i, id := range outcome.WinningOrderIDs {
		winning[i] = id.String()
	}

	s.publisher.PublishWithRetry(ctx, event.NewContestSettledEvent(domain.ContestSettledPayload{
		ContestID:     contest.ID.String(),
		ActualValue:   outcome.ActualValue.String(),
		PrizePool:     contest.PrizePool.String(),
		TotalAwarded:  outcome.TotalAwarded().String(),
		WinnerCount:   len(outcome.Winners),
		OrderCount:    len(outcome.Orders),
		WinningOrders: winning,
	}))
}

// GetResults builds the read-only prize report of a contest
func (s *service) GetResults(ctx context.Context, contestID uuid.UUID) (*Report, error) {
	contest, err := s.repo.GetContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetContest, err)
	}
	if contest == nil || contest.IsDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrContestNotFound, contestID)
	}
	return BuildReport(contest), nil
}

// PlaceResult is one row of the prize table in a report
type PlaceResult struct {
	Place        int             `json:"place"`
	Percentage   decimal.Decimal `json:"percentage"`
	PrizeAmount  decimal.Decimal `json:"prize_amount"`
	PrizeDisplay string          `json:"prize_display"`
	Winner       *domain.Winner  `json:"winner,omitempty"`
	IsUnassigned bool            `json:"is_unassigned"`
}

// Report describes a contest's prize table and, once settled, its winners
type Report struct {
	ContestID        uuid.UUID            `json:"contest_id"`
	Name             string               `json:"name"`
	Status           domain.ContestStatus `json:"status"`
	Currency         string               `json:"currency"`
	PrizePool        decimal.Decimal      `json:"prize_pool"`
	PrizePoolDisplay string               `json:"prize_pool_display"`
	ActualValue      *decimal.Decimal     `json:"actual_value,omitempty"`
	PrizeDistributed bool                 `json:"prize_distributed"`
	EndedAt          *time.Time           `json:"ended_at,omitempty"`
	WinningOrderIDs  []uuid.UUID          `json:"winning_predictions"`
	TotalAwarded     decimal.Decimal      `json:"total_awarded"`
	Places           []PlaceResult        `json:"places"`
}

// BuildReport derives the report of a contest using CalculatePrizeForPlace for every configured place
func BuildReport(contest *domain.Contest) *Report {
	currency := contest.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	winners := make(map[int]domain.Winner, len(contest.Results.Winners))
	for _, w := range contest.Results.Winners {
		winners[w.Place] = w
	}

	report := &Report{
		ContestID:        contest.ID,
		Name:             contest.Name,
		Status:           contest.Status,
		Currency:         currency,
		PrizePool:        contest.PrizePool,
		PrizePoolDisplay: utils.FormatAmount(contest.PrizePool, currency),
		ActualValue:      contest.Results.ActualValue,
		PrizeDistributed: contest.Results.PrizeDistributed,
		EndedAt:          contest.Results.EndedAt,
		WinningOrderIDs:  contest.Results.WinningOrderIDs,
		TotalAwarded:     decimal.Zero,
		Places:           make([]PlaceResult, 0, len(contest.PlacePercentages)),
	}
	if report.WinningOrderIDs == nil {
		report.WinningOrderIDs = []uuid.UUID{}
	}

	for _, pp := range contest.PlacePercentages.Sorted() {
		prize := CalculatePrizeForPlace(contest.PrizePool, contest.PlacePercentages, pp.Place)
		row := PlaceResult{
			Place:        pp.Place,
			Percentage:   pp.Percentage,
			PrizeAmount:  prize,
			PrizeDisplay: utils.FormatAmount(prize, currency),
			IsUnassigned: true,
		}
		if w, ok := winners[pp.Place]; ok {
			row.Winner = &w
			row.IsUnassigned = false
			report.TotalAwarded = report.TotalAwarded.Add(w.PrizeAmount)
		}
		report.Places = append(report.Places, row)
	}

	return report
}
