package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/metrics"
	"github.com/osse101/PrizePool_Go/internal/repository"
	"github.com/osse101/PrizePool_Go/internal/settlement"
)

// ContestLister is the read side of contest persistence the worker needs
type ContestLister interface {
	ListContests(ctx context.Context, filter repository.ContestFilter) ([]domain.Contest, error)
	ListActiveContestsEndingBefore(ctx context.Context, before time.Time) ([]domain.Contest, error)
}

// Settler settles a contest
type Settler interface {
	SettleContest(ctx context.Context, contestID uuid.UUID, manualValue *decimal.Decimal) (*settlement.Report, error)
}

// SettlementWorker settles contests when their end time passes
type SettlementWorker struct {
	BaseWorker
	contests ContestLister
	settler  Settler
	now      func() time.Time
}

// NewSettlementWorker creates a new SettlementWorker
func NewSettlementWorker(contests ContestLister, settler Settler) *SettlementWorker {
	w := &SettlementWorker{
		contests: contests,
		settler:  settler,
		now:      time.Now,
	}
	w.init()
	return w
}

// Start schedules a timer for every Active contest
func (w *SettlementWorker) Start(ctx context.Context) {
	status := domain.ContestStatusActive
	active, err := w.contests.ListContests(ctx, repository.ContestFilter{Status: &status, Limit: StartupScanLimit})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToLoadActiveContests, "error", err)
		return
	}

	for i := range active {
		c := &active[i]
		if c.Results.PrizeDistributed || c.EndTime == nil {
			continue
		}
		w.scheduleSettlement(ctx, c.ID, *c.EndTime)
	}
}

// Subscribe registers the worker for contest lifecycle events
func (w *SettlementWorker) Subscribe(bus event.Bus) {
	bus.Subscribe(event.ContestPublished, w.handleContestPublished)
	bus.Subscribe(event.ContestUnpublished, w.handleContestClosed)
	bus.Subscribe(event.ContestSettled, w.handleContestClosed)
}

func (w *SettlementWorker) handleContestPublished(ctx context.Context, evt event.Event) error {
	payload, id, err := decodeContestPayload(evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidEventPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	if payload.EndTime == 0 {
		return nil
	}
	w.scheduleSettlement(ctx, id, time.Unix(payload.EndTime, 0))
	return nil
}

func (w *SettlementWorker) handleContestClosed(ctx context.Context, evt event.Event) error {
	var (
		id  uuid.UUID
		err error
	)
	if evt.Type == event.ContestSettled {
		var p domain.ContestSettledPayload
		if p, err = event.DecodePayload[domain.ContestSettledPayload](evt.Payload); err == nil {
			id, err = uuid.Parse(p.ContestID)
		}
	} else {
		_, id, err = decodeContestPayload(evt)
	}
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidEventPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	if w.stopTimer(id) {
		logger.FromContext(ctx).Info(LogMsgSettlementCancelled, "contestID", id)
	}
	return nil
}

func decodeContestPayload(evt event.Event) (domain.ContestPublishedPayload, uuid.UUID, error) {
	payload, err := event.DecodePayload[domain.ContestPublishedPayload](evt.Payload)
	if err != nil {
		return payload, uuid.Nil, err
	}
	id, err := uuid.Parse(payload.ContestID)
	if err != nil {
		return payload, uuid.Nil, fmt.Errorf("invalid contest id %q: %w", payload.ContestID, err)
	}
	return payload, id, nil
}

func (w *SettlementWorker) scheduleSettlement(ctx context.Context, contestID uuid.UUID, endTime time.Time) {
	delay := endTime.Sub(w.now())
	if delay < 0 {
		delay = 0
	}
	logger.FromContext(ctx).Info(LogMsgSchedulingSettlement, "contestID", contestID, "endTime", endTime, "delay", delay)

	w.schedule(contestID, delay, func() {
		w.track(func() { w.settle(contestID) })
	})
}

func (w *SettlementWorker) settle(contestID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultSettleTimeout)
	defer cancel()
	log := logger.FromContext(ctx)
	log.Info(LogMsgExecutingSettlement, "contestID", contestID)

	outcome := settleOnce(ctx, w.settler, contestID)
	metrics.SettlementJobs.WithLabelValues(outcome).Inc()
}

// settleOnce settles a contest and classifies the result for metrics
func settleOnce(ctx context.Context, settler Settler, contestID uuid.UUID) string {
	log := logger.FromContext(ctx)

	_, err := settler.SettleContest(ctx, contestID, nil)
	switch {
	case err == nil:
		log.Info(LogMsgSettlementCompleted, "contestID", contestID)
		return metrics.OutcomeSettled
	case errors.Is(err, domain.ErrAlreadySettled), errors.Is(err, domain.ErrContestNotFound),
		errors.Is(err, domain.ErrInvalidContestState):
		log.Info(LogMsgSettlementSkipped, "contestID", contestID, "reason", err)
		return metrics.OutcomeSkipped
	case errors.Is(err, domain.ErrResultUnavailable):
		log.Warn(LogMsgSettlementDeferred, "contestID", contestID, "error", err)
		return metrics.OutcomeUnavailable
	default:
		log.Error(LogMsgSettlementFailed, "contestID", contestID, "error", err)
		return metrics.OutcomeFailed
	}
}

// Shutdown cancels pending timers and waits for running settlements
func (w *SettlementWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, settlementWorkerName)
}
