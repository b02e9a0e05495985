package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/metrics"
)

// SettlementSweep settles every Active contest whose end time has passed.
// It picks up contests missed by the timers, such as ones whose result was unavailable.
type SettlementSweep struct {
	contests ContestLister
	settler  Settler
	now      func() time.Time
}

// NewSettlementSweep creates a new SettlementSweep job
func NewSettlementSweep(contests ContestLister, settler Settler) *SettlementSweep {
	return &SettlementSweep{contests: contests, settler: settler, now: time.Now}
}

// Process implements Job
func (s *SettlementSweep) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	due, err := s.contests.ListActiveContestsEndingBefore(ctx, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to list ended contests: %w", err)
	}
	log.Info(LogMsgSweepStarting, "due", len(due))

	counts := map[string]int{}
	for i := range due {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome := settleOnce(ctx, s.settler, due[i].ID)
		metrics.SettlementJobs.WithLabelValues(outcome).Inc()
		counts[outcome]++
	}

	log.Info(LogMsgSweepCompleted,
		"settled", counts[metrics.OutcomeSettled],
		"skipped", counts[metrics.OutcomeSkipped],
		"unavailable", counts[metrics.OutcomeUnavailable],
		"failed", counts[metrics.OutcomeFailed])
	return nil
}
