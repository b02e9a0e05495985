package payout

import (
	"context"
	"time"

	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/metrics"
)

// ReconcileJob runs ReconcilePayouts on a schedule. Payouts younger than the
// grace period are skipped since their request may still be in flight.
type ReconcileJob struct {
	service Service
	grace   time.Duration
	now     func() time.Time
}

// NewReconcileJob creates a new ReconcileJob
func NewReconcileJob(service Service, grace time.Duration) *ReconcileJob {
	if grace <= 0 {
		grace = DefaultReconcileGrace
	}
	return &ReconcileJob{service: service, grace: grace, now: time.Now}
}

// Process implements worker.Job
func (j *ReconcileJob) Process(ctx context.Context) error {
	report, err := j.service.ReconcilePayouts(ctx, j.now().UTC().Add(-j.grace))
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgReconcileJobFailed, "error", err)
		return err
	}

	metrics.PayoutReconciliations.WithLabelValues(metrics.OutcomeSubmitted).Add(float64(report.Submitted))
	metrics.PayoutReconciliations.WithLabelValues(metrics.OutcomeRefunded).Add(float64(report.Refunded))
	metrics.PayoutReconciliations.WithLabelValues(metrics.OutcomeDeferred).Add(float64(report.Deferred))
	return nil
}
