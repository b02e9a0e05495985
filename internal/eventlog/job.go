package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/metrics"
)

// AuditPruneJob trims the contest audit trail on a schedule. Order, settlement
// and payout events older than the retention window are dropped; a window of
// zero days keeps the whole trail.
type AuditPruneJob struct {
	service       Service
	retentionDays int
}

// NewAuditPruneJob creates a new AuditPruneJob
func NewAuditPruneJob(service Service, retentionDays int) *AuditPruneJob {
	return &AuditPruneJob{service: service, retentionDays: retentionDays}
}

// Process implements worker.Job
func (j *AuditPruneJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With(LogFieldRetentionDays, j.retentionDays)
	if j.retentionDays <= 0 {
		log.Debug(LogMsgAuditPruneDisabled)
		return nil
	}

	start := time.Now()
	pruned, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgAuditPruneFailed, LogFieldError, err)
		return fmt.Errorf("%s: %w", ErrMsgFailedToPruneAudit, err)
	}

	metrics.AuditEventsPruned.Add(float64(pruned))
	log.Info(LogMsgAuditPruned, LogFieldDeletedCount, pruned, LogFieldDuration, time.Since(start))
	return nil
}
