package repository

import (
	"context"
	"strings"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/logger"
)

const logMsgRollbackFailed = "Failed to roll back transaction"

// SafeRollback is deferred right after Begin. Once Commit has run, the driver
// answers with a closed-tx error that is not worth a log line; any other
// failure is logged. It reports whether a live transaction was rolled back,
// i.e. whether the order, settlement or payout work in it was discarded.
func SafeRollback(ctx context.Context, tx Tx) bool {
	err := tx.Rollback(ctx)
	switch {
	case err == nil:
		return true
	case strings.Contains(err.Error(), domain.ErrMsgTxClosed):
		return false
	default:
		logger.FromContext(ctx).Error(logMsgRollbackFailed, "error", err)
		return false
	}
}
