package worker

import "time"

// Pool defaults
const (
	DefaultJobTimeout = 2 * time.Minute
)

// Settlement worker defaults
const (
	// DefaultSettleTimeout bounds one settlement attempt, result fetch included
	DefaultSettleTimeout = time.Minute
	// StartupScanLimit caps how many Active contests are scheduled at startup
	StartupScanLimit = 500
	settlementWorkerName = "settlement worker"
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Settlement Worker
// ============================================================================

const (
	LogMsgFailedToLoadActiveContests = "Failed to load active contests on startup"
	LogMsgSchedulingSettlement       = "Scheduling contest settlement"
	LogMsgSettlementCancelled        = "Cancelled scheduled settlement"
	LogMsgExecutingSettlement        = "Executing scheduled settlement"
	LogMsgSettlementSkipped          = "Contest already settled, skipping"
	LogMsgSettlementDeferred         = "Result unavailable, settlement deferred to sweep"
	LogMsgSettlementFailed           = "Failed to settle contest"
	LogMsgSettlementCompleted        = "Scheduled settlement completed"
	LogMsgInvalidEventPayload        = "Ignoring event with unexpected payload"
)

// ============================================================================
// Log Messages - Settlement Sweep
// ============================================================================

const (
	LogMsgSweepStarting  = "Settlement sweep starting"
	LogMsgSweepCompleted = "Settlement sweep completed"
)
