package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new session
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingPrizePool   = "Starting PrizePool"
	LogMsgConfigurationLoaded = "Configuration loaded"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgSettlementWorkerSubscribed     = "Settlement worker subscribed to contest events"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
	ErrMsgFailedRegisterEventLog         = "failed to subscribe event log"
)

// =============================================================================
// Application Wiring
// =============================================================================

const (
	SettlementSweepJobName = "settlement-sweep"
	AuditPruneJobName      = "contest-audit-prune"
	PayoutReconcileJobName = "payout-reconcile"

	LogMsgConnectingDatabase      = "Connecting to database"
	LogMsgMigrationsApplied       = "Database migrations applied"
	LogMsgResultSourceRegistered  = "Result source registered"
	LogMsgProcessorConfigured     = "Payment processor configured"
	LogMsgSchedulerStarted        = "Settlement sweep scheduled"
	LogMsgShutdownSignal          = "Shutdown signal received"
	ErrMsgFailedConnectDatabase   = "failed to connect to database"
	ErrMsgFailedMigrate           = "failed to apply migrations"
	ErrMsgFailedScheduleSweep     = "failed to schedule settlement sweep"
	ErrMsgFailedScheduleCleanup   = "failed to schedule audit trail pruning"
	ErrMsgFailedScheduleReconcile = "failed to schedule payout reconciliation"
	ErrMsgFailedInitEventSystem   = "failed to initialize event system"
	ErrMsgFailedRegisterHandlers  = "failed to register event handlers"
	ErrMsgServerFailed            = "server failed"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgSettlementWorkerFailed     = "Settlement worker shutdown failed"
	LogMsgWorkerPoolStopped          = "Worker pool stopped"
	LogMsgEventStreamStopped         = "Event stream closed"
)
