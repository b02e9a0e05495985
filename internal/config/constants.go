package config

import "time"

// Defaults applied when the environment leaves a setting unset or invalid
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultServiceName = "prizepool"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultRateLimitPerSecond = 20.0
	DefaultRateLimitBurst     = 40

	DefaultCryptoSourceURL        = "https://api.binance.com"
	DefaultResultSourceRate       = 5.0
	DefaultResultSourceMaxRetries = 3
	DefaultResultCacheSize        = 256
	DefaultResultCacheTTL         = 30 * time.Minute

	DefaultProcessorRate       = 10.0
	DefaultProcessorMaxRetries = 2
	DefaultProcessorRetryWait  = 500 * time.Millisecond

	// Every five minutes
	DefaultPayoutReconcileSpec  = "0 */5 * * * *"
	DefaultPayoutReconcileGrace = 5 * time.Minute

	// Every minute, on the minute (seconds field first)
	DefaultSettlementSweepSpec = "0 * * * * *"
	DefaultWorkerCount         = 2
	DefaultWorkerQueueSize     = 16
	DefaultShutdownTimeout     = 10 * time.Second

	// Daily at 03:30 UTC
	DefaultEventLogCleanupSpec   = "0 30 3 * * *"
	DefaultEventLogRetentionDays = 90
	DefaultEventStreamEnabled    = true
)
