package scheduler

// DefaultSweepSpec runs the settlement sweep every minute, on the minute
const DefaultSweepSpec = "0 * * * * *"

const (
	LogMsgSchedulerStarted = "Scheduler started"
	LogMsgSchedulerStopped = "Scheduler stopped"
	LogMsgJobScheduled     = "Job scheduled"
	LogMsgJobSkipped       = "Scheduled job skipped, worker queue full"
)
