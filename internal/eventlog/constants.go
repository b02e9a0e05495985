package eventlog

import "github.com/osse101/PrizePool_Go/internal/event"

// LoggedEventTypes are the bus events persisted to the audit log
var LoggedEventTypes = []event.Type{
	event.ContestCreated,
	event.ContestPublished,
	event.ContestUnpublished,
	event.ContestSettled,
	event.OrderPlaced,
	event.OrderConfirmed,
	event.PayoutRequested,
	event.PayoutFailed,
}

// JSON payload field keys
const (
	PayloadKeyUserID    = "user_id"
	PayloadKeyContestID = "contest_id"
)

// DefaultListLimit caps ListEvents when no limit is given
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Log messages - service events
const (
	LogMsgEventPayloadNotDecoded = "Event payload could not be decoded, skipping log"
	LogMsgFailedToLogEvent       = "Failed to log event to database"
	LogMsgEventLogged            = "Event logged to database"
	LogMsgSubscribed             = "Event log subscribed to domain events"
)

// Log messages - audit prune job
const (
	LogMsgAuditPruneDisabled = "Contest audit retention disabled, nothing pruned"
	LogMsgAuditPruneFailed   = "Failed to prune contest audit trail"
	LogMsgAuditPruned        = "Contest audit trail pruned"
)

// Error messages
const (
	ErrMsgFailedToListEvents   = "failed to list events"
	ErrMsgFailedToCleanup      = "failed to clean up old events"
	ErrMsgFailedToPruneAudit   = "failed to prune contest audit trail"
	ErrMsgInvalidRetentionDays = "retention days must be positive"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldContestID     = "contest_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
	LogFieldCount         = "count"
)
