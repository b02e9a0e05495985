package settlement

// Error context messages
const (
	ErrContextFailedToGetContest  = "failed to get contest"
	ErrContextFailedToListOrders  = "failed to list eligible orders"
	ErrContextFailedToBeginTx     = "failed to begin settlement transaction"
	ErrContextFailedToMarkSettled = "failed to mark contest settled"
	ErrContextFailedToWriteOrders = "failed to write order results"
	ErrContextFailedToCredit      = "failed to credit prizes"
	ErrContextFailedToCommitTx    = "failed to commit settlement transaction"
)

// Log messages
const (
	LogMsgSettleContestCalled  = "SettleContest called"
	LogMsgResultFetched        = "Actual value resolved"
	LogMsgResultUnavailable    = "Actual value unavailable, settlement aborted"
	LogMsgNoEligibleOrders     = "No eligible orders, completing contest without winners"
	LogMsgSettlementLostRace   = "Settlement latch already taken"
	LogMsgContestSettled       = "Contest settled"
	LogMsgPublisherUnavailable = "Failed to publish contest.settled event"
)

// Result source labels used in settlement logs
const (
	ResultSourceManual   = "manual"
	ResultSourceExternal = "external"
)
