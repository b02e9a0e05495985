package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Listing defaults
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
)

// Error Messages - Encoding
const (
	ErrMsgFailedToMarshal   = "failed to marshal"
	ErrMsgFailedToUnmarshal = "failed to unmarshal"
	ErrMsgInvalidDecimal    = "invalid decimal value"
)

// Error Messages - Contest Operations
const (
	ErrMsgFailedToInsertContest     = "failed to insert contest"
	ErrMsgFailedToInsertPredictions = "failed to insert generated predictions"
	ErrMsgFailedToGetContest        = "failed to get contest"
	ErrMsgFailedToGetPredictions    = "failed to get generated predictions"
	ErrMsgFailedToListContests      = "failed to list contests"
	ErrMsgFailedToLockContest       = "failed to lock contest"
	ErrMsgFailedToDeletePredictions = "failed to delete generated predictions"
	ErrMsgFailedToUpdateContest     = "failed to update contest"
)

// Error Messages - Order Operations
const (
	ErrMsgFailedToInsertOrder    = "failed to insert order"
	ErrMsgFailedToGetOrder       = "failed to get order"
	ErrMsgFailedToListOrders     = "failed to list orders"
	ErrMsgFailedToUpdateOrder    = "failed to update order"
	ErrMsgFailedToIncrementSlot  = "failed to increment slot entries"
	ErrMsgFailedToIncrementTotal = "failed to increment contest entries"
	ErrMsgFailedToWriteResults   = "failed to write order results"
)

// Error Messages - Ledger and Payout Operations
const (
	ErrMsgFailedToInsertLedgerEntry = "failed to insert ledger entry"
	ErrMsgFailedToUpdateBalance     = "failed to update ledger balance"
	ErrMsgFailedToGetBalance        = "failed to get ledger balance"
	ErrMsgFailedToInsertPayout      = "failed to insert payout"
	ErrMsgFailedToGetPayout         = "failed to get payout"
	ErrMsgFailedToUpdatePayout      = "failed to update payout"
	ErrMsgFailedToListPayouts       = "failed to list payouts"
)

// Event log errors
const (
	ErrMsgFailedToInsertEvent  = "failed to insert event"
	ErrMsgFailedToQueryEvents  = "failed to query events"
	ErrMsgFailedToDeleteEvents = "failed to delete old events"
)
