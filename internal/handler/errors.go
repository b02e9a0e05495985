package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidID         = "Invalid %s: must be a UUID"
	ErrMsgInvalidAmount     = "Invalid amount"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidStatus     = "Invalid status filter"
	ErrMsgOrderFilterNeeded = "contest_id or user_id is required"
	ErrMsgInvalidTime       = "Invalid %s: must be RFC3339"
)

// Success messages for API responses
const (
	MsgContestDeleted = "Contest deleted"
)
