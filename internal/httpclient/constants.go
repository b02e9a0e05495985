package httpclient

import "time"

// Default configuration values
const (
	// DefaultTimeout bounds a single request attempt
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the number of retries after the first attempt
	DefaultMaxRetries = 3

	// DefaultRetryWait is the first backoff delay; it doubles per attempt
	DefaultRetryWait = 500 * time.Millisecond

	// DefaultRatePerSecond and DefaultBurst configure the request limiter
	DefaultRatePerSecond = 10
	DefaultBurst         = 5

	// maxErrorBody caps how much of an error response is kept
	maxErrorBody = 1024
)

// Header names
const (
	HeaderAccept         = "Accept"
	HeaderContentType    = "Content-Type"
	HeaderIdempotencyKey = "Idempotency-Key"
	ContentTypeJSON      = "application/json"
)

// Log messages
const (
	LogMsgRateLimited   = "Rate limited by upstream API"
	LogMsgRetrying      = "Retrying upstream request"
	LogMsgServerError   = "Upstream server error"
	LogMsgRequestFailed = "Upstream request failed"
)
