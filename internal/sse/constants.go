package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often to send keepalive pings
const KeepaliveInterval = 30 * time.Second

// Event types for SSE
const (
	// EventTypeContestPublished is sent when a contest opens for orders
	EventTypeContestPublished = "contest.published"

	// EventTypeContestUnpublished is sent when a contest returns to draft
	EventTypeContestUnpublished = "contest.unpublished"

	// EventTypeContestSettled is sent once a contest has been settled
	EventTypeContestSettled = "contest.settled"

	// EventTypeEntriesConfirmed is sent when a paid order takes its slots
	EventTypeEntriesConfirmed = "contest.entries_confirmed"

	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes     = "types"
	QueryParamContestID = "contest_id"
)

// Log messages
const (
	LogMsgClientConnected       = "SSE client connected"
	LogMsgClientDisconnected    = "SSE client disconnected"
	LogMsgEventBroadcast        = "Broadcasting SSE event"
	LogMsgEventDropped          = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError            = "Failed to write SSE event"
	LogMsgInvalidPayload        = "Invalid SSE source event payload"
	LogMsgSubscriberReady       = "SSE subscriber registered for event types"
	ErrMsgStreamingNotSupported = "streaming not supported"
	ErrMsgHubStopped            = "event stream unavailable"
)
