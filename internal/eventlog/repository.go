package eventlog

import (
	"context"
	"time"
)

// Event is one persisted domain event
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Version   string                 `json:"version"`
	ContestID *string                `json:"contest_id,omitempty"`
	UserID    *string                `json:"user_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter filters events for queries. Nil fields match everything.
type EventFilter struct {
	ContestID *string
	UserID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event. ID and CreatedAt are assigned by the store.
	LogEvent(ctx context.Context, evt Event) error

	// GetEvents returns events matching filter, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// CleanupOldEvents removes events older than the given number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
