package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PrizePool_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Domain event types
const (
	ContestCreated     Type = Type(domain.EventTypeContestCreated)
	ContestPublished   Type = Type(domain.EventTypeContestPublished)
	ContestUnpublished Type = Type(domain.EventTypeContestUnpublished)
	ContestSettled     Type = Type(domain.EventTypeContestSettled)
	OrderPlaced        Type = Type(domain.EventTypeOrderPlaced)
	OrderConfirmed     Type = Type(domain.EventTypeOrderConfirmed)
	PayoutRequested    Type = Type(domain.EventTypePayoutRequested)
	PayoutFailed       Type = Type(domain.EventTypePayoutFailed)
)

// Type-safe event constructors

// NewContestCreatedEvent creates a contest.created event
func NewContestCreatedEvent(c *domain.Contest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestCreated,
		Payload: domain.ContestPublishedPayload{
			ContestID: c.ID.String(),
			Name:      c.Name,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewContestPublishedEvent creates a contest.published event
func NewContestPublishedEvent(c *domain.Contest) Event {
	payload := domain.ContestPublishedPayload{
		ContestID: c.ID.String(),
		Name:      c.Name,
		Timestamp: time.Now().Unix(),
	}
	if c.EndTime != nil {
		payload.EndTime = c.EndTime.Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestPublished,
		Payload: payload,
	}
}

// NewContestUnpublishedEvent creates a contest.unpublished event
func NewContestUnpublishedEvent(c *domain.Contest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestUnpublished,
		Payload: domain.ContestPublishedPayload{
			ContestID: c.ID.String(),
			Name:      c.Name,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewContestSettledEvent creates a contest.settled event
func NewContestSettledEvent(payload domain.ContestSettledPayload) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    ContestSettled,
		Payload: payload,
		Metadata: map[string]interface{}{
			MetadataKeyContestID: payload.ContestID,
		},
	}
}

// NewOrderPlacedEvent creates an order.placed event
func NewOrderPlacedEvent(o *domain.Order) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrderPlaced,
		Payload: domain.OrderPlacedPayload{
			OrderID:     o.ID.String(),
			ContestID:   o.ContestID.String(),
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount.String(),
			Timestamp:   time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyContestID: o.ContestID.String(),
		},
	}
}

// NewOrderConfirmedEvent creates an order.confirmed event
func NewOrderConfirmedEvent(o *domain.Order) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrderConfirmed,
		Payload: domain.OrderConfirmedPayload{
			OrderID:   o.ID.String(),
			ContestID: o.ContestID.String(),
			Entries:   len(o.Predictions),
			Timestamp: time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			MetadataKeyContestID: o.ContestID.String(),
		},
	}
}

// NewPayoutEvent creates a payout.requested or payout.failed event
func NewPayoutEvent(eventType Type, p *domain.Payout) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.PayoutPayload{
			PayoutID:  p.ID.String(),
			UserID:    p.UserID,
			Amount:    p.Amount.String(),
			Fee:       p.Fee.String(),
			Method:    string(p.Method),
			Reason:    p.FailureReason,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
