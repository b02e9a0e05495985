package sse

import (
	"context"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for the contest lifecycle events streamed to clients
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.ContestPublished, s.handleContestStatus(EventTypeContestPublished))
	s.bus.Subscribe(event.ContestUnpublished, s.handleContestStatus(EventTypeContestUnpublished))
	s.bus.Subscribe(event.ContestSettled, s.handleContestSettled)
	s.bus.Subscribe(event.OrderConfirmed, s.handleOrderConfirmed)

	logger.FromContext(context.Background()).Info(LogMsgSubscriberReady,
		"types", []string{
			string(event.ContestPublished),
			string(event.ContestUnpublished),
			string(event.ContestSettled),
			string(event.OrderConfirmed),
		})
}

func (s *Subscriber) handleContestStatus(sseType string) event.Handler {
	return func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[domain.ContestPublishedPayload](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}

		s.hub.Broadcast(sseType, payload.ContestID, ContestStatusPayload{
			ContestID: payload.ContestID,
			Name:      payload.Name,
			EndTime:   payload.EndTime,
		})
		logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", sseType, "contest_id", payload.ContestID)
		return nil
	}
}

func (s *Subscriber) handleContestSettled(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.ContestSettledPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeContestSettled, payload.ContestID, ContestSettledPayload{
		ContestID:    payload.ContestID,
		ActualValue:  payload.ActualValue,
		PrizePool:    payload.PrizePool,
		TotalAwarded: payload.TotalAwarded,
		WinnerCount:  payload.WinnerCount,
		OrderCount:   payload.OrderCount,
	})
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast,
		"event_type", EventTypeContestSettled,
		"contest_id", payload.ContestID,
		"winners", payload.WinnerCount)
	return nil
}

func (s *Subscriber) handleOrderConfirmed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.OrderConfirmedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeEntriesConfirmed, payload.ContestID, EntriesConfirmedPayload{
		ContestID: payload.ContestID,
		OrderID:   payload.OrderID,
		Entries:   payload.Entries,
	})
	return nil
}
