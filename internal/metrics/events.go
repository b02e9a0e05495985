package metrics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ContestCreated,
		event.ContestPublished,
		event.ContestUnpublished,
		event.ContestSettled,
		event.OrderPlaced,
		event.OrderConfirmed,
		event.PayoutRequested,
		event.PayoutFailed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ContestCreated:
		ContestsCreated.Inc()

	case event.ContestPublished:
		ContestsPublished.Inc()

	case event.ContestSettled:
		payload, err := event.DecodePayload[domain.ContestSettledPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		ContestsSettled.Inc()
		SettlementWinners.Observe(float64(payload.WinnerCount))
		addAmount(ctx, PrizesAwarded.Add, payload.TotalAwarded)

	case event.OrderPlaced:
		payload, err := event.DecodePayload[domain.OrderPlacedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		OrdersPlaced.Inc()
		addAmount(ctx, OrderRevenue.Add, payload.TotalAmount)

	case event.OrderConfirmed:
		OrdersConfirmed.Inc()

	case event.PayoutRequested, event.PayoutFailed:
		payload, err := event.DecodePayload[domain.PayoutPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		if evt.Type == event.PayoutFailed {
			PayoutsFailed.WithLabelValues(payload.Method).Inc()
			break
		}
		PayoutsRequested.WithLabelValues(payload.Method).Inc()
		addAmount(ctx, PayoutAmount.Add, payload.Amount)
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// addAmount feeds a decimal payload field into a float counter.
// Counters reject negative values, so those are dropped.
func addAmount(ctx context.Context, add func(float64), raw string) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgInvalidAmount, "value", raw)
		return
	}
	if amount.IsNegative() {
		return
	}
	add(amount.InexactFloat64())
}
