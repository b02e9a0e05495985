package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/eventlog"
	"github.com/osse101/PrizePool_Go/internal/metrics"
	"github.com/osse101/PrizePool_Go/internal/sse"
	"github.com/osse101/PrizePool_Go/internal/worker"
)

// EventHandlerDependencies holds the subscribers wired onto the bus.
// Nil subscribers are skipped.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	SettlementWorker *worker.SettlementWorker
	EventLog         eventlog.Service
	StreamHub        *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector, the settlement
// worker (which keeps its end-time timers in step with publish/unpublish),
// the audit log and the live feed.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.SettlementWorker != nil {
		deps.SettlementWorker.Subscribe(deps.EventBus)
		slog.Info(LogMsgSettlementWorkerSubscribed)
	}

	if deps.EventLog != nil {
		if err := deps.EventLog.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedRegisterEventLog, err)
		}
	}

	if deps.StreamHub != nil {
		sse.NewSubscriber(deps.StreamHub, deps.EventBus).Subscribe()
	}

	return nil
}
