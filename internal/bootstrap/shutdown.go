package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PrizePool_Go/internal/database"
	"github.com/osse101/PrizePool_Go/internal/event"
	"github.com/osse101/PrizePool_Go/internal/scheduler"
	"github.com/osse101/PrizePool_Go/internal/server"
	"github.com/osse101/PrizePool_Go/internal/sse"
	"github.com/osse101/PrizePool_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	StreamHub          *sse.Hub
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	SettlementWorker   *worker.SettlementWorker
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	DBPool             database.Pool
}

// GracefulShutdown stops components in dependency order:
//  0. Event stream (open streams never go idle, so the server would wait on them)
//  1. HTTP server (stop accepting new requests)
//  2. Scheduler, then settlement timers, then the worker pool
//  3. Event publisher (flush pending events)
//  4. Database pool
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.StreamHub != nil {
		components.StreamHub.Stop()
		slog.Info(LogMsgEventStreamStopped)
	}

	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	// No new sweeps once the scheduler stops; in-flight ones finish in the pool
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.SettlementWorker != nil {
		if err := components.SettlementWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSettlementWorkerFailed, "error", err)
		}
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
		slog.Info(LogMsgWorkerPoolStopped)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
