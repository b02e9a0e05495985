package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/PrizePool_Go/internal/concurrency"
	"github.com/osse101/PrizePool_Go/internal/config"
	"github.com/osse101/PrizePool_Go/internal/contest"
	"github.com/osse101/PrizePool_Go/internal/database"
	"github.com/osse101/PrizePool_Go/internal/eventlog"
	"github.com/osse101/PrizePool_Go/internal/order"
	"github.com/osse101/PrizePool_Go/internal/payout"
	"github.com/osse101/PrizePool_Go/internal/scheduler"
	"github.com/osse101/PrizePool_Go/internal/server"
	"github.com/osse101/PrizePool_Go/internal/settlement"
	"github.com/osse101/PrizePool_Go/internal/sse"
	"github.com/osse101/PrizePool_Go/internal/worker"
)

// Run wires the application, serves HTTP until ctx is cancelled or the server
// fails, then shuts everything down within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config) error {
	slog.Info(LogMsgConnectingDatabase, "host", cfg.DBHost, "db", cfg.DBName)
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	applied, err := database.Migrate(ctx, dbPool)
	if err != nil {
		dbPool.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied, "version", applied)

	bus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		dbPool.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedInitEventSystem, err)
	}

	repos := InitializeRepositories(dbPool)

	// One lock manager so order confirmation and settlement serialize per contest
	locks := concurrency.NewLockManager()
	contestSvc := contest.NewService(repos.Contests, locks, publisher)
	orderSvc := order.NewService(repos.Orders, locks, publisher)
	settlementSvc := settlement.NewService(repos.Settlements, InitializeResultSources(cfg), locks, publisher)
	payoutSvc := payout.NewService(repos.Payouts, InitializeProcessor(cfg), publisher)
	eventLogSvc := eventlog.NewService(repos.EventLog)

	settlementWorker := worker.NewSettlementWorker(repos.Contests, settlementSvc)
	components := ShutdownComponents{
		SettlementWorker:   settlementWorker,
		ResilientPublisher: publisher,
		DBPool:             dbPool,
	}

	var hub *sse.Hub
	if cfg.EventStreamEnabled {
		hub = sse.NewHub()
		hub.Start()
		components.StreamHub = hub
	}

	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:         bus,
		SettlementWorker: settlementWorker,
		EventLog:         eventLogSvc,
		StreamHub:        hub,
	}); err != nil {
		shutdown(cfg, components)
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterHandlers, err)
	}
	settlementWorker.Start(ctx)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	components.WorkerPool = pool

	sched := scheduler.New(pool)
	components.Scheduler = sched
	if _, err := sched.Schedule(SettlementSweepJobName, cfg.SettlementSweepSpec, worker.NewSettlementSweep(repos.Contests, settlementSvc)); err != nil {
		shutdown(cfg, components)
		return fmt.Errorf("%s: %w", ErrMsgFailedScheduleSweep, err)
	}
	if _, err := sched.Schedule(AuditPruneJobName, cfg.EventLogCleanupSpec, eventlog.NewAuditPruneJob(eventLogSvc, cfg.EventLogRetentionDays)); err != nil {
		shutdown(cfg, components)
		return fmt.Errorf("%s: %w", ErrMsgFailedScheduleCleanup, err)
	}
	if _, err := sched.Schedule(PayoutReconcileJobName, cfg.PayoutReconcileSpec, payout.NewReconcileJob(payoutSvc, cfg.PayoutReconcileGrace)); err != nil {
		shutdown(cfg, components)
		return fmt.Errorf("%s: %w", ErrMsgFailedScheduleReconcile, err)
	}
	sched.Start()
	slog.Info(LogMsgSchedulerStarted, "spec", cfg.SettlementSweepSpec)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RatePerSecond:  cfg.RateLimitPerSecond,
		RateBurst:      cfg.RateLimitBurst,
	}, dbPool, server.Services{
		Contests:    contestSvc,
		Orders:      orderSvc,
		Payouts:     payoutSvc,
		Settlements: settlementSvc,
		EventLog:    eventLogSvc,
		Stream:      hub,
	})
	components.Server = srv

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info(LogMsgShutdownSignal)
	case err := <-errCh:
		runErr = fmt.Errorf("%s: %w", ErrMsgServerFailed, err)
	}

	shutdown(cfg, components)
	return runErr
}

func shutdown(cfg *config.Config, components ShutdownComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	GracefulShutdown(ctx, components)
}
