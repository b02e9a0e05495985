package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler triggers jobs on cron schedules. Jobs run on the worker pool,
// so a slow job never delays the next tick of another.
type Scheduler struct {
	cron *cron.Cron
	pool Enqueuer
}

// New creates a new scheduler. Specs use the six-field form with seconds.
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger{}),
		),
		pool: pool,
	}
}

// Schedule registers a job under a cron spec such as "0 */5 * * * *" or "@every 30s"
func (s *Scheduler) Schedule(name, spec string, job worker.Job) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, s.enqueue(name, job))
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q for %s: %w", spec, name, err)
	}
	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", name, "spec", spec)
	return id, nil
}

// Every registers a job at a fixed interval. Unlike "@every", sub-second intervals are kept as is.
func (s *Scheduler) Every(name string, interval time.Duration, job worker.Job) cron.EntryID {
	logger.FromContext(context.Background()).Info(LogMsgJobScheduled, "job", name, "interval", interval)
	return s.cron.Schedule(every(interval), cron.FuncJob(s.enqueue(name, job)))
}

func (s *Scheduler) enqueue(name string, job worker.Job) func() {
	return func() {
		if !s.pool.TryEnqueue(job) {
			logger.FromContext(context.Background()).Warn(LogMsgJobSkipped, "job", name)
		}
	}
}

// Start begins firing schedules
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.FromContext(context.Background()).Info(LogMsgSchedulerStarted, "jobs", len(s.cron.Entries()))
}

// Stop stops all scheduled jobs and waits for in-flight triggers
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.FromContext(context.Background()).Info(LogMsgSchedulerStopped)
}

type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// cronLogger forwards cron's own messages to slog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.FromContext(context.Background()).Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.FromContext(context.Background()).Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
