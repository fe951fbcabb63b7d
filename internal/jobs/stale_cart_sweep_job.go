package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultStaleCartSchedule runs the sweep every five minutes.
const DefaultStaleCartSchedule = "@every 5m"

// maxBatchesPerRun bounds a single run so one sweep cannot monopolise the database.
const maxBatchesPerRun = 50

type staleCartAbandoner interface {
	Handle(ctx context.Context, cmd commands.AbandonStaleCartsCommand) (int, error)
}

// StaleCartSweepJob periodically removes carts nobody touched for longer than the TTL.
type StaleCartSweepJob struct {
	handler   staleCartAbandoner
	schedule  string
	ttl       time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleCartSweepJob validates ttl and batch size up front so a misconfigured
// job fails at startup rather than on every tick.
func NewStaleCartSweepJob(
	handler staleCartAbandoner,
	schedule string,
	ttl time.Duration,
	batchSize int,
	logger *slog.Logger,
) (*StaleCartSweepJob, error) {
	if _, err := commands.NewAbandonStaleCartsCommand(ttl, batchSize); err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultStaleCartSchedule
	}
	if batchSize == 0 {
		batchSize = commands.DefaultStaleCartBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "stale_cart_sweep_job")

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))

	return &StaleCartSweepJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger))),
		logger:    logger,
	}, nil
}

// Start registers the sweep with the scheduler.
func (j *StaleCartSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("Stale cart sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Stale cart sweep job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *StaleCartSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Stale cart sweep job stopped")
}

// RunOnce removes stale carts batch by batch until a batch comes back short.
// It returns the number of carts removed, including those removed before an error.
func (j *StaleCartSweepJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewAbandonStaleCartsCommand(j.ttl, j.batchSize)
	if err != nil {
		return 0, err
	}

	total := 0
	for range maxBatchesPerRun {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		removed, err := j.handler.Handle(ctx, cmd)
		total += removed
		if err != nil {
			return total, err
		}
		if removed < j.batchSize {
			break
		}
	}

	if total > 0 {
		j.logger.InfoContext(ctx, "Stale carts abandoned", "count", total)
	}
	return total, nil
}
