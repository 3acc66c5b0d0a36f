package warmup

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	coreerrors "github.com/trendarc/trendarc/internal/core/errors"
	"github.com/trendarc/trendarc/internal/memo"
	"github.com/trendarc/trendarc/internal/platform/worker"
)

const (
	DefaultRunInterval     = time.Hour
	DefaultPruneInterval   = 6 * time.Hour
	DefaultKeepPerKey      = 500
	DefaultVerificationTTL = 48 * time.Hour
)

// SnapshotPruner trims per-key snapshot history.
type SnapshotPruner interface {
	PruneSnapshotHistory(ctx context.Context, keepPerKey int) (int64, error)
}

// VerificationPruner expires old verification cache entries.
type VerificationPruner interface {
	DeleteVerificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunnerConfig configures the periodic warm-up runner.
type RunnerConfig struct {
	RunInterval     time.Duration
	PruneInterval   time.Duration
	KeepPerKey      int
	VerificationTTL time.Duration
}

func (c *RunnerConfig) applyDefaults() {
	if c.RunInterval <= 0 {
		c.RunInterval = DefaultRunInterval
	}

	if c.PruneInterval <= 0 {
		c.PruneInterval = DefaultPruneInterval
	}

	if c.KeepPerKey <= 0 {
		c.KeepPerKey = DefaultKeepPerKey
	}

	if c.VerificationTTL <= 0 {
		c.VerificationTTL = DefaultVerificationTTL
	}
}

// Runner drives the warm-up job and housekeeping tasks on a schedule.
// Any pruner may be nil to disable its task.
type Runner struct {
	job           *Job
	snapshots     SnapshotPruner
	verifications VerificationPruner
	memoCache     *memo.Cache
	cfg           RunnerConfig
	logger        *zerolog.Logger
}

// NewRunner creates a runner around job.
func NewRunner(
	job *Job,
	snapshots SnapshotPruner,
	verifications VerificationPruner,
	memoCache *memo.Cache,
	cfg RunnerConfig,
	logger *zerolog.Logger,
) *Runner {
	cfg.applyDefaults()

	return &Runner{
		job:           job,
		snapshots:     snapshots,
		verifications: verifications,
		memoCache:     memoCache,
		cfg:           cfg,
		logger:        logger,
	}
}

// Run blocks until ctx is canceled, running the warm-up job every
// RunInterval and the pruning tasks every PruneInterval. A run skipped
// because another instance holds the lock is not an error.
func (r *Runner) Run(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:          "warmup",
		PollInterval:  r.cfg.RunInterval,
		Process:       r.job.RunOnce,
		PeriodicTasks: r.periodicTasks(),
		OnError: func(err error) bool {
			if coreerrors.Is(err, coreerrors.ErrJobAlreadyRunning) {
				r.logger.Debug().Msg("warmup run skipped, another instance holds the lock")
			} else {
				r.logger.Error().Err(err).Msg("warmup run failed")
			}

			return true
		},
		Logger: r.logger,
	})
}

func (r *Runner) periodicTasks() []worker.PeriodicTask {
	tasks := []worker.PeriodicTask{}

	if r.snapshots != nil {
		tasks = append(tasks, worker.PeriodicTask{
			Name:     "prune snapshot history",
			Interval: r.cfg.PruneInterval,
			Run: func(ctx context.Context) {
				deleted, err := r.snapshots.PruneSnapshotHistory(ctx, r.cfg.KeepPerKey)
				if err != nil {
					r.logger.Error().Err(err).Msg("prune snapshot history")

					return
				}

				r.logger.Debug().Int64("deleted", deleted).Msg("pruned snapshot history")
			},
		})
	}

	if r.verifications != nil {
		tasks = append(tasks, worker.PeriodicTask{
			Name:     "prune verification cache",
			Interval: r.cfg.PruneInterval,
			Run: func(ctx context.Context) {
				cutoff := time.Now().Add(-r.cfg.VerificationTTL)

				deleted, err := r.verifications.DeleteVerificationsBefore(ctx, cutoff)
				if err != nil {
					r.logger.Error().Err(err).Msg("prune verification cache")

					return
				}

				r.logger.Debug().Int64("deleted", deleted).Msg("pruned verification cache")
			},
		})
	}

	if r.memoCache != nil {
		tasks = append(tasks, worker.PeriodicTask{
			Name:     "prune memo cache",
			Interval: r.cfg.PruneInterval,
			Run: func(_ context.Context) {
				pruned := r.memoCache.Prune()

				r.logger.Debug().Int("pruned", pruned).Msg("pruned memo cache")
			},
		})
	}

	return tasks
}
