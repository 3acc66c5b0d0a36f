// Package warmup implements the batch job that recomputes stored comparisons
// in the background so interactive reads stay fast. The job is a single-runner:
// a Postgres advisory lock guarantees at most one instance processes a batch
// at a time, across replicas.
package warmup

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendarc/trendarc/internal/compare"
	"github.com/trendarc/trendarc/internal/core/domain"
	coreerrors "github.com/trendarc/trendarc/internal/core/errors"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/platform/observability"
	"github.com/trendarc/trendarc/internal/platform/worker"
	"github.com/trendarc/trendarc/internal/score"
	"github.com/trendarc/trendarc/internal/verdict"
)

// JobLockID identifies the warm-up advisory lock. Shared by all replicas.
const JobLockID int64 = 749321604

const (
	DefaultBatchSize   = 50
	DefaultConcurrency = 3
	DefaultStaleAfter  = 6 * time.Hour
	DefaultItemTimeout = time.Minute
)

const (
	outcomeOK     = "ok"
	outcomeLocked = "locked"
	outcomeError  = "error"
)

// KeyLister enumerates stored comparisons whose latest snapshot is older than
// a cutoff, oldest first.
type KeyLister interface {
	ListStaleComparisonKeys(ctx context.Context, cutoff time.Time, limit int) ([]domain.ComparisonKey, error)
}

// Options configure batch sizing and pacing.
type Options struct {
	BatchSize   int
	Concurrency int
	StaleAfter  time.Duration
	ItemTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}

	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}

	if o.StaleAfter <= 0 {
		o.StaleAfter = DefaultStaleAfter
	}

	if o.ItemTimeout <= 0 {
		o.ItemTimeout = DefaultItemTimeout
	}
}

// Job recomputes stale comparisons and persists fresh snapshots.
type Job struct {
	locks      ports.LockManager
	lister     KeyLister
	loader     ports.ComparisonLoader
	calculator *score.Calculator
	engine     *compare.Engine
	snapshots  ports.SnapshotRepository
	opts       Options
	logger     *zerolog.Logger
}

// NewJob creates a warm-up job.
func NewJob(
	locks ports.LockManager,
	lister KeyLister,
	loader ports.ComparisonLoader,
	calculator *score.Calculator,
	engine *compare.Engine,
	snapshots ports.SnapshotRepository,
	opts Options,
	logger *zerolog.Logger,
) *Job {
	opts.applyDefaults()

	return &Job{
		locks:      locks,
		lister:     lister,
		loader:     loader,
		calculator: calculator,
		engine:     engine,
		snapshots:  snapshots,
		opts:       opts,
		logger:     logger,
	}
}

// RunOnce processes one batch of stale comparisons. It returns
// ErrJobAlreadyRunning when another instance holds the lock. Per-item
// failures are logged and counted but never fail the run.
func (j *Job) RunOnce(ctx context.Context) error {
	acquired, err := j.locks.TryAcquireAdvisoryLock(ctx, JobLockID)
	if err != nil {
		observability.WarmupRuns.WithLabelValues(outcomeError).Inc()

		return fmt.Errorf("acquire warmup lock: %w", err)
	}

	if !acquired {
		observability.WarmupRuns.WithLabelValues(outcomeLocked).Inc()

		return coreerrors.ErrJobAlreadyRunning
	}

	defer func() {
		if err := j.locks.ReleaseAdvisoryLock(ctx, JobLockID); err != nil {
			j.logger.Warn().Err(err).Msg("release warmup lock")
		}
	}()

	cutoff := time.Now().Add(-j.opts.StaleAfter)

	keys, err := j.lister.ListStaleComparisonKeys(ctx, cutoff, j.opts.BatchSize)
	if err != nil {
		observability.WarmupRuns.WithLabelValues(outcomeError).Inc()

		return fmt.Errorf("list stale comparisons: %w", err)
	}

	if len(keys) == 0 {
		observability.WarmupRuns.WithLabelValues(outcomeOK).Inc()
		j.logger.Debug().Msg("warmup: nothing stale")

		return nil
	}

	processed, failed := j.processBatch(ctx, keys)

	observability.WarmupRuns.WithLabelValues(outcomeOK).Inc()

	j.logger.Info().
		Int("batch", len(keys)).
		Int64("processed", processed).
		Int64("failed", failed).
		Msg("warmup run finished")

	return nil
}

func (j *Job) processBatch(ctx context.Context, keys []domain.ComparisonKey) (processed, failed int64) {
	var wg sync.WaitGroup

	sem := make(chan struct{}, j.opts.Concurrency)

	for _, key := range keys {
		wg.Add(1)

		go func(key domain.ComparisonKey) {
			defer wg.Done()
			defer worker.RecoverPanic(j.logger, "warmup item")

			sem <- struct{}{}
			defer func() { <-sem }()

			err := worker.RunWithTimeout(ctx, j.opts.ItemTimeout, func(ctx context.Context) error {
				return j.processKey(ctx, key)
			})
			if err != nil {
				atomic.AddInt64(&failed, 1)
				observability.WarmupItemFailures.Inc()
				j.logger.Warn().Err(err).
					Str("slug", key.Slug).
					Str("timeframe", key.Timeframe).
					Msg("warmup item failed")

				return
			}

			atomic.AddInt64(&processed, 1)
			observability.WarmupItemsProcessed.Inc()
		}(key)
	}

	wg.Wait()

	return processed, failed
}

// processKey recomputes one comparison end to end: load inputs, score both
// terms, generate the verdict, compute metrics against the latest snapshot,
// and persist a fresh snapshot. Snapshot write failures are logged and
// swallowed so a storage hiccup does not fail the item.
func (j *Job) processKey(ctx context.Context, key domain.ComparisonKey) error {
	input, err := j.loader.LoadComparison(ctx, key)
	if err != nil {
		return fmt.Errorf("load comparison: %w", err)
	}

	if input == nil {
		j.logger.Debug().Str("slug", key.Slug).Msg("warmup: comparison no longer exists")

		return nil
	}

	scoreA := j.calculator.Calculate(input.MetricsA, input.Category)
	scoreB := j.calculator.Calculate(input.MetricsB, input.Category)
	v := verdict.Generate(input.TermA, input.TermB, scoreA, scoreB, input.Category)

	prev, err := j.snapshots.GetLatestSnapshot(ctx, key)
	if err != nil {
		// Change metrics degrade to the synthetic baseline.
		j.logger.Warn().Err(err).Str("slug", key.Slug).Msg("warmup: latest snapshot unavailable")

		prev = nil
	}

	metrics, err := j.engine.ComputeComparisonMetrics(
		ctx, input.Series, input.TermA, input.TermB, v,
		&scoreA.Breakdown, &scoreB.Breakdown, prev,
	)
	if err != nil {
		return fmt.Errorf("compute metrics: %w", err)
	}

	snapshot := buildSnapshot(input, v, metrics)

	if err := j.snapshots.SaveComparisonSnapshot(ctx, snapshot); err != nil {
		observability.SnapshotWriteFailures.Inc()
		j.logger.Error().Err(err).Str("slug", key.Slug).Msg("warmup: snapshot write failed")
	}

	return nil
}

func buildSnapshot(input *ports.ComparisonInput, v domain.ComparisonVerdict, metrics domain.ComparisonMetrics) *domain.ComparisonSnapshot {
	return &domain.ComparisonSnapshot{
		Key:            input.Key,
		TermA:          input.TermA,
		TermB:          input.TermB,
		ComputedAt:     time.Now().UTC(),
		MarginPoints:   metrics.MarginPoints,
		Confidence:     metrics.Confidence,
		Volatility:     metrics.Volatility,
		AgreementIndex: metrics.AgreementIndex,
		Winner:         v.Winner,
		WinnerScore:    v.WinnerScore,
		LoserScore:     v.LoserScore,
		Category:       input.Category,
	}
}
