package warmup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/trendarc/trendarc/internal/compare"
	"github.com/trendarc/trendarc/internal/core/ports/mocks"
	"github.com/trendarc/trendarc/internal/memo"
	"github.com/trendarc/trendarc/internal/score"
)

type countingSnapshotPruner struct {
	calls int64
}

func (p *countingSnapshotPruner) PruneSnapshotHistory(context.Context, int) (int64, error) {
	atomic.AddInt64(&p.calls, 1)

	return 0, nil
}

type countingVerificationPruner struct {
	calls int64
}

func (p *countingVerificationPruner) DeleteVerificationsBefore(context.Context, time.Time) (int64, error) {
	atomic.AddInt64(&p.calls, 1)

	return 0, nil
}

func TestRunnerRunsJobAndPruners(t *testing.T) {
	logger := zerolog.Nop()

	locks := mocks.NewLockManager()
	loader := mocks.NewComparisonLoader()
	repo := mocks.NewSnapshotRepository()
	calculator := score.NewCalculator(score.DefaultWeights(), &logger)
	engine := compare.NewEngine(nil, nil, compare.Options{}, &logger)
	job := NewJob(locks, &stubLister{}, loader, calculator, engine, repo, Options{}, &logger)

	snapshotPruner := &countingSnapshotPruner{}
	verificationPruner := &countingVerificationPruner{}
	cache := memo.NewCache(time.Minute)

	runner := NewRunner(job, snapshotPruner, verificationPruner, cache, RunnerConfig{
		RunInterval:   time.Millisecond,
		PruneInterval: time.Millisecond,
	}, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, atomic.LoadInt64(&snapshotPruner.calls))
	assert.Positive(t, atomic.LoadInt64(&verificationPruner.calls))
}

func TestRunnerToleratesHeldLock(t *testing.T) {
	logger := zerolog.Nop()

	locks := mocks.NewLockManager()
	loader := mocks.NewComparisonLoader()
	repo := mocks.NewSnapshotRepository()
	calculator := score.NewCalculator(score.DefaultWeights(), &logger)
	engine := compare.NewEngine(nil, nil, compare.Options{}, &logger)
	job := NewJob(locks, &stubLister{}, loader, calculator, engine, repo, Options{}, &logger)

	acquired, err := locks.TryAcquireAdvisoryLock(context.Background(), JobLockID)
	assert.NoError(t, err)
	assert.True(t, acquired)

	runner := NewRunner(job, nil, nil, nil, RunnerConfig{RunInterval: time.Millisecond}, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = runner.Run(ctx)

	// The held lock never kills the loop; only context cancellation does.
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
