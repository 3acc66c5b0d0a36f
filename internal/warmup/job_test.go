package warmup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendarc/trendarc/internal/compare"
	"github.com/trendarc/trendarc/internal/core/domain"
	coreerrors "github.com/trendarc/trendarc/internal/core/errors"
	"github.com/trendarc/trendarc/internal/core/ports"
	"github.com/trendarc/trendarc/internal/core/ports/mocks"
	"github.com/trendarc/trendarc/internal/score"
)

type stubLister struct {
	keys []domain.ComparisonKey
	err  error
}

func (l *stubLister) ListStaleComparisonKeys(context.Context, time.Time, int) ([]domain.ComparisonKey, error) {
	return l.keys, l.err
}

func testKey(slug string) domain.ComparisonKey {
	return domain.ComparisonKey{UserID: "u1", Slug: slug, Timeframe: "today 3-m", Geo: ""}
}

func testInput(key domain.ComparisonKey) *ports.ComparisonInput {
	series := domain.TrendSeries{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		series.Points = append(series.Points, domain.TrendPoint{
			Date:   base.AddDate(0, 0, i),
			Values: map[string]float64{"alpha": 60, "beta": 40},
		})
	}

	return &ports.ComparisonInput{
		Key:      key,
		TermA:    "alpha",
		TermB:    "beta",
		Category: domain.CategoryGeneral,
		Series:   series,
		MetricsA: domain.SourceMetrics{
			SearchInterest: &domain.SearchInterestMetrics{Average: 70, Momentum: 10, LeadPercentage: 80},
		},
		MetricsB: domain.SourceMetrics{
			SearchInterest: &domain.SearchInterestMetrics{Average: 40, Momentum: -5, LeadPercentage: 20},
		},
	}
}

type jobFixture struct {
	job    *Job
	locks  *mocks.LockManager
	loader *mocks.ComparisonLoader
	repo   *mocks.SnapshotRepository
}

func newJobFixture(t *testing.T, lister KeyLister) *jobFixture {
	t.Helper()

	logger := zerolog.Nop()

	locks := mocks.NewLockManager()
	loader := mocks.NewComparisonLoader()
	repo := mocks.NewSnapshotRepository()
	calculator := score.NewCalculator(score.DefaultWeights(), &logger)
	engine := compare.NewEngine(nil, nil, compare.Options{}, &logger)

	job := NewJob(locks, lister, loader, calculator, engine, repo, Options{Concurrency: 2}, &logger)

	return &jobFixture{job: job, locks: locks, loader: loader, repo: repo}
}

func TestRunOnceProcessesBatch(t *testing.T) {
	keyA := testKey("alpha-vs-beta")
	keyB := testKey("alpha-vs-beta-us")

	f := newJobFixture(t, &stubLister{keys: []domain.ComparisonKey{keyA, keyB}})
	f.loader.AddInput(testInput(keyA))
	f.loader.AddInput(testInput(keyB))

	require.NoError(t, f.job.RunOnce(context.Background()))

	assert.Equal(t, 1, f.repo.RowCount(keyA))
	assert.Equal(t, 1, f.repo.RowCount(keyB))

	snapshot, err := f.repo.GetLatestSnapshot(context.Background(), keyA)
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, "alpha", snapshot.Winner)
	assert.Positive(t, snapshot.MarginPoints)
	assert.False(t, snapshot.ComputedAt.IsZero())
}

func TestRunOnceReturnsErrJobAlreadyRunning(t *testing.T) {
	key := testKey("alpha-vs-beta")

	f := newJobFixture(t, &stubLister{keys: []domain.ComparisonKey{key}})
	f.loader.AddInput(testInput(key))

	acquired, err := f.locks.TryAcquireAdvisoryLock(context.Background(), JobLockID)
	require.NoError(t, err)
	require.True(t, acquired)

	err = f.job.RunOnce(context.Background())

	assert.ErrorIs(t, err, coreerrors.ErrJobAlreadyRunning)
	assert.Equal(t, 0, f.repo.RowCount(key))
}

func TestRunOnceReleasesLock(t *testing.T) {
	f := newJobFixture(t, &stubLister{})

	require.NoError(t, f.job.RunOnce(context.Background()))
	require.NoError(t, f.job.RunOnce(context.Background()))
}

func TestRunOnceSkipsFailedItems(t *testing.T) {
	goodKey := testKey("good")
	badKey := testKey("bad")

	f := newJobFixture(t, &stubLister{keys: []domain.ComparisonKey{badKey, goodKey}})

	input := testInput(goodKey)
	f.loader.LoadFn = func(_ context.Context, key domain.ComparisonKey) (*ports.ComparisonInput, error) {
		if key == badKey {
			return nil, errors.New("source fetch failed")
		}

		return input, nil
	}

	require.NoError(t, f.job.RunOnce(context.Background()))

	assert.Equal(t, 1, f.repo.RowCount(goodKey))
	assert.Equal(t, 0, f.repo.RowCount(badKey))
}

func TestRunOnceSwallowsSnapshotWriteFailures(t *testing.T) {
	key := testKey("alpha-vs-beta")

	f := newJobFixture(t, &stubLister{keys: []domain.ComparisonKey{key}})
	f.loader.AddInput(testInput(key))
	f.repo.SaveFn = func(context.Context, *domain.ComparisonSnapshot) error {
		return errors.New("storage down")
	}

	assert.NoError(t, f.job.RunOnce(context.Background()))
}

func TestRunOnceSkipsVanishedComparisons(t *testing.T) {
	key := testKey("deleted")

	f := newJobFixture(t, &stubLister{keys: []domain.ComparisonKey{key}})

	require.NoError(t, f.job.RunOnce(context.Background()))
	assert.Equal(t, 0, f.repo.RowCount(key))
}

func TestRunOnceFailsWhenListingFails(t *testing.T) {
	f := newJobFixture(t, &stubLister{err: errors.New("db down")})

	err := f.job.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list stale comparisons")
}
