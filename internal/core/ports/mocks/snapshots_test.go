package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendarc/trendarc/internal/core/domain"
)

func dedupSnapshot(at time.Time, margin float64) *domain.ComparisonSnapshot {
	return &domain.ComparisonSnapshot{
		Key:            domain.ComparisonKey{UserID: "u1", Slug: "a-vs-b", Timeframe: "today 3-m"},
		ComputedAt:     at,
		MarginPoints:   margin,
		Confidence:     70,
		AgreementIndex: 80,
	}
}

func TestSnapshotRepositoryDedupsNearIdenticalSaves(t *testing.T) {
	repo := NewSnapshotRepository()
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	first := dedupSnapshot(base, 10)
	require.NoError(t, repo.SaveComparisonSnapshot(context.Background(), first))

	// Within the hour and margin moved only 1 point: overwrite, not append.
	second := dedupSnapshot(base.Add(10*time.Minute), 11)
	require.NoError(t, repo.SaveComparisonSnapshot(context.Background(), second))

	assert.Equal(t, 1, repo.RowCount(first.Key))
	assert.Equal(t, first.ID, second.ID)

	latest, err := repo.GetLatestSnapshot(context.Background(), first.Key)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 11.0, latest.MarginPoints)
	assert.Equal(t, second.ComputedAt, latest.ComputedAt)
}

func TestSnapshotRepositoryAppendsOnMaterialChange(t *testing.T) {
	repo := NewSnapshotRepository()
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	first := dedupSnapshot(base, 10)
	require.NoError(t, repo.SaveComparisonSnapshot(context.Background(), first))

	// Margin moved 2.5 points within the hour: new history row.
	second := dedupSnapshot(base.Add(10*time.Minute), 12.5)
	require.NoError(t, repo.SaveComparisonSnapshot(context.Background(), second))

	assert.Equal(t, 2, repo.RowCount(first.Key))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSnapshotRepositoryAppendsAfterAnHour(t *testing.T) {
	repo := NewSnapshotRepository()
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	first := dedupSnapshot(base, 10)
	require.NoError(t, repo.SaveComparisonSnapshot(context.Background(), first))

	// Identical metrics but an hour later: new history row.
	second := dedupSnapshot(base.Add(time.Hour), 10)
	require.NoError(t, repo.SaveComparisonSnapshot(context.Background(), second))

	assert.Equal(t, 2, repo.RowCount(first.Key))

	history, err := repo.GetSnapshotHistory(context.Background(), first.Key, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ComputedAt, history[0].ComputedAt)
	assert.Equal(t, first.ComputedAt, history[1].ComputedAt)
}
