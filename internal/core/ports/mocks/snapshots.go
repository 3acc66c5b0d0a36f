package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/trendarc/trendarc/internal/core/domain"
	"github.com/trendarc/trendarc/internal/core/ports"
)

// SnapshotRepository is a thread-safe in-memory ports.SnapshotRepository.
// It applies the same dedup-or-append rule as the Postgres store so tests
// can assert on update-vs-insert behavior.
type SnapshotRepository struct {
	mu   sync.Mutex
	rows map[domain.ComparisonKey][]domain.ComparisonSnapshot

	// SaveFn allows overriding SaveComparisonSnapshot behavior.
	SaveFn func(ctx context.Context, snapshot *domain.ComparisonSnapshot) error
}

// NewSnapshotRepository creates an empty mock snapshot repository.
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{rows: make(map[domain.ComparisonKey][]domain.ComparisonSnapshot)}
}

// SaveComparisonSnapshot stores or updates a snapshot per the dedup rule.
func (r *SnapshotRepository) SaveComparisonSnapshot(ctx context.Context, snapshot *domain.ComparisonSnapshot) error {
	if r.SaveFn != nil {
		return r.SaveFn(ctx, snapshot)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[snapshot.Key]
	if len(rows) > 0 {
		latest := rows[len(rows)-1]
		if domain.ShouldUpdateInPlace(&latest, snapshot) {
			snapshot.ID = latest.ID
			rows[len(rows)-1] = *snapshot

			return nil
		}
	}

	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}

	r.rows[snapshot.Key] = append(rows, *snapshot)

	return nil
}

// GetLatestSnapshot returns the newest snapshot for key, or nil if none.
func (r *SnapshotRepository) GetLatestSnapshot(_ context.Context, key domain.ComparisonKey) (*domain.ComparisonSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[key]
	if len(rows) == 0 {
		return nil, nil //nolint:nilnil // nil,nil indicates no snapshot stored
	}

	latest := rows[len(rows)-1]

	return &latest, nil
}

// GetSnapshotHistory returns snapshots newest-first, up to limit.
func (r *SnapshotRepository) GetSnapshotHistory(_ context.Context, key domain.ComparisonKey, limit int) ([]domain.ComparisonSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.rows[key]
	history := make([]domain.ComparisonSnapshot, 0, len(rows))

	for i := len(rows) - 1; i >= 0 && len(history) < limit; i-- {
		history = append(history, rows[i])
	}

	return history, nil
}

// RowCount returns the number of stored rows for key.
func (r *SnapshotRepository) RowCount(key domain.ComparisonKey) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rows[key])
}

var _ ports.SnapshotRepository = (*SnapshotRepository)(nil)
