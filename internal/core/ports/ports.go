// Package ports provides domain-centric interfaces for external dependencies.
// These interfaces follow the ports and adapters (hexagonal) architecture
// pattern, allowing the comparison engine to remain independent of
// infrastructure concerns.
package ports

import (
	"context"
	"time"

	"github.com/trendarc/trendarc/internal/core/domain"
)

// SnapshotRepository persists comparison snapshots with the
// dedup-or-append rule: a write within one hour of the latest snapshot that
// changes nothing materially updates the row in place, otherwise a new row
// is inserted.
type SnapshotRepository interface {
	SaveComparisonSnapshot(ctx context.Context, snapshot *domain.ComparisonSnapshot) error
	GetLatestSnapshot(ctx context.Context, key domain.ComparisonKey) (*domain.ComparisonSnapshot, error)
	GetSnapshotHistory(ctx context.Context, key domain.ComparisonKey, limit int) ([]domain.ComparisonSnapshot, error)
}

// EventSearcher looks up candidate real-world events around a date for a set
// of keywords.
type EventSearcher interface {
	SearchEvents(ctx context.Context, keyword string, from, to time.Time, maxResults int) ([]domain.CandidateEvent, error)
}

// Verifier decides which real-world sense of an ambiguous keyword a
// candidate event refers to, and how well that sense matches the comparison
// context. Implementations must behave as pure functions of their inputs so
// results can be cached.
type Verifier interface {
	VerifyEventWithContext(ctx context.Context, event domain.CandidateEvent, keyword string, compCtx domain.ComparisonContext, targetDate time.Time) (domain.ContextualRelevanceResult, error)
}

// ConfidenceInput carries the signals the confidence model combines into a
// continuous, non-bucketed confidence score.
type ConfidenceInput struct {
	Agreement        float64
	Volatility       float64
	SeriesLength     int
	SourceCount      int
	Margin           float64
	LeaderChangeRisk float64
}

// ConfidenceModel produces a continuous confidence score on [0,100].
type ConfidenceModel interface {
	Confidence(ctx context.Context, input ConfidenceInput) (float64, error)
}

// VerificationCache persists verifier results keyed by a deterministic hash
// of the verifier inputs.
type VerificationCache interface {
	GetVerification(ctx context.Context, inputHash string) (*domain.ContextualRelevanceResult, error)
	SaveVerification(ctx context.Context, inputHash string, result domain.ContextualRelevanceResult) error
}

// ComparisonInput is everything needed to recompute one comparison's metrics.
type ComparisonInput struct {
	Key      domain.ComparisonKey
	TermA    string
	TermB    string
	Category domain.Category
	Series   domain.TrendSeries
	MetricsA domain.SourceMetrics
	MetricsB domain.SourceMetrics
}

// ComparisonLoader fetches the current raw inputs for a stored comparison.
// The per-source fetchers behind it are outside the engine's scope.
type ComparisonLoader interface {
	LoadComparison(ctx context.Context, key domain.ComparisonKey) (*ComparisonInput, error)
}

// LockManager provides distributed locks for single-runner batch jobs.
type LockManager interface {
	TryAcquireAdvisoryLock(ctx context.Context, lockID int64) (bool, error)
	ReleaseAdvisoryLock(ctx context.Context, lockID int64) error
}
