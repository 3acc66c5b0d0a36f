package domain

import "time"

// Snapshot dedup thresholds. A new computation within MaxSnapshotAge of the
// latest stored row that moves no tracked field beyond its threshold
// overwrites that row instead of appending history.
const (
	MaxSnapshotAge          = time.Hour
	SnapshotMarginDelta     = 2.0
	SnapshotConfidenceDelta = 5.0
	SnapshotAgreementDelta  = 10.0
)

// ShouldUpdateInPlace reports whether next is a near-duplicate of prev and
// should overwrite it rather than append a new history row. This is the only
// path that mutates rather than appends.
func ShouldUpdateInPlace(prev, next *ComparisonSnapshot) bool {
	if prev == nil {
		return false
	}

	if next.ComputedAt.Sub(prev.ComputedAt) >= MaxSnapshotAge {
		return false
	}

	return abs(next.MarginPoints-prev.MarginPoints) <= SnapshotMarginDelta &&
		abs(next.Confidence-prev.Confidence) <= SnapshotConfidenceDelta &&
		abs(next.AgreementIndex-prev.AgreementIndex) <= SnapshotAgreementDelta
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
