package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func snapshotAt(at time.Time, margin, confidence, agreement float64) *ComparisonSnapshot {
	return &ComparisonSnapshot{
		Key:            ComparisonKey{UserID: "u1", Slug: "a-vs-b", Timeframe: "today 3-m"},
		ComputedAt:     at,
		MarginPoints:   margin,
		Confidence:     confidence,
		AgreementIndex: agreement,
	}
}

func TestShouldUpdateInPlace(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	prev := snapshotAt(base, 10, 70, 80)

	tests := []struct {
		name string
		next *ComparisonSnapshot
		want bool
	}{
		{
			name: "identical shortly after",
			next: snapshotAt(base.Add(10*time.Minute), 10, 70, 80),
			want: true,
		},
		{
			name: "all deltas exactly at their thresholds",
			next: snapshotAt(base.Add(10*time.Minute), 12, 75, 90),
			want: true,
		},
		{
			name: "negative deltas within thresholds",
			next: snapshotAt(base.Add(10*time.Minute), 8, 65, 70),
			want: true,
		},
		{
			name: "just under one hour old",
			next: snapshotAt(base.Add(time.Hour-time.Second), 10, 70, 80),
			want: true,
		},
		{
			name: "exactly one hour old",
			next: snapshotAt(base.Add(time.Hour), 10, 70, 80),
			want: false,
		},
		{
			name: "margin moved past threshold",
			next: snapshotAt(base.Add(10*time.Minute), 12.1, 70, 80),
			want: false,
		},
		{
			name: "confidence moved past threshold",
			next: snapshotAt(base.Add(10*time.Minute), 10, 75.1, 80),
			want: false,
		},
		{
			name: "agreement moved past threshold",
			next: snapshotAt(base.Add(10*time.Minute), 10, 70, 90.1),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldUpdateInPlace(prev, tt.next))
		})
	}
}

func TestShouldUpdateInPlaceNilPrevious(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, ShouldUpdateInPlace(nil, snapshotAt(base, 10, 70, 80)))
}
