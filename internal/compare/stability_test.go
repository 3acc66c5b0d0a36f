package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendarc/trendarc/internal/core/domain"
)

func TestClassifyStability(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   domain.Stability
	}{
		{
			name:   "too short is always volatile",
			values: []float64{50, 50, 50, 50, 50, 50},
			want:   domain.StabilityVolatile,
		},
		{
			name:   "flat series is stable",
			values: []float64{50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50},
			want:   domain.StabilityStable,
		},
		{
			name:   "small jitter is stable",
			values: []float64{50, 52, 48, 51, 49, 50, 53, 47, 50, 51, 49, 50},
			want:   domain.StabilityStable,
		},
		{
			name:   "spike far above baseline is hype",
			values: []float64{10, 10, 10, 10, 10, 10, 10, 12, 15, 60, 90, 85, 40, 20, 15},
			want:   domain.StabilityHype,
		},
		{
			name:   "sustained wild swings are volatile",
			values: []float64{10, 90, 15, 85, 12, 20, 88},
			want:   domain.StabilityVolatile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStability(tt.values))
		})
	}
}

func TestClassifyStabilityShortSeriesSpike(t *testing.T) {
	// Exactly the minimum length, no separate baseline window: the recent
	// average itself serves as the baseline.
	values := []float64{10, 10, 10, 10, 10, 80, 15, 10, 10, 10}

	assert.Equal(t, domain.StabilityHype, ClassifyStability(values))
}
