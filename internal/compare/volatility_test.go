package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateVolatility(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		above  float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single point", values: []float64{42}, want: 0},
		{name: "all equal", values: []float64{50, 50, 50, 50}, want: 0},
		{name: "all zero", values: []float64{0, 0, 0}, want: 0},
		{name: "wild swings exceed high-risk threshold", values: []float64{10, 90, 15, 85, 12}, above: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateVolatility(tt.values)

			if tt.above > 0 {
				assert.Greater(t, got, tt.above)
			} else {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCalculateVolatilityFiltersNonFinite(t *testing.T) {
	clean := CalculateVolatility([]float64{50, 60})
	dirty := CalculateVolatility([]float64{50, math.NaN(), -10, math.Inf(1), 60})

	assert.InDelta(t, clean, dirty, 1e-9)
	assert.Greater(t, dirty, 0.0)
}

func TestCalculateVolatilityCappedAt100(t *testing.T) {
	got := CalculateVolatility([]float64{0, 0, 100})

	assert.InDelta(t, 100.0, got, 1e-9)
}
