package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendarc/trendarc/internal/core/domain"
)

func TestRiskFlags(t *testing.T) {
	tests := []struct {
		name       string
		volatility float64
		agreement  float64
		stability  domain.Stability
		series     [][]float64
		want       []string
	}{
		{
			name:       "calm comparison has no flags",
			volatility: 10,
			agreement:  90,
			stability:  domain.StabilityStable,
			series:     [][]float64{{50, 50, 50}, {40, 40, 40}},
			want:       nil,
		},
		{
			name:       "high volatility",
			volatility: 60,
			agreement:  90,
			stability:  domain.StabilityStable,
			want:       []string{FlagHighVolatility},
		},
		{
			name:       "source disagreement",
			volatility: 10,
			agreement:  40,
			stability:  domain.StabilityStable,
			want:       []string{FlagDisagreement},
		},
		{
			name:       "hype pattern",
			volatility: 10,
			agreement:  90,
			stability:  domain.StabilityHype,
			want:       []string{FlagHypePattern},
		},
		{
			name:       "recent spike in either term",
			volatility: 10,
			agreement:  90,
			stability:  domain.StabilityStable,
			series:     [][]float64{{50, 50, 50, 50}, {10, 10, 10, 10, 50}},
			want:       []string{FlagRecentSpike},
		},
		{
			name:       "all flags can co-occur",
			volatility: 80,
			agreement:  20,
			stability:  domain.StabilityHype,
			series:     [][]float64{{10, 10, 10, 10, 50}},
			want:       []string{FlagHighVolatility, FlagDisagreement, FlagHypePattern, FlagRecentSpike},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskFlags(tt.volatility, tt.agreement, tt.stability, tt.series...)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasRecentSpikeOnlyLooksAtRecentWindow(t *testing.T) {
	// An old spike outside the recent window must not trigger the flag.
	values := []float64{90, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	assert.False(t, hasRecentSpike(values))
}
