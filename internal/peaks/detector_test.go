package peaks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendarc/trendarc/internal/core/domain"
)

func seriesFor(term string, values []float64) domain.TrendSeries {
	series := domain.TrendSeries{}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, v := range values {
		series.Points = append(series.Points, domain.TrendPoint{
			Date:   start.AddDate(0, 0, i),
			Values: map[string]float64{term: v},
		})
	}

	return series
}

func TestDetectPeaksFindsSpike(t *testing.T) {
	series := seriesFor("x", []float64{10, 10, 50, 10, 10})

	got := DetectPeaks(series, "x", DefaultMinProminence)

	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0].Value)
	assert.Equal(t, "x", got[0].Term)
	assert.Equal(t, series.Points[2].Date, got[0].Date)
}

func TestDetectPeaksRules(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{name: "too short", values: []float64{10, 50}, want: 0},
		{name: "endpoints never peak", values: []float64{90, 10, 10, 10, 90}, want: 0},
		{name: "plateau is not a strict maximum", values: []float64{10, 50, 50, 10}, want: 0},
		{name: "below prominence threshold", values: []float64{10, 20, 35, 20, 10}, want: 0},
		{name: "bump too close to neighbors", values: []float64{0, 0, 80, 90, 85, 0, 0}, want: 0},
		{name: "two distinct spikes", values: []float64{5, 60, 5, 5, 70, 5}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectPeaks(seriesFor("x", tt.values), "x", DefaultMinProminence)

			assert.Len(t, got, tt.want)
		})
	}
}

func TestDetectPeaksSkipsPointsWithoutTerm(t *testing.T) {
	series := seriesFor("x", []float64{10, 10, 50, 10, 10})
	series.Points[1].Values = map[string]float64{"y": 99}

	// With the gap removed, the spike's left neighbor becomes index 0.
	got := DetectPeaks(series, "x", DefaultMinProminence)

	assert.Len(t, got, 1)
}
